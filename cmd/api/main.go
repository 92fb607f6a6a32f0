package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okandemirel/sales-analyst/internal/application"
	appanalysis "github.com/okandemirel/sales-analyst/internal/application/analysis"
	"github.com/okandemirel/sales-analyst/internal/config"
	domanalysis "github.com/okandemirel/sales-analyst/internal/domain/analysis"
	domsales "github.com/okandemirel/sales-analyst/internal/domain/sales"
	"github.com/okandemirel/sales-analyst/internal/infra/ai/openrouter"
	mysqldb "github.com/okandemirel/sales-analyst/internal/infra/db/mysql"
	postgresdb "github.com/okandemirel/sales-analyst/internal/infra/db/postgres"
	"github.com/okandemirel/sales-analyst/internal/infra/httpserver"
	"github.com/okandemirel/sales-analyst/internal/infra/storage"
	"github.com/okandemirel/sales-analyst/internal/middleware"
	"github.com/okandemirel/sales-analyst/web"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		db        *sql.DB
		salesRepo domsales.Repository
		logRepo   domanalysis.Repository
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqldb.Connect(ctx, cfg.DSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		salesRepo = mysqldb.NewSalesRepository(db)
		logRepo = mysqldb.NewResponseRepository(db)
	default:
		db, err = postgresdb.Connect(ctx, cfg.DSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		salesRepo = postgresdb.NewSalesRepository(db)
		logRepo = postgresdb.NewResponseRepository(db)
	}
	defer db.Close()

	var archiver domanalysis.Archiver
	if cfg.ArchiveEnabled() {
		store, err := storage.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archiver = store
	}

	ai := openrouter.NewClient(openrouter.Options{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Referer: cfg.AI.Referer,
		Title:   cfg.AI.Title,
	})

	svc := &appanalysis.Service{
		Sales:         salesRepo,
		Log:           logRepo,
		AI:            ai,
		Archive:       archiver,
		Clock:         application.SystemClock{},
		Model:         cfg.AI.Model,
		MaxPromptRows: cfg.Prompt.MaxRows,
	}

	sessions := httpserver.NewSessionManager(time.Hour)
	sessions.StartJanitor(ctx)

	limiter := middleware.NewRateLimiter(5, 1)

	health := middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	})

	handler := httpserver.NewRouter(svc, sessions, limiter, health, web.Handler())

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // inference calls are slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
