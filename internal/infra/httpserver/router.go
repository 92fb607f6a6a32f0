package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/okandemirel/sales-analyst/internal/application/analysis"
	domain "github.com/okandemirel/sales-analyst/internal/domain/analysis"
	"github.com/okandemirel/sales-analyst/internal/middleware"
)

type Router struct {
	svc      *appanalysis.Service
	sessions *SessionManager
	limiter  *middleware.RateLimiter
}

// NewRouter wires the JSON API, the health/metrics endpoints and the
// embedded single-page UI.
func NewRouter(svc *appanalysis.Service, sessions *SessionManager, limiter *middleware.RateLimiter, health http.HandlerFunc, static http.Handler) http.Handler {
	r := &Router{svc: svc, sessions: sessions, limiter: limiter}
	mux := chi.NewRouter()

	mux.Use(middleware.Logging)
	mux.Use(middleware.CountRequests)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	if health != nil {
		mux.Get("/healthz", health)
	}
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/responses/latest", r.wrap(r.handleRecentResponses))
	})

	if static != nil {
		mux.Handle("/*", static)
	}

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps the domain error taxonomy onto HTTP statuses. All turn failures
// surface inline to the user; nothing is retried here.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, domain.ErrEmptyPrompt):
			writeError(w, http.StatusBadRequest, "Lütfen bir analiz komutu girin.")
		case errors.Is(err, domain.ErrNoSalesData):
			writeError(w, http.StatusNotFound, "Veri bulunamadı")
		case errors.Is(err, domain.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "Analiz hatası: "+err.Error())
		case errors.Is(err, domain.ErrContextTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "Analiz hatası: "+err.Error())
		case errors.Is(err, domain.ErrAuthFailed), errors.Is(err, domain.ErrInference):
			writeError(w, http.StatusBadGateway, "Analiz hatası: "+err.Error())
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "not found")
		default:
			writeError(w, http.StatusInternalServerError, "Hata: "+err.Error())
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// POST /api/analyze
// Body: {"prompt": "<analysis request>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	sess := r.sessions.Get(w, req)

	if r.limiter != nil && !r.limiter.Allow(sess.ID) {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "Çok fazla istek, lütfen biraz bekleyin.")
		return nil
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return nil
	}

	sess.Lock()
	defer sess.Unlock()

	res, err := r.svc.RunTurn(req.Context(), sess.ID, sess.History, body.Prompt)
	if err != nil {
		middleware.IncrementTurnsFailed()
		return err
	}
	middleware.IncrementTurns()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// GET /api/history — the session sidebar: last 20 prompts, newest first,
// each truncated to 100 characters.
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	sess := r.sessions.Get(w, req)

	sess.Lock()
	payload := map[string]any{
		"prompts": sess.History.SidebarPrompts(),
		"turns":   sess.History.Turns(),
	}
	sess.Unlock()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(payload)
}

// GET /api/responses/latest?limit=5 — from the durable log table.
func (r *Router) handleRecentResponses(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	list, err := r.svc.RecentLogged(req.Context(), limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.LogEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}
