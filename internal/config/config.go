package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Required secrets. Startup aborts when any of them is missing.
const (
	EnvSupabaseURL   = "SUPABASE_URL"
	EnvSupabaseKey   = "SUPABASE_KEY"
	EnvOpenRouterKey = "OPENROUTER_API_KEY"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Driver  string `yaml:"driver"` // "postgres" (default) or "mysql"
		Port    int    `yaml:"port"`
		User    string `yaml:"user"`
		Name    string `yaml:"name"`
		SSLMode string `yaml:"sslmode"`
	} `yaml:"database"`

	AI struct {
		BaseURL string `yaml:"baseURL"`
		Model   string `yaml:"model"`
		Referer string `yaml:"referer"`
		Title   string `yaml:"title"`
	} `yaml:"ai"`

	Prompt struct {
		MaxRows int `yaml:"maxRows"`
	} `yaml:"prompt"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	// Secrets, taken from the environment only.
	DatabaseEndpoint string `yaml:"-"`
	DatabaseKey      string `yaml:"-"`
	OpenRouterAPIKey string `yaml:"-"`
}

// Load reads config.yaml (path overridable via CONFIG_PATH), applies
// defaults, then pulls the three required secrets from the environment.
// A missing config file is fine; missing secrets are not.
func Load(path string) (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyDefaults()

	cfg.DatabaseEndpoint = os.Getenv(EnvSupabaseURL)
	cfg.DatabaseKey = os.Getenv(EnvSupabaseKey)
	cfg.OpenRouterAPIKey = os.Getenv(EnvOpenRouterKey)

	if missing := cfg.missingSecrets(); len(missing) > 0 {
		return nil, fmt.Errorf("API anahtarları eksik: %s (.env dosyasını kontrol edin)",
			strings.Join(missing, ", "))
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.Port == 0 {
		if c.Database.Driver == "mysql" {
			c.Database.Port = 3306
		} else {
			c.Database.Port = 5432
		}
	}
	if c.Database.User == "" {
		c.Database.User = "postgres"
	}
	if c.Database.Name == "" {
		c.Database.Name = "postgres"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "require"
	}
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = "https://openrouter.ai/api/v1"
	}
	if c.AI.Model == "" {
		c.AI.Model = "deepseek/deepseek-chat-v3-0324:free"
	}
	if c.AI.Referer == "" {
		c.AI.Referer = "https://sales-analytics.com"
	}
	if c.AI.Title == "" {
		c.AI.Title = "Sales Analiz Botu"
	}
	if c.Prompt.MaxRows == 0 {
		c.Prompt.MaxRows = 200
	}
}

func (c *Config) missingSecrets() []string {
	var missing []string
	if c.DatabaseEndpoint == "" {
		missing = append(missing, EnvSupabaseURL)
	}
	if c.DatabaseKey == "" {
		missing = append(missing, EnvSupabaseKey)
	}
	if c.OpenRouterAPIKey == "" {
		missing = append(missing, EnvOpenRouterKey)
	}
	return missing
}

// ArchiveEnabled reports whether the optional minio archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.Minio.Endpoint != "" && c.Minio.BucketName != ""
}

// DSN builds the connection string for the configured driver. The database
// host comes from SUPABASE_URL, the password from SUPABASE_KEY; user, port
// and database name come from the yaml layer.
func (c *Config) DSN() string {
	if c.Database.Driver == "mysql" {
		return c.mysqlDSN()
	}
	return c.postgresDSN()
}

func (c *Config) postgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.databaseHost(),
		c.Database.Port,
		c.Database.User,
		c.DatabaseKey,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) mysqlDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.DatabaseKey,
		c.databaseHost(),
		c.Database.Port,
		c.Database.Name,
	)
}

// databaseHost strips any scheme and port from the endpoint so both
// "db.xyz.supabase.co" and "https://db.xyz.supabase.co:5432" work.
func (c *Config) databaseHost() string {
	endpoint := strings.TrimSpace(c.DatabaseEndpoint)
	if strings.Contains(endpoint, "://") {
		if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
			endpoint = u.Host
		}
	}
	if host, _, ok := strings.Cut(endpoint, ":"); ok {
		endpoint = host
	}
	return endpoint
}
