package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kisansaathi/kisansaathi-backend/internal/clients/redis"
	"github.com/kisansaathi/kisansaathi-backend/internal/data/db"
	"github.com/kisansaathi/kisansaathi-backend/internal/observability"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/envutil"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/gemini"
)

const configPathEnv = "KISANSAATHI_CONFIG_PATH"

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type Config struct {
	Env            string                   `yaml:"env"`
	HTTP           HTTPConfig               `yaml:"http"`
	CatalogPath    string                   `yaml:"catalog_path"`
	Gemini         gemini.Config            `yaml:"gemini"`
	Redis          redis.Config             `yaml:"redis"`
	Database       db.Config                `yaml:"database"`
	MetricsEnabled bool                     `yaml:"metrics_enabled"`
	Otel           observability.OtelConfig `yaml:"otel"`
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 15 * time.Second,
		},
		Gemini: gemini.DefaultConfig(),
		Redis: redis.Config{
			TTL:    redis.DefaultTTL,
			Prefix: redis.DefaultKeyPrefix,
		},
		Database:       db.Config{Driver: db.DriverPostgres},
		MetricsEnabled: true,
		Otel: observability.OtelConfig{
			ServiceName: observability.DefaultServiceName,
			SampleRatio: 0.1,
		},
	}
}

// LoadConfig applies defaults, then the optional YAML file, then environment
// variables, and validates the result.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv(configPathEnv))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)

	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.ShutdownTimeout = envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout)
	cfg.HTTP.AllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.HTTP.AllowedOrigins)

	cfg.CatalogPath = envutil.String("SCHEME_CATALOG_PATH", cfg.CatalogPath)

	cfg.Gemini.APIKey = envutil.String("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Model = envutil.String("GEMINI_MODEL", cfg.Gemini.Model)
	cfg.Gemini.BaseURL = envutil.String("GEMINI_BASE_URL", cfg.Gemini.BaseURL)
	cfg.Gemini.Temperature = envutil.Float("GEMINI_TEMPERATURE", cfg.Gemini.Temperature)
	cfg.Gemini.TopK = envutil.Float("GEMINI_TOP_K", cfg.Gemini.TopK)
	cfg.Gemini.TopP = envutil.Float("GEMINI_TOP_P", cfg.Gemini.TopP)
	cfg.Gemini.MaxOutputTokens = envutil.Int("GEMINI_MAX_OUTPUT_TOKENS", cfg.Gemini.MaxOutputTokens)
	cfg.Gemini.Timeout = envutil.Duration("GEMINI_TIMEOUT", cfg.Gemini.Timeout)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.TTL = envutil.Duration("RANKING_CACHE_TTL", cfg.Redis.TTL)

	cfg.Database.Driver = envutil.String("DATABASE_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = envutil.String("DATABASE_DSN", cfg.Database.DSN)

	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment)
	cfg.Otel.Version = envutil.String("OTEL_SERVICE_VERSION", cfg.Otel.Version)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	if h := observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")); h != nil {
		cfg.Otel.Headers = h
	}
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "development"
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("http addr is required")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 15 * time.Second
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE must be within [0,2], got %v", c.Gemini.Temperature)
	}
	if c.Gemini.TopP < 0 || c.Gemini.TopP > 1 {
		return fmt.Errorf("GEMINI_TOP_P must be within [0,1], got %v", c.Gemini.TopP)
	}
	if c.Gemini.TopK < 0 {
		return fmt.Errorf("GEMINI_TOP_K must not be negative, got %v", c.Gemini.TopK)
	}
	if c.Gemini.MaxOutputTokens < 0 {
		return fmt.Errorf("GEMINI_MAX_OUTPUT_TOKENS must not be negative, got %d", c.Gemini.MaxOutputTokens)
	}
	if c.Gemini.Timeout < 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must not be negative, got %s", c.Gemini.Timeout)
	}
	switch strings.ToLower(strings.TrimSpace(c.Database.Driver)) {
	case "", db.DriverPostgres, "postgresql", db.DriverSQLite, "sqlite3":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	return nil
}
