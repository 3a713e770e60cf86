package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/kisansaathi/kisansaathi-backend/internal/clients/redis"
	"github.com/kisansaathi/kisansaathi-backend/internal/data/db"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/gemini"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

type Clients struct {
	Gemini gemini.Client      // nil when GEMINI_API_KEY is unset
	Cache  redis.RankingCache // nil when REDIS_ADDR is unset or unreachable
	DB     *db.Service        // nil when DATABASE_DSN is unset
}

func wireClients(ctx context.Context, log *logger.Logger, cfg *Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	llm, err := gemini.NewClient(ctx, log, cfg.Gemini)
	switch {
	case errors.Is(err, gemini.ErrMissingAPIKey):
		log.Warn("GEMINI_API_KEY not set; scheme search will answer 500 until it is configured")
	case err != nil:
		return out, fmt.Errorf("init gemini: %w", err)
	default:
		out.Gemini = llm
	}

	if cfg.Redis.Addr != "" {
		cache, err := redis.NewRankingCache(log, cfg.Redis)
		if err != nil {
			log.Warn("Ranking cache unavailable; continuing without it", "error", err)
		} else {
			out.Cache = cache
		}
	}

	if cfg.Database.Enabled() {
		svc, err := db.Open(log, cfg.Database)
		if err != nil {
			out.close(log)
			return out, fmt.Errorf("init database: %w", err)
		}
		out.DB = svc
	}
	return out, nil
}

func (c Clients) close(log *logger.Logger) {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn("Ranking cache close failed", "error", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn("Database close failed", "error", err)
		}
	}
}
