package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/kisansaathi/kisansaathi-backend/internal/data/catalog"
	server "github.com/kisansaathi/kisansaathi-backend/internal/http"
	"github.com/kisansaathi/kisansaathi-backend/internal/observability"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

var errEmptyCatalog = errors.New("scheme catalog is empty")

type App struct {
	Log      *logger.Logger
	Cfg      *Config
	Catalog  catalog.Catalog
	Clients  Clients
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	Router   *gin.Engine

	otelShutdown func(context.Context) error
}

// New loads configuration from the environment and wires the application.
func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return NewWithConfig(ctx, log, cfg)
}

func NewWithConfig(ctx context.Context, log *logger.Logger, cfg *Config) (*App, error) {
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	cat, err := catalog.Load(log, cfg.CatalogPath)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("load scheme catalog: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}
	reposet := wireRepos(log, clients)
	serviceset, err := wireServices(log, cat, clients, reposet, metrics)
	if err != nil {
		clients.close(log)
		_ = otelShutdown(ctx)
		return nil, err
	}
	handlerset := wireHandlers(log, cat, clients, serviceset)
	router := wireRouter(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Catalog:      cat,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		Router:       router,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := server.NewServer(a.Cfg.HTTP.Addr, a.Router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTP.Addr, "catalog_size", a.Catalog.Len())
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.Log.Info("Shutting down HTTP server", "timeout", a.Cfg.HTTP.ShutdownTimeout.String())
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close releases clients and flushes traces and logs.
func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	a.Clients.close(a.Log)
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
