package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kisansaathi/kisansaathi-backend/internal/data/catalog"
	server "github.com/kisansaathi/kisansaathi-backend/internal/http"
	httpH "github.com/kisansaathi/kisansaathi-backend/internal/http/handlers"
	"github.com/kisansaathi/kisansaathi-backend/internal/observability"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Scheme *httpH.SchemeHandler
}

func wireHandlers(log *logger.Logger, cat catalog.Catalog, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")
	checks := map[string]httpH.ReadinessCheck{
		"catalog": func(context.Context) error {
			if cat.Len() == 0 {
				return errEmptyCatalog
			}
			return nil
		},
	}
	if clients.Cache != nil {
		checks["redis"] = clients.Cache.Ping
	}
	if clients.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := clients.DB.DB().DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return Handlers{
		Health: httpH.NewHealthHandler(checks),
		Scheme: httpH.NewSchemeHandler(services.SchemeSearch),
	}
}

func wireRouter(log *logger.Logger, cfg *Config, handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return server.NewRouter(server.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		SchemeHandler:  handlers.Scheme,
		HealthHandler:  handlers.Health,
	})
}
