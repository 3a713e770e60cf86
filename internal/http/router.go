package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/kisansaathi/kisansaathi-backend/internal/http/handlers"
	httpMW "github.com/kisansaathi/kisansaathi-backend/internal/http/middleware"
	"github.com/kisansaathi/kisansaathi-backend/internal/observability"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	SchemeHandler *httpH.SchemeHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Schemes
		if cfg.SchemeHandler != nil {
			api.POST("/schemes/search", cfg.SchemeHandler.Search)
			api.GET("/schemes", cfg.SchemeHandler.List)
			api.GET("/schemes/:id", cfg.SchemeHandler.Get)
		}
	}

	return r
}
