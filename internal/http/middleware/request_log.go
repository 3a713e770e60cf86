package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kisansaathi/kisansaathi-backend/internal/platform/ctxutil"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

// quietPaths are polled by orchestrators and scrapers; successful hits are
// logged at debug level only.
var quietPaths = map[string]bool{
	"/healthcheck": true,
	"/readyz":      true,
	"/metrics":     true,
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
		}
		fields = append(fields, ctxutil.LogFields(c.Request.Context())...)
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		case quietPaths[path]:
			log.Debug("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
