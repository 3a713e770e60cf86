package observability

import (
	"context"
	"strings"

	"github.com/kisansaathi/kisansaathi-backend/internal/platform/ctxutil"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

// ReportDataQuality logs and counts a data quality issue. It never fails the
// caller; the response the user sees is unaffected.
func ReportDataQuality(ctx context.Context, log *logger.Logger, m *Metrics, stage, issue string, count int, meta map[string]any) {
	if count <= 0 {
		return
	}
	stage = strings.TrimSpace(stage)
	if stage == "" {
		stage = "unknown"
	}
	m.AddDataQuality(stage, issue, count)
	if log == nil {
		return
	}
	fields := []interface{}{"stage", stage, "issue", issue, "count", count}
	fields = append(fields, ctxutil.LogFields(ctx)...)
	for k, v := range meta {
		fields = append(fields, k, v)
	}
	log.Warn("Data quality issue", fields...)
}
