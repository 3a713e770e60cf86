package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.IncSearch("ranked")
	m.ObservePrefilter(3, false)
	m.ObserveRanker(time.Second, errors.New("boom"))
	m.IncRankerFailure("provider")
	m.IncCacheLookup("hit")
	m.AddDataQuality("assemble", "unknown_id", 2)
	assert.Nil(t, m.Registry())
}

func TestMetricsHandlerExposesCounters(t *testing.T) {
	m := NewMetrics()
	m.IncSearch("fallback")
	m.IncRankerFailure("parse")
	m.ObserveAPI("POST", "/api/schemes/search", "200", 20*time.Millisecond)
	ReportDataQuality(context.Background(), logger.Nop(), m, "assemble", "unknown_scheme_id", 1, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	for _, want := range []string{
		`kisansaathi_scheme_search_total{outcome="fallback"} 1`,
		`kisansaathi_ranker_failures_total{reason="parse"} 1`,
		`kisansaathi_data_quality_issues_total{issue="unknown_scheme_id",stage="assemble"} 1`,
		`kisansaathi_api_requests_total{method="POST",route="/api/schemes/search",status="200"} 1`,
	} {
		assert.True(t, strings.Contains(text, want), "missing %q", want)
	}
}

func TestParseHeaders(t *testing.T) {
	assert.Nil(t, ParseHeaders(""))
	assert.Nil(t, ParseHeaders("broken,=x"))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, ParseHeaders(" a=1 , b=2,c"))
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.Nop(), OtelConfig{})
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
