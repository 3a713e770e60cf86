package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisansaathi/kisansaathi-backend/internal/data/db"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

func testConfig() *Config {
	cfg := defaultConfig()
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.HTTP.ShutdownTimeout = time.Second
	cfg.Database = db.Config{Driver: db.DriverSQLite, DSN: "file:app_test?mode=memory&cache=shared"}
	return cfg
}

func TestNewWithConfigWiresWithoutCredential(t *testing.T) {
	ctx := context.Background()
	a, err := NewWithConfig(ctx, logger.Nop(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(ctx) })

	assert.Nil(t, a.Clients.Gemini)
	assert.Nil(t, a.Clients.Cache)
	require.NotNil(t, a.Clients.DB)
	require.NotNil(t, a.Repos.SearchLog)
	assert.Positive(t, a.Catalog.Len())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/schemes/search", strings.NewReader(`{"query":"irrigation"}`))
	req.Header.Set("Content-Type", "application/json")
	a.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)
}

func TestNewWithConfigFailsOnBadCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.CatalogPath = "/does/not/exist.yaml"
	_, err := NewWithConfig(context.Background(), logger.Nop(), cfg)
	require.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Database = db.Config{}
	a, err := NewWithConfig(context.Background(), logger.Nop(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
