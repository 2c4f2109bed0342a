package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/annel0/woodland/internal/logging"
	"github.com/annel0/woodland/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestServer(t *testing.T) (*Server, *metrics.GameMetrics) {
	t.Helper()
	gm, err := metrics.New("woodland")
	require.NoError(t, err)

	core, _ := observer.New(zapcore.DebugLevel)
	s, err := NewServer(Config{
		Addr:   "127.0.0.1:0",
		Game:   gm,
		Logger: logging.NewLoggerWithCore("api", core),
	})
	require.NoError(t, err)
	return s, gm
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestServer_Stats(t *testing.T) {
	s, gm := newTestServer(t)
	gm.ObserveTick(time.Millisecond)
	gm.SetTrees(9)

	rec := get(t, s.Handler(), "/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Ticks uint64 `json:"ticks"`
			Trees int64  `json:"trees"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint64(1), resp.Data.Ticks)
	assert.Equal(t, int64(9), resp.Data.Trees)
}

func TestServer_Metrics(t *testing.T) {
	s, gm := newTestServer(t)
	gm.SetTrees(4)
	get(t, s.Handler(), "/health")

	rec := get(t, s.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "woodland_trees 4")
	assert.True(t, strings.Contains(body, `diag_http_request_duration_seconds_count{method="GET",path="/health",status="200"} 1`))
}

func TestNewServer_RequiresMetrics(t *testing.T) {
	_, err := NewServer(Config{})
	assert.Error(t, err)
}
