package server_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aidin1998/apiexercises/common/apiutil"
	"github.com/Aidin1998/apiexercises/internal/config"
	"github.com/Aidin1998/apiexercises/internal/server"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupServer() *server.Server {
	gin.SetMode(gin.TestMode)
	return server.New(zap.NewNop(), config.ServerConfig{Host: "127.0.0.1", Port: 0}, "test")
}

func TestHealthCheck(t *testing.T) {
	srv := setupServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "test", resp["service"])
	assert.NotEmpty(t, w.Header().Get(apiutil.RequestIDHeader))
}

func TestHealthCheckDegraded(t *testing.T) {
	srv := setupServer()
	srv.AddHealthCheck("database", func(context.Context) error { return nil })
	srv.AddHealthCheck("redis", func(context.Context) error { return stderrors.New("connection refused") })

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "ok", resp.Dependencies["database"])
	assert.Equal(t, "connection refused", resp.Dependencies["redis"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := setupServer()
	srv.Router().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	srv.Router().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestErrorsAreRendered(t *testing.T) {
	srv := setupServer()
	srv.Router().GET("/missing", func(c *gin.Context) {
		apiutil.Abort(c, errors.NotFound.Explain("Recipe not found!"))
	})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Recipe not found!"}`, w.Body.String())
}

func TestPanicsAreRecovered(t *testing.T) {
	srv := setupServer()
	srv.Router().GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRunStopsWithContext(t *testing.T) {
	srv := setupServer()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
