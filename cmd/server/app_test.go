package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8000,
			LogLevel:        "debug",
			ShutdownTimeout: 2 * time.Second,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		},
		Store: config.StoreConfig{
			IDPolicy:       "auto",
			MismatchPolicy: "force",
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	app, err := newApplication(cfg, log)
	require.NoError(t, err)
	return app
}

func TestNewApplicationRejectsUnknownPolicies(t *testing.T) {
	log, _ := logger.NewTestLogger(t)

	cfg := testConfig()
	cfg.Store.IDPolicy = "random"
	_, err := newApplication(cfg, log)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Store.MismatchPolicy = "ignore"
	_, err = newApplication(cfg, log)
	assert.Error(t, err)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router := newTestApp(t, testConfig()).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	create := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"Buy milk"}`))
	router.ServeHTTP(httptest.NewRecorder(), create)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="POST",route="/tasks`)
	assert.Contains(t, body, `status="201"`)
	assert.Contains(t, body, `task_events_total{type="task.created"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestRouter_RecoveredPanicIsCounted(t *testing.T) {
	router := newTestApp(t, testConfig()).setupRouter()
	mux, ok := router.(*chi.Mux)
	require.True(t, ok)
	mux.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/boom",status="500"} 1`)
}

func TestRouter_TaskLifecycle(t *testing.T) {
	router := newTestApp(t, testConfig()).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks",
		strings.NewReader(`{"title":"Walk dog","description":"evening","completed":true}`)))
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.EqualValues(t, 1, created["id"])
	assert.Equal(t, "evening", created["description"])
	_, err := time.Parse(time.RFC3339, created["created_at"].(string))
	assert.NoError(t, err, "created_at should be RFC 3339")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks?completed=true&search=DOG", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	require.Len(t, listed, 1)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tasks/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	router := newTestApp(t, cfg).setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	app := newTestApp(t, testConfig())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, listener, app.setupRouter()) }()

	url := "http://" + listener.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStartHTTPServer_ListenError(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()

	cfg := testConfig()
	cfg.Server.Port = occupied.Addr().(*net.TCPAddr).Port
	app := newTestApp(t, cfg)

	err = app.startHTTPServer(context.Background(), app.setupRouter())
	assert.Error(t, err)
}
