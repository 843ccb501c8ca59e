package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/app"
	"github.com/sprachlab/event-gateway/config"
	"github.com/sprachlab/event-gateway/models"
)

func testConfig(token string) *config.Config {
	return &config.Config{
		Environment: "development",
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Ingest: config.IngestConfig{
			Token:         token,
			PathPrefix:    "/events",
			MaxBodyBytes:  1 << 20,
			StoreCapacity: 100,
		},
		Dispatch: config.DispatchConfig{Mode: "sync", QueueSize: 256, Workers: 4},
		Observability: config.ObservabilityConfig{
			LogLevel:       "info",
			LogFormat:      "json",
			MetricsEnabled: true,
		},
	}
}

func testRouter(t *testing.T, token string) http.Handler {
	t.Helper()
	deps, err := app.NewDependencies(context.Background(), testConfig(token), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close(context.Background()) })
	return SetupRoutes(deps)
}

func TestEventRoutes(t *testing.T) {
	validBody := `{"event_id":"evt-1","event_type":"user.signup","event_data":{"plan":"free"}}`

	t.Run("POST /events/ accepts a valid event", func(t *testing.T) {
		router := testRouter(t, "")

		req := httptest.NewRequest(http.MethodPost, "/events/", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"message":"Data received!"}`, w.Body.String())
	})

	t.Run("POST /events/ rejects an invalid event", func(t *testing.T) {
		router := testRouter(t, "")

		req := httptest.NewRequest(http.MethodPost, "/events/", strings.NewReader(`{"event_type":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("GET /events/ lists accepted events", func(t *testing.T) {
		router := testRouter(t, "")

		post := httptest.NewRequest(http.MethodPost, "/events/", strings.NewReader(validBody))
		post.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(httptest.NewRecorder(), post)

		get := httptest.NewRequest(http.MethodGet, "/events/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, get)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.ListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "evt-1", resp.Data[0].Event.EventID)
	})

	t.Run("configured token gates both event endpoints", func(t *testing.T) {
		router := testRouter(t, "secret-token")

		post := httptest.NewRequest(http.MethodPost, "/events/", strings.NewReader(validBody))
		post.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, post)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail":"Invalid authentication token"}`, w.Body.String())

		get := httptest.NewRequest(http.MethodGet, "/events/", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, get)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("correct token passes the gate", func(t *testing.T) {
		router := testRouter(t, "secret-token")

		req := httptest.NewRequest(http.MethodPost, "/events/", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer secret-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}

func TestOperationalRoutes(t *testing.T) {
	t.Run("healthz responds", func(t *testing.T) {
		router := testRouter(t, "")

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ok")
	})

	t.Run("readyz responds", func(t *testing.T) {
		router := testRouter(t, "")

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics endpoint is exposed when enabled", func(t *testing.T) {
		router := testRouter(t, "")

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics endpoint is absent when disabled", func(t *testing.T) {
		cfg := testConfig("")
		cfg.Observability.MetricsEnabled = false
		deps, err := app.NewDependencies(context.Background(), cfg, zap.NewNop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = deps.Close(context.Background()) })
		router := SetupRoutes(deps)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("generate is mounted as POST", func(t *testing.T) {
		router := testRouter(t, "")

		req := httptest.NewRequest(http.MethodPost, "/generate/listening?topic=travel", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		get := httptest.NewRequest(http.MethodGet, "/generate/listening?topic=travel", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, get)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("transcribe is mounted at the trailing-slash path", func(t *testing.T) {
		router := testRouter(t, "")

		// No multipart body, so the handler rejects it, but the route
		// itself resolves.
		req := httptest.NewRequest(http.MethodPost, "/transcribe/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("speaking validation is mounted", func(t *testing.T) {
		router := testRouter(t, "")

		req := httptest.NewRequest(http.MethodPost, "/validate/speaking", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unknown route returns a JSON 404", func(t *testing.T) {
		router := testRouter(t, "")

		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"detail":"resource not found"}`, w.Body.String())
	})
}

func TestCustomPathPrefix(t *testing.T) {
	cfg := testConfig("")
	cfg.Ingest.PathPrefix = "/ingest"
	deps, err := app.NewDependencies(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close(context.Background()) })
	router := SetupRoutes(deps)

	body := `{"event_id":"evt-1","event_type":"ping","event_data":{}}`
	req := httptest.NewRequest(http.MethodPost, "/ingest/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	old := httptest.NewRequest(http.MethodPost, "/events/", strings.NewReader(body))
	old.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, old)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
