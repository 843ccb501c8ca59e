package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sprachlab/event-gateway/app"
	"github.com/sprachlab/event-gateway/handlers"
	appmiddleware "github.com/sprachlab/event-gateway/middleware"
	"github.com/sprachlab/event-gateway/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	eventHandler := handlers.NewEventHandler(
		deps.Store,
		deps.Dispatcher,
		deps.Metrics,
		deps.Logger,
		deps.Config.Ingest.MaxBodyBytes,
	)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Dispatcher)
	transcribeHandler := handlers.NewTranscribeHandler(deps.Transcriber, deps.Logger)
	generateHandler := handlers.NewGenerateHandler(deps.Generator, deps.Logger)
	validateHandler := handlers.NewValidateHandler(deps.Transcriber, deps.Evaluator, deps.Logger)

	// Health check endpoints
	r.Get("/healthz", healthHandler.HandleHealth)
	r.Get("/readyz", healthHandler.HandleReadiness)

	// Prometheus metrics
	if deps.Config.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Event ingestion under the configured prefix
	mountEvents(r, deps.Config.Ingest.PathPrefix, eventHandler, deps.AuthMiddleware)

	// Supporting endpoints
	r.Post("/transcribe/", transcribeHandler.HandleTranscribe)
	r.Post("/generate/{skill}", generateHandler.HandleGenerate)
	r.Post("/validate/speaking", validateHandler.HandleValidateSpeaking)

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "resource not found")
	})

	return r
}

// mountEvents mounts the event ingestion endpoints under the given prefix.
// The bearer token check applies to the whole group and is a no-op when no
// token is configured.
func mountEvents(r chi.Router, prefix string, h *handlers.EventHandler, auth *appmiddleware.AuthMiddleware) {
	r.Route(prefix, func(r chi.Router) {
		r.Use(auth.RequireToken)
		r.Post("/", h.HandleIngest)
		r.Get("/", h.HandleList)
	})
}
