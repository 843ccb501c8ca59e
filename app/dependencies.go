package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/config"
	"github.com/sprachlab/event-gateway/internal/observability"
	"github.com/sprachlab/event-gateway/middleware"
	"github.com/sprachlab/event-gateway/services/dispatch"
	"github.com/sprachlab/event-gateway/services/generate"
	"github.com/sprachlab/event-gateway/services/store"
	"github.com/sprachlab/event-gateway/services/transcribe"
	transcribemock "github.com/sprachlab/event-gateway/services/transcribe/mock"
	"github.com/sprachlab/event-gateway/services/validate"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics

	// Event pipeline
	Store      *store.Memory
	Dispatcher *dispatch.Dispatcher

	// Auth
	AuthMiddleware *middleware.AuthMiddleware

	// Supporting services
	Transcriber transcribe.Transcriber
	Generator   generate.ContentGenerator
	Evaluator   validate.SpeakingEvaluator
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.DefaultMetrics,
	}

	deps.Store = store.NewMemory(cfg.Ingest.StoreCapacity)

	deps.initDispatcher(cfg)
	deps.initAuth(cfg)

	deps.Transcriber = transcribemock.New()
	deps.Generator = generate.NewStub()
	deps.Evaluator = validate.NewStub()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDispatcher wires the event dispatcher with its configured sinks.
// The log sink always runs; the Kafka sink is added behind it and degrades
// to log-only when no broker is configured.
func (d *Dependencies) initDispatcher(cfg *config.Config) {
	sinks := []dispatch.Sink{
		dispatch.NewLogSink(d.Logger),
	}

	if cfg.Kafka.Enabled {
		kafkaSink := dispatch.NewKafkaSink(dispatch.KafkaConfig{
			Enabled: cfg.Kafka.Enabled,
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, d.Logger)
		sinks = append(sinks, kafkaSink)
	}

	d.Dispatcher = dispatch.New(dispatch.Config{
		Mode:      cfg.Dispatch.Mode,
		QueueSize: cfg.Dispatch.QueueSize,
		Workers:   cfg.Dispatch.Workers,
	}, d.Logger, d.Metrics, sinks...)

	d.Logger.Info("dispatcher initialized",
		zap.String("mode", cfg.Dispatch.Mode),
		zap.Bool("kafka", cfg.Kafka.Enabled))
}

func (d *Dependencies) initAuth(cfg *config.Config) {
	d.AuthMiddleware = middleware.NewAuthMiddleware(cfg.Ingest.Token, d.Logger, d.Metrics)
	if !cfg.Ingest.AuthEnabled() {
		d.Logger.Warn("no ingest token configured, authentication disabled")
	}
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Drain the dispatch queue and close sinks
	if d.Dispatcher != nil {
		if err := d.Dispatcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close dispatcher: %w", err))
		} else {
			d.Logger.Info("dispatcher drained and closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
