package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/models"
)

// LogSink records accepted events in the structured log. It never fails, so
// it is a safe default sink for deployments without a broker.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Name implements Sink.
func (s *LogSink) Name() string {
	return "log"
}

// Deliver implements Sink.
func (s *LogSink) Deliver(_ context.Context, ev models.StoredEvent) error {
	s.logger.Info("event accepted",
		zap.String("receipt_id", ev.ReceiptID.String()),
		zap.String("event_id", ev.Event.EventID),
		zap.String("event_type", ev.Event.EventType))
	return nil
}

// Close implements Sink.
func (s *LogSink) Close() error {
	return nil
}
