package dispatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/models"
)

// KafkaConfig holds Kafka sink configuration.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// KafkaSink publishes accepted events to a Kafka topic, keyed by event_id.
// When disabled (or given no brokers) it runs in log-only mode so the rest
// of the pipeline behaves identically with and without a broker.
type KafkaSink struct {
	writer  *kafka.Writer
	topic   string
	enabled bool
	logger  *zap.Logger
}

// NewKafkaSink creates a Kafka sink from the given configuration.
func NewKafkaSink(cfg KafkaConfig, logger *zap.Logger) *KafkaSink {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		logger.Info("kafka disabled, sink running in log-only mode")
		return &KafkaSink{
			topic:   cfg.Topic,
			enabled: false,
			logger:  logger,
		}
	}

	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    &kafka.Transport{Dial: dialer.DialFunc},
	}

	logger.Info("kafka sink initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic))

	return &KafkaSink{
		writer:  writer,
		topic:   cfg.Topic,
		enabled: true,
		logger:  logger,
	}
}

// Name implements Sink.
func (s *KafkaSink) Name() string {
	return "kafka"
}

// Deliver implements Sink. Events are keyed by event_id so duplicates land
// on the same partition for any downstream that cares.
func (s *KafkaSink) Deliver(ctx context.Context, ev models.StoredEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("failed to marshal event", zap.Error(err))
		return err
	}

	s.logger.Debug("publishing event",
		zap.String("topic", s.topic),
		zap.String("event_id", ev.Event.EventID),
		zap.String("event_type", ev.Event.EventType))

	if !s.enabled {
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(ev.Event.EventID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(ev.Event.EventType)},
		},
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		s.logger.Error("failed to write to kafka",
			zap.String("topic", s.topic),
			zap.String("event_id", ev.Event.EventID),
			zap.Error(err))
		return err
	}

	return nil
}

// Close closes the Kafka writer.
func (s *KafkaSink) Close() error {
	if s.writer == nil {
		return nil
	}
	return s.writer.Close()
}
