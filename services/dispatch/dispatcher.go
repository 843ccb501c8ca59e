// Package dispatch hands accepted events to downstream sinks. The gateway
// itself does no processing of event_data; sinks are the attachment point
// for whatever consumes accepted events.
package dispatch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/internal/observability"
	"github.com/sprachlab/event-gateway/models"
)

// Sink consumes accepted events. Deliver must be safe for concurrent use;
// a failing sink affects only the requests routed through it.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string
	// Deliver hands one accepted event to the sink.
	Deliver(ctx context.Context, ev models.StoredEvent) error
	// Close releases sink resources.
	Close() error
}

// Dispatch modes. In sync mode delivery happens inline in the request and a
// sink error propagates to the caller. In async mode events are queued and
// delivered by workers; enqueueing never blocks the request.
const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// Config holds dispatcher configuration.
type Config struct {
	Mode      string
	QueueSize int
	Workers   int
}

// Dispatcher fans accepted events out to its sinks in either mode.
type Dispatcher struct {
	sinks   []Sink
	mode    string
	queue   chan models.StoredEvent
	wg      sync.WaitGroup
	logger  *zap.Logger
	metrics *observability.Metrics

	closeOnce sync.Once
}

// New creates a Dispatcher and, in async mode, starts its workers.
func New(cfg Config, logger *zap.Logger, metrics *observability.Metrics, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:   sinks,
		mode:    cfg.Mode,
		logger:  logger,
		metrics: metrics,
	}

	if cfg.Mode == ModeAsync {
		queueSize := cfg.QueueSize
		if queueSize <= 0 {
			queueSize = 256
		}
		workers := cfg.Workers
		if workers <= 0 {
			workers = 4
		}

		d.queue = make(chan models.StoredEvent, queueSize)
		for i := 0; i < workers; i++ {
			d.wg.Add(1)
			go d.worker()
		}
		logger.Info("async dispatcher started",
			zap.Int("workers", workers),
			zap.Int("queue_size", queueSize))
	}

	return d
}

// Dispatch routes one accepted event to the sinks.
//
// Sync mode delivers inline and returns the first sink error, which the
// handler surfaces as an internal error. Async mode enqueues and returns
// immediately; when the queue is full the event is dropped with a warning
// rather than blocking the request.
func (d *Dispatcher) Dispatch(ctx context.Context, ev models.StoredEvent) error {
	if d.mode != ModeAsync {
		return d.deliver(ctx, ev)
	}

	select {
	case d.queue <- ev:
		return nil
	default:
		d.metrics.RecordDropped()
		d.logger.Warn("dispatch queue full, dropping event",
			zap.String("event_id", ev.Event.EventID),
			zap.String("event_type", ev.Event.EventType))
		return nil
	}
}

// Mode returns the configured dispatch mode.
func (d *Dispatcher) Mode() string {
	return d.mode
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		// Async failures are logged and counted; there is no caller left
		// to answer to. Accepted does not mean processed.
		if err := d.deliver(context.Background(), ev); err != nil {
			d.logger.Error("async delivery failed",
				zap.String("event_id", ev.Event.EventID),
				zap.Error(err))
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ev models.StoredEvent) error {
	var firstErr error
	for _, s := range d.sinks {
		start := time.Now()
		err := s.Deliver(ctx, ev)
		d.metrics.RecordDispatch(s.Name(), err, time.Since(start).Seconds())
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close stops intake, drains the async queue, waits for workers, and closes
// every sink. Safe to call more than once.
func (d *Dispatcher) Close() error {
	var err error
	d.closeOnce.Do(func() {
		if d.queue != nil {
			close(d.queue)
			d.wg.Wait()
		}
		for _, s := range d.sinks {
			if e := s.Close(); e != nil {
				d.logger.Error("sink close failed",
					zap.String("sink", s.Name()),
					zap.Error(e))
				if err == nil {
					err = e
				}
			}
		}
	})
	return err
}
