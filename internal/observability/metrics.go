package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "event_gateway"

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	EventsAccepted prometheus.Counter
	EventsRejected *prometheus.CounterVec

	DispatchTotal   *prometheus.CounterVec
	DispatchErrors  *prometheus.CounterVec
	DispatchDropped prometheus.Counter
	DispatchLatency *prometheus.HistogramVec

	StoreEvents prometheus.Gauge
}

// DefaultMetrics is the global metrics instance. Registration with the
// default registerer happens once, at package init.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		EventsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_accepted_total",
			Help:      "Total number of events accepted with 202",
		}),
		EventsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_rejected_total",
			Help:      "Total number of events rejected, by reason",
		}, []string{"reason"}),

		DispatchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_total",
			Help:      "Total number of sink deliveries attempted",
		}, []string{"sink"}),
		DispatchErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_errors_total",
			Help:      "Total number of failed sink deliveries",
		}, []string{"sink"}),
		DispatchDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_dropped_total",
			Help:      "Total number of events dropped because the async queue was full",
		}),
		DispatchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_latency_seconds",
			Help:      "Sink delivery latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"sink"}),

		StoreEvents: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_events",
			Help:      "Number of events currently held in the in-memory store",
		}),
	}
}

// RecordAccepted records an event accepted with 202.
func (m *Metrics) RecordAccepted() {
	m.EventsAccepted.Inc()
}

// RecordRejected records a rejected event. Reason is "validation" or "auth".
func (m *Metrics) RecordRejected(reason string) {
	m.EventsRejected.WithLabelValues(reason).Inc()
}

// RecordDispatch records a sink delivery attempt.
func (m *Metrics) RecordDispatch(sink string, err error, latencySeconds float64) {
	m.DispatchTotal.WithLabelValues(sink).Inc()
	m.DispatchLatency.WithLabelValues(sink).Observe(latencySeconds)
	if err != nil {
		m.DispatchErrors.WithLabelValues(sink).Inc()
	}
}

// RecordDropped records an event dropped on a full async queue.
func (m *Metrics) RecordDropped() {
	m.DispatchDropped.Inc()
}

// SetStoreSize records the current store occupancy.
func (m *Metrics) SetStoreSize(n int) {
	m.StoreEvents.Set(float64(n))
}
