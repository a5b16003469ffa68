// Package metrics exposes Prometheus collectors for engine operations and
// ingested messages.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/lexis/internal/fault"
)

const namespace = "lexis"

// Operation kinds, used as the "kind" label.
const (
	KindReview  = "review"
	KindAnswer  = "answer"
	KindSession = "session"
	KindSweep   = "sweep"
)

// Metrics holds the collectors on a private registry so tests and
// multiple engines never collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	applied  *prometheus.CounterVec
	failed   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	due      *prometheus.GaugeVec
	messages *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_applied_total",
			Help:      "Events applied and persisted, by kind.",
		}, []string{"kind"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_failures_total",
			Help:      "Events rejected or failed, by kind and error class.",
		}, []string{"kind", "class"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_duration_seconds",
			Help:      "Time spent applying an event, including persistence.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		due: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "due_items",
			Help:      "Items due at the last sweep, by kind.",
		}, []string{"kind"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_messages_total",
			Help:      "Broker messages handled, by routing key and outcome.",
		}, []string{"routing_key", "outcome"}),
	}
	m.registry.MustRegister(m.applied, m.failed, m.duration, m.due, m.messages)
	return m
}

// Observe records one operation that started at start and ended with err.
func (m *Metrics) Observe(kind string, start time.Time, err error) {
	m.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		m.failed.WithLabelValues(kind, string(fault.ClassOf(err))).Inc()
		return
	}
	m.applied.WithLabelValues(kind).Inc()
}

// SetDue records the due counts found by a sweep.
func (m *Metrics) SetDue(cards, questions int) {
	m.due.WithLabelValues("card").Set(float64(cards))
	m.due.WithLabelValues("question").Set(float64(questions))
}

// Message counts one broker message. Outcome is "ack", "reject" or "requeue".
func (m *Metrics) Message(routingKey, outcome string) {
	m.messages.WithLabelValues(routingKey, outcome).Inc()
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
