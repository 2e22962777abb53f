// Package metrics exposes the service's Prometheus collectors on a private registry.
// Every Record method is safe on a nil *Metrics, so components can run unmetered in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "supplier_ledger"

// Save outcomes
const (
	OutcomeSynced     = "synced"
	OutcomeFailed     = "failed"
	OutcomeSuperseded = "superseded"
)

// Metrics holds every collector the service records
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	StoreSaves        *prometheus.CounterVec
	StoreSaveDuration *prometheus.HistogramVec

	ActivityPublished *prometheus.CounterVec
	ActivityArchived  *prometheus.CounterVec

	CircuitBreakerState *prometheus.GaugeVec
}

// New creates the collectors and registers them with Go and process collectors
func New(service string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"service": service}

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being processed",
			ConstLabels: constLabels,
		},
	)

	m.StoreSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "store_saves_total",
			Help:        "Remote collection saves by outcome",
			ConstLabels: constLabels,
		},
		[]string{"collection", "outcome"},
	)

	m.StoreSaveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "store_save_duration_seconds",
			Help:        "Remote collection save duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"collection"},
	)

	m.ActivityPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "activity_events_published_total",
			Help:        "Activity events published to Kafka",
			ConstLabels: constLabels,
		},
		[]string{"type", "status"},
	)

	m.ActivityArchived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "activity_events_archived_total",
			Help:        "Activity events consumed into the archive",
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)

	m.CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "circuit_breaker_state",
			Help:        "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			ConstLabels: constLabels,
		},
		[]string{"name"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.StoreSaves,
		m.StoreSaveDuration,
		m.ActivityPublished,
		m.ActivityArchived,
		m.CircuitBreakerState,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the private registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records one finished request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// InFlight adjusts the in-flight gauge by delta
func (m *Metrics) InFlight(delta float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Add(delta)
}

// RecordStoreSave records the outcome of a mirrored save
func (m *Metrics) RecordStoreSave(collection, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.StoreSaves.WithLabelValues(collection, outcome).Inc()
	if outcome != OutcomeSuperseded {
		m.StoreSaveDuration.WithLabelValues(collection).Observe(duration.Seconds())
	}
}

// RecordActivityPublished counts a publish attempt for an activity type
func (m *Metrics) RecordActivityPublished(activityType string, success bool) {
	if m == nil {
		return
	}
	m.ActivityPublished.WithLabelValues(activityType, status(success)).Inc()
}

// RecordActivityArchived counts a consumed activity event
func (m *Metrics) RecordActivityArchived(success bool) {
	if m == nil {
		return
	}
	m.ActivityArchived.WithLabelValues(status(success)).Inc()
}

// SetCircuitBreakerState publishes the numeric breaker state
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
