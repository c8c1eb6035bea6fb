// Package telemetry exports Prometheus metrics for the dashboard endpoints.
package telemetry

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// MetricsNamespace is the namespace for all paneldeck metrics.
	MetricsNamespace = "paneldeck"

	// MetricsSubsystem is the subsystem for the aggregation engine.
	MetricsSubsystem = "metrics"
)

// Metrics holds all paneldeck Prometheus metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	PagesFetched     *prometheus.CounterVec
	DocumentsScanned *prometheus.CounterVec
	ScansTruncated   *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers all metrics on reg.
// A nil reg uses a fresh private registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	factory := promauto.With(reg)
	m := &Metrics{gatherer: reg}

	m.RequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "requests_total",
			Help:      "Total metric requests by operator and HTTP status",
		},
		[]string{"op", "status"},
	)

	m.RequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time to answer a metric request",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"op"},
	)

	m.PagesFetched = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "pages_fetched_total",
			Help:      "Pages fetched from the document store",
		},
		[]string{"collection"},
	)

	m.DocumentsScanned = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "documents_scanned_total",
			Help:      "Documents returned by the document store",
		},
		[]string{"collection"},
	)

	m.ScansTruncated = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "scans_truncated_total",
			Help:      "Exhaustive scans stopped by the document cap",
		},
		[]string{"op"},
	)

	m.CacheLookups = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Subsystem: MetricsSubsystem,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	return m
}

func (m *Metrics) ObserveRequest(op string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(op, http.StatusText(status)).Inc()
	m.RequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) ObservePage(collection string, docs int) {
	if m == nil {
		return
	}
	m.PagesFetched.WithLabelValues(collection).Inc()
	m.DocumentsScanned.WithLabelValues(collection).Add(float64(docs))
}

func (m *Metrics) ObserveTruncated(op string) {
	if m == nil {
		return
	}
	m.ScansTruncated.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Handler returns the Prometheus exposition handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RegisterRoutes exposes the metrics at path.
func (m *Metrics) RegisterRoutes(r gin.IRouter, path string) {
	r.GET(path, gin.WrapH(m.Handler()))
}
