// Package metrics exposes Prometheus collectors for the ward API: HTTP
// request counts and latency, doctor note writes, and discharge PDF renders.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains the ward service collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	notesCreatedTotal prometheus.Counter
	pdfRendersTotal   *prometheus.CounterVec
}

// New creates the collectors and registers them with registry. When registry
// is nil a fresh one is created.
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ward",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ward",
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.notesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ward",
			Name:      "doctor_notes_created_total",
			Help:      "Total number of doctor notes persisted",
		},
	)

	m.pdfRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ward",
			Name:      "discharge_pdf_renders_total",
			Help:      "Discharge summary PDF render attempts",
		},
		[]string{"status"}, // status: success, error
	)
}

// Describe implements the Collector interface
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.httpRequestsTotal.Describe(ch)
	m.httpRequestDuration.Describe(ch)
	m.notesCreatedTotal.Describe(ch)
	m.pdfRendersTotal.Describe(ch)
}

// Collect implements the Collector interface
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.httpRequestsTotal.Collect(ch)
	m.httpRequestDuration.Collect(ch)
	m.notesCreatedTotal.Collect(ch)
	m.pdfRendersTotal.Collect(ch)
}

// Handler serves the registry in the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request. route is the matched route
// template, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) NoteCreated() {
	if m == nil {
		return
	}
	m.notesCreatedTotal.Inc()
}

func (m *Metrics) PDFRendered(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.pdfRendersTotal.WithLabelValues(status).Inc()
}
