package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Loan operation outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors of the library API.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	loanOperationsTotal *prometheus.CounterVec
	booksCreatedTotal   prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates a metrics instance with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "library_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		loanOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_loan_operations_total",
				Help: "Borrow and return attempts by outcome",
			},
			[]string{"operation", "outcome"},
		),

		booksCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "library_books_created_total",
				Help: "Total number of books added to the catalog",
			},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.loanOperationsTotal,
		m.booksCreatedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordLoanOperation counts a borrow or return attempt.
func (m *Metrics) RecordLoanOperation(operation, outcome string) {
	m.loanOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// LoanOperationCounter returns the counter behind one operation/outcome pair.
func (m *Metrics) LoanOperationCounter(operation, outcome string) prometheus.Counter {
	return m.loanOperationsTotal.WithLabelValues(operation, outcome)
}

func (m *Metrics) RecordBookCreated() {
	m.booksCreatedTotal.Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
