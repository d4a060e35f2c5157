package metrics

import (
	"strconv"
	"time"

	"member-api/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the application's prometheus collectors. A nil *Manager is
// valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	reconcileActions  *prometheus.CounterVec
	reconcileFailures *prometheus.CounterVec
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "member_api",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	m.httpDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})

	m.reconcileActions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "reconcile_actions_total",
		Help:      "Child rows deleted, updated or inserted by reconciliation.",
	}, []string{"collection", "action"})

	m.reconcileFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "reconcile_failures_total",
		Help:      "Reconciliation requests rolled back, by operation.",
	}, []string{"operation"})

	return m
}

// Registry returns the registry the collectors are registered with.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest counts a finished request and observes its latency.
func (m *Manager) RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordReconcile counts the actions applied to one collection.
func (m *Manager) RecordReconcile(collection string, summary reconcile.Summary) {
	if m == nil {
		return
	}
	m.reconcileActions.WithLabelValues(collection, string(reconcile.ActionDelete)).Add(float64(summary.Deleted))
	m.reconcileActions.WithLabelValues(collection, string(reconcile.ActionUpdate)).Add(float64(summary.Updated))
	m.reconcileActions.WithLabelValues(collection, string(reconcile.ActionInsert)).Add(float64(summary.Inserted))
}

// RecordReconcileFailure counts a rolled back reconciliation.
func (m *Manager) RecordReconcileFailure(operation string) {
	if m == nil {
		return
	}
	m.reconcileFailures.WithLabelValues(operation).Inc()
}

// Middleware records every request handled by the app.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.RecordHTTPRequest(c.Route().Path, c.Method(), status, time.Since(start))
		return err
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Manager) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
