// Package metrics exposes the application's Prometheus collectors.
// Like the logger it is a process-wide facility used through package
// level functions, backed by a dedicated registry so tests and the
// /metrics endpoint see exactly the collectors registered here.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "souqfx"

var (
	registry = prometheus.NewRegistry()

	ordersProcessed = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_processed_total",
		Help:      "Orders that reached a terminal processing state, by result.",
	}, []string{"result"})

	ordersDropped = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_dropped_total",
		Help:      "Orders dropped from the queue before processing started.",
	})

	processingInFlight = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "order_processing_in_flight",
		Help:      "Orders currently being processed by the worker pool.",
	})

	persistenceFailures = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persistence_failures_total",
		Help:      "Flat-file store operations that failed after retries.",
	}, []string{"operation"})

	cartItems = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_items",
		Help:      "Units currently held in the shopping cart.",
	})

	httpRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by method, route and status.",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
)

func init() {
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// OrderProcessed records a terminal processing result
// ("success", "failure", "interrupted" or "cancelled").
func OrderProcessed(result string) {
	ordersProcessed.WithLabelValues(result).Inc()
}

// OrderDropped records an order discarded before a worker picked it up.
func OrderDropped() {
	ordersDropped.Inc()
}

// ProcessingStarted marks one more order in flight.
func ProcessingStarted() {
	processingInFlight.Inc()
}

// ProcessingFinished marks one order leaving the worker pool.
func ProcessingFinished() {
	processingInFlight.Dec()
}

// PersistenceFailure records a failed store operation after retries.
func PersistenceFailure(operation string) {
	persistenceFailures.WithLabelValues(operation).Inc()
}

// SetCartItems publishes the current cart unit count.
func SetCartItems(count int) {
	cartItems.Set(float64(count))
}

// ObserveHTTPRequest records one served HTTP request.
func ObserveHTTPRequest(method, path string, status int, seconds float64) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(seconds)
}
