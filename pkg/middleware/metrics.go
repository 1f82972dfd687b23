package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dialkit-go/dialkit/pkg/store"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "dialkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: a new registry with the Go and process collectors.
	Registry *prometheus.Registry
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "dialkit",
		Buckets:   prometheus.DefBuckets,
	}
}

// Metrics holds the Prometheus metrics of a dialkit server.
type Metrics struct {
	config   MetricsConfig
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeChanges    *prometheus.CounterVec
	wsClients       prometheus.Gauge
	wsMessages      *prometheus.CounterVec
	wsErrors        *prometheus.CounterVec
	exportsTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers the metrics.
//
// Metrics collected:
//   - dialkit_http_requests_total: Counter of requests by method, route and status
//   - dialkit_http_request_duration_seconds: Histogram of request duration by route
//   - dialkit_store_changes_total: Counter of store mutations by op
//   - dialkit_panels: Gauge of registered panels (see WatchPanels)
//   - dialkit_websocket_clients: Gauge of connected WebSocket clients
//   - dialkit_websocket_messages_total: Counter of WebSocket messages by direction and type
//   - dialkit_websocket_errors_total: Counter of WebSocket errors by type
//   - dialkit_exports_total: Counter of exports by status
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
		config.Registry.MustRegister(
			prometheus.NewGoCollector(),
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		config:   config,
		registry: config.Registry,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: config.ConstLabels,
		}, []string{"method", "route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"method", "route"}),

		storeChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_changes_total",
			Help:        "Total number of store mutations by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		wsClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_clients",
			Help:        "Number of connected WebSocket clients",
			ConstLabels: config.ConstLabels,
		}),

		wsMessages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_messages_total",
			Help:        "Total WebSocket messages by direction and type",
			ConstLabels: config.ConstLabels,
		}, []string{"direction", "type"}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		exportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "exports_total",
			Help:        "Total panel exports by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),
	}
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and durations. Requests are labelled
// with the chi route pattern, not the raw path, to bound cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}

// routePattern returns the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// ObserveChange records a store mutation. It is meant to be passed to
// store.WithObserver.
func (m *Metrics) ObserveChange(c store.Change) {
	m.storeChanges.WithLabelValues(string(c.Op)).Inc()
}

// WatchPanels exports the panel count reported by count, which is read on
// every scrape.
func (m *Metrics) WatchPanels(count func() int) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   m.config.Namespace,
		Subsystem:   m.config.Subsystem,
		Name:        "panels",
		Help:        "Number of registered panels",
		ConstLabels: m.config.ConstLabels,
	}, func() float64 {
		return float64(count())
	})
}

// ClientConnected records a new WebSocket client.
func (m *Metrics) ClientConnected() {
	m.wsClients.Inc()
}

// ClientDisconnected records a WebSocket client going away.
func (m *Metrics) ClientDisconnected() {
	m.wsClients.Dec()
}

// RecordMessage records a WebSocket message. Direction is "in" or "out".
func (m *Metrics) RecordMessage(direction, msgType string) {
	m.wsMessages.WithLabelValues(direction, msgType).Inc()
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}

// RecordExport records an export attempt.
func (m *Metrics) RecordExport(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.exportsTotal.WithLabelValues(status).Inc()
}
