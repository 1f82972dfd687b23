// Package middleware provides observability middleware for the dialkit
// HTTP server.
//
// # OpenTelemetry Middleware
//
// OpenTelemetry starts a server span for every request, named after the
// matched chi route:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// # Prometheus Metrics
//
// Metrics collects request, store and WebSocket metrics on its own
// registry:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("myapp"))
//	s := store.New(store.WithObserver(m.ObserveChange))
//	m.WatchPanels(func() int { return len(s.Panels()) })
//
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
package middleware
