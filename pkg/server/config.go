package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dialkit-go/dialkit/pkg/export"
	"github.com/dialkit-go/dialkit/pkg/middleware"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the address to listen on.
	// Default: "localhost:4860".
	Address string

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30 seconds.
	ReadTimeout time.Duration

	// ReadHeaderTimeout is the maximum duration for reading request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes.
	// Default: 30 seconds.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum time to wait for the next request.
	// Default: 120 seconds.
	IdleTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// AllowedOrigins lists the origins allowed to open a WebSocket.
	// Empty means same-origin only; "*" allows every origin.
	AllowedOrigins []string

	// CheckOrigin overrides AllowedOrigins when set.
	CheckOrigin func(r *http.Request) bool

	// WebSocket limits

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// SendQueue is the number of outgoing messages buffered per client.
	// A client whose queue is full is disconnected.
	// Default: 64.
	SendQueue int

	// PongWait is how long a client may stay silent before it is dropped.
	// Default: 60 seconds.
	PongWait time.Duration

	// PingInterval is the time between heartbeat pings.
	// Default: 25 seconds.
	PingInterval time.Duration

	// WriteWait bounds a single WebSocket write.
	// Default: 10 seconds.
	WriteWait time.Duration

	// Sink receives documents from POST /api/panels/{id}/export.
	// Nil disables the endpoint.
	Sink export.Sink

	// Metrics enables request and hub metrics and serves them at
	// MetricsPath when set.
	Metrics *middleware.Metrics

	// MetricsPath is the path of the metrics endpoint.
	// Default: "/metrics".
	MetricsPath string

	// Tracing enables the OpenTelemetry middleware with these options
	// when non-nil.
	Tracing []middleware.OTelOption

	// Logger is the server logger.
	// Default: slog.Default() with component=server.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           "localhost:4860",
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		MaxMessageSize:    64 * 1024, // 64KB
		SendQueue:         64,
		PongWait:          60 * time.Second,
		PingInterval:      25 * time.Second,
		WriteWait:         10 * time.Second,
		MetricsPath:       "/metrics",
	}
}

// withDefaults fills unset fields of c from DefaultConfig.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = defaults.ReadTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.IdleTimeout == 0 {
		out.IdleTimeout = defaults.IdleTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = defaults.MaxMessageSize
	}
	if out.SendQueue <= 0 {
		out.SendQueue = defaults.SendQueue
	}
	if out.PongWait == 0 {
		out.PongWait = defaults.PongWait
	}
	if out.PingInterval == 0 {
		out.PingInterval = defaults.PingInterval
	}
	if out.PingInterval >= out.PongWait {
		out.PingInterval = out.PongWait * 9 / 10
	}
	if out.WriteWait == 0 {
		out.WriteWait = defaults.WriteWait
	}
	if out.MetricsPath == "" {
		out.MetricsPath = defaults.MetricsPath
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = OriginChecker(out.AllowedOrigins)
	}
	return &out
}

// OriginChecker returns a CheckOrigin function accepting the given
// origins. With no origins it falls back to SameOriginCheck.
func OriginChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return SameOriginCheck
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.TrimSuffix(strings.ToLower(o), "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return allowed[strings.ToLower(origin)] || SameOriginCheck(r)
	}
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., curl)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}
