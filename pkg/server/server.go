package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/dialkit-go/dialkit/pkg/middleware"
	"github.com/dialkit-go/dialkit/pkg/store"
)

// Server exposes a store over HTTP and WebSocket.
type Server struct {
	store  *store.Store
	config *Config
	router chi.Router
	hub    *Hub

	// WebSocket upgrader
	upgrader websocket.Upgrader

	// HTTP server
	httpServer *http.Server

	logger *slog.Logger
}

// New creates a server for st and subscribes its hub to the store. Unset
// config fields take their defaults. A Metrics value may back one server
// only.
func New(st *store.Store, config *Config) *Server {
	config = config.withDefaults()

	logger := config.Logger
	if logger == nil {
		logger = slog.Default().With("component", "server")
	}

	s := &Server{
		store:  st,
		config: config,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	s.hub = newHub(s)
	s.hub.start()
	s.router = s.routes()

	if config.Metrics != nil {
		config.Metrics.WatchPanels(func() int { return len(st.Panels()) })
	}
	return s
}

// routes builds the chi router.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)
	if s.config.Tracing != nil {
		r.Use(middleware.OpenTelemetry(s.config.Tracing...))
	}
	if s.config.Metrics != nil {
		r.Use(s.config.Metrics.Middleware)
		r.Method(http.MethodGet, s.config.MetricsPath, s.config.Metrics.Handler())
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)

	r.Route("/api/panels", func(r chi.Router) {
		r.Get("/", s.handleListPanels)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetPanel)
			r.Get("/values", s.handleValues)
			r.Put("/values/{path}", s.handleUpdateValue)
			r.Put("/modes/{path}", s.handleUpdateMode)
			r.Post("/actions/{path}", s.handleAction)
			r.Get("/resolved", s.handleResolved)
			r.Get("/export", s.handleGetExport)
			r.Post("/export", s.handleExport)

			r.Get("/presets", s.handleListPresets)
			r.Post("/presets", s.handleSavePreset)
			r.Delete("/presets/active", s.handleClearPreset)
			r.Post("/presets/{presetID}/load", s.handleLoadPreset)
			r.Patch("/presets/{presetID}", s.handleRenamePreset)
			r.Delete("/presets/{presetID}", s.handleDeletePreset)
		})
	})
	return r
}

// requestLogger logs every request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()))
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server and blocks until it fails or receives SIGINT or
// SIGTERM, in which case it shuts down gracefully.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. It behaves like Run otherwise.
func (s *Server) Serve(ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.hub.close()
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all WebSocket clients and gracefully stops the HTTP
// server within the configured ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.hub.close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Config returns the server configuration.
func (s *Server) Config() *Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}
