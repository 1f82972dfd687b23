package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialkit-go/dialkit/pkg/middleware"
	"github.com/dialkit-go/dialkit/pkg/server"
	"github.com/dialkit-go/dialkit/pkg/store"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured panels",
		Long: `Serve the panels listed in dialkit.json over HTTP and WebSocket.

Presentation clients connect to /ws for live updates; the REST API
under /api/panels exposes every panel operation.

Examples:
  dialkit serve
  dialkit serve --port=8080
  dialkit serve --host=0.0.0.0 --log-level=debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from dialkit.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from dialkit.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	var metrics *middleware.Metrics
	storeOpts := []store.Option{store.WithLogger(logger.With("component", "store"))}
	if cfg.Metrics.Enabled {
		metrics = middleware.NewMetrics(middleware.WithNamespace(cfg.Metrics.Namespace))
		storeOpts = append(storeOpts, store.WithObserver(metrics.ObserveChange))
	}

	st := store.New(storeOpts...)
	defer st.Close()

	ids, err := registerPanels(st, cfg, logger)
	if err != nil {
		return err
	}

	sink, target, err := newSink(cfg, "")
	if err != nil {
		return err
	}

	srvConfig := &server.Config{
		Address:         cfg.Address(),
		ReadTimeout:     cfg.ReadTimeout(),
		WriteTimeout:    cfg.WriteTimeout(),
		ShutdownTimeout: cfg.ShutdownTimeout(),
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		Sink:            sink,
		Metrics:         metrics,
		MetricsPath:     cfg.Metrics.Path,
		Logger:          logger.With("component", "server"),
	}
	if cfg.Tracing.Enabled {
		srvConfig.Tracing = []middleware.OTelOption{
			middleware.WithTracerName(cfg.Tracing.TracerName),
		}
	}
	srv := server.New(st, srvConfig)

	printBanner()
	fmt.Println()
	success("Serving %d panel(s) at %s", len(ids), cfg.URL())
	for _, id := range ids {
		info("%s/api/panels/%s", cfg.URL(), id)
	}
	info("WebSocket: ws://%s/ws", cfg.Address())
	info("Exports: %s", displayPath(target))
	if metrics != nil {
		info("Metrics: %s%s", cfg.URL(), srv.Config().MetricsPath)
	}
	if len(ids) == 0 {
		warn("No panels configured. Add entries to \"panels\" in dialkit.json.")
	}
	fmt.Println()

	return srv.Run()
}
