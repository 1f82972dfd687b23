package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dialkit-go/dialkit/internal/config"
	"github.com/dialkit-go/dialkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dialkit",
		Short: "Live-tweaking panels for animation and design parameters",
		Long: `dialkit serves live-tweaking panels over HTTP and WebSocket.

A panel is a configuration tree whose leaves become controls: sliders,
toggles, color pickers, springs, easings and action buttons. Presentation
clients change values while the application reads them back resolved.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to dialkit.json or its directory (default: search upwards)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		initCmd(),
		addCmd(),
		serveCmd(),
		schemaCmd(),
		resolveCmd(),
		exportCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// loadConfig loads dialkit.json from --config or the working directory.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.LoadFromWorkingDir()
	}
	info, err := os.Stat(configPath)
	if err == nil && info.IsDir() {
		return config.Load(configPath)
	}
	return config.LoadFile(configPath)
}

// loadConfigOrDefault is loadConfig for commands that work without a
// configuration file.
func loadConfigOrDefault() *config.Config {
	cfg, err := loadConfig()
	if err != nil {
		if configPath != "" {
			warn("%s", err)
		}
		return config.New()
	}
	return cfg
}

// newLogger builds the process logger from cfg, with flags taking
// precedence.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

// printBanner prints the dialkit ASCII art banner.
func printBanner() {
	fig := figure.NewColorFigure("dialkit", "small", "cyan", true)
	if noColor || color.NoColor {
		fig = figure.NewFigure("dialkit", "small", true)
	}
	fig.Print()
}

// displayPath shortens path relative to the working directory.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && len(rel) < len(path) {
		return rel
	}
	return path
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("%s %s\n", color.CyanString("→"), fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("%s %s\n", color.YellowString("⚠"), fmt.Sprintf(format, args...))
}
