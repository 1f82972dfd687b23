package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dialkit-go/dialkit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "dialkit.json"

	// DefaultPort is the default server port.
	DefaultPort = 4860

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultExportDir is the default directory for disk exports.
	DefaultExportDir = "exports"

	// DefaultMetricsPath is the default path of the metrics endpoint.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete dialkit.json configuration.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Panels lists the panel files served at startup.
	Panels []PanelConfig `json:"panels,omitempty"`

	// Export contains export sink configuration.
	Export ExportConfig `json:"export,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ReadTimeout bounds reading a request (e.g., "10s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout bounds writing a response (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// ShutdownTimeout bounds graceful shutdown (e.g., "5s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`

	// AllowedOrigins lists origins allowed to open WebSocket connections.
	// Empty allows same-origin requests only; "*" allows any origin.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// PanelConfig names a panel file.
type PanelConfig struct {
	// ID is the panel id. Defaults to a name-derived id.
	ID string `json:"id,omitempty"`

	// Name is the display name. Defaults to the file's base name.
	Name string `json:"name,omitempty"`

	// File is a .json or .toml configuration tree.
	File string `json:"file"`
}

// ExportConfig contains export sink settings.
type ExportConfig struct {
	// Dir is the directory of the disk sink.
	Dir string `json:"dir,omitempty"`

	// S3 configures the S3 sink. It is used instead of Dir when Bucket
	// is set.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config contains S3 sink settings.
type S3Config struct {
	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Path      string `json:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory.
// It looks for dialkit.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("D121").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass panel files on the command line")
		}
		return nil, errors.New("D120").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("D120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("D120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("D120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	// Server
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "10s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "5s"
	}

	// Export
	if c.Export.Dir == "" {
		c.Export.Dir = DefaultExportDir
	}

	// Observability
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "dialkit"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "dialkit"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Panels
	for i := range c.Panels {
		p := &c.Panels[i]
		if p.Name == "" && p.File != "" {
			base := filepath.Base(p.File)
			p.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("D122").
			WithDetail("Port must be between 0 and 65535")
	}

	for name, value := range map[string]string{
		"server.readTimeout":     c.Server.ReadTimeout,
		"server.writeTimeout":    c.Server.WriteTimeout,
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return errors.New("D124").
				WithDetail(name + " is " + strconv.Quote(value)).
				WithSuggestion("Use a Go duration such as \"10s\" or \"500ms\"")
		}
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("D123").
			WithDetail("log.format must be \"text\" or \"json\", got " + strconv.Quote(c.Log.Format))
	}

	ids := make(map[string]bool)
	for i, p := range c.Panels {
		if p.File == "" {
			return errors.New("D125").
				WithDetail("panels[" + strconv.Itoa(i) + "] has no file")
		}
		if p.ID == "" {
			continue
		}
		if ids[p.ID] {
			return errors.New("D125").
				WithDetail("Duplicate panel id " + strconv.Quote(p.ID))
		}
		ids[p.ID] = true
	}
	return nil
}

// Address returns the listen address of the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// ReadTimeout returns the parsed read timeout, or 0 if it is invalid.
func (c *Config) ReadTimeout() time.Duration {
	return duration(c.Server.ReadTimeout)
}

// WriteTimeout returns the parsed write timeout, or 0 if it is invalid.
func (c *Config) WriteTimeout() time.Duration {
	return duration(c.Server.WriteTimeout)
}

// ShutdownTimeout returns the parsed shutdown timeout, or 0 if it is
// invalid.
func (c *Config) ShutdownTimeout() time.Duration {
	return duration(c.Server.ShutdownTimeout)
}

func duration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// LogLevel returns the slog level of Log.Level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errors.New("D123").
			WithDetail("log.level is " + strconv.Quote(s)).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	return level, nil
}

// PanelPath returns the absolute path of a panel file.
func (c *Config) PanelPath(p PanelConfig) string {
	return c.resolve(p.File)
}

// ExportPath returns the absolute path of the disk export directory.
func (c *Config) ExportPath() string {
	return c.resolve(c.Export.Dir)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing dialkit.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("D121").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
