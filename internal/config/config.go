package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/dropdown/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "dropdown.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "5s"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultTracerName is the OpenTelemetry instrumentation name.
	DefaultTracerName = "github.com/vango-dev/dropdown"

	// DefaultLogMaxSizeMB is the rotation size of Log.File.
	DefaultLogMaxSizeMB = 15

	// DefaultTitle is the page title of the demo host.
	DefaultTitle = "Dropdown"

	// EnvPort overrides Server.Port when set.
	EnvPort = "DROPDOWN_PORT"
)

// Config represents the complete dropdown.json configuration.
type Config struct {
	// Server contains HTTP listener settings.
	Server ServerConfig `json:"server"`

	// Catalog locates the option list the host serves.
	Catalog CatalogConfig `json:"catalog"`

	// Widget contains construction settings for each mounted dropdown.
	Widget WidgetConfig `json:"widget"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing"`

	// Log contains logger settings.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ShutdownTimeout is how long in-flight connections get on shutdown
	// (e.g., "5s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// CatalogConfig locates the option catalog.
type CatalogConfig struct {
	// Source is a local JSON path or an s3://bucket/key URI. Empty serves the
	// built-in sample catalog.
	Source string `json:"source,omitempty"`

	// Region is the AWS region for s3:// sources.
	Region string `json:"region,omitempty"`
}

// WidgetConfig contains settings applied to every mounted dropdown.
type WidgetConfig struct {
	// Title is the page title.
	Title string `json:"title,omitempty"`

	// ClassName is appended to the widget's root class.
	ClassName string `json:"className,omitempty"`

	// CloseOnSelect closes the menu after a selection.
	CloseOnSelect bool `json:"closeOnSelect,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled mounts the metrics endpoint.
	Enabled bool `json:"enabled"`

	// Path is the metrics endpoint path.
	Path string `json:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled creates a span per dispatched client event.
	Enabled bool `json:"enabled"`

	// Name is the tracer name.
	Name string `json:"name,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`

	// File, when set, receives log output instead of stderr. It is rotated
	// once it reaches MaxSizeMB.
	File      string `json:"file,omitempty"`
	MaxSizeMB int    `json:"maxSizeMB,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Widget: WidgetConfig{
			Title: DefaultTitle,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Tracing: TracingConfig{
			Enabled: true,
			Name:    DefaultTracerName,
		},
		Log: LogConfig{
			Level:     "info",
			Format:    "text",
			MaxSizeMB: DefaultLogMaxSizeMB,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for dropdown.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path, then applies
// defaults and the environment override.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E301").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'dropdown init' to write a default configuration").
				Wrap(err)
		}
		return nil, errors.New("E301").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E301").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to defaults (plus
// the environment override) when it does not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := New()
		if err := cfg.applyEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(path)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E301").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E301").Wrap(err)
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
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Widget.Title == "" {
		c.Widget.Title = DefaultTitle
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.Name == "" {
		c.Tracing.Name = DefaultTracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if f := c.Log.File; f != "" && !filepath.IsAbs(f) && c.configPath != "" {
		c.Log.File = filepath.Join(c.Dir(), f)
	}

	// Relative catalog paths resolve against the config file.
	src := c.Catalog.Source
	if src != "" && !strings.Contains(src, "://") && !filepath.IsAbs(src) && c.configPath != "" {
		c.Catalog.Source = filepath.Join(c.Dir(), src)
	}
}

func (c *Config) applyEnv() error {
	v, ok := os.LookupEnv(EnvPort)
	if !ok || v == "" {
		return nil
	}
	port, err := strconv.Atoi(v)
	if err != nil {
		return errors.New("E302").
			WithDetailf("%s=%q is not a port number", EnvPort, v).
			Wrap(err)
	}
	c.Server.Port = port
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E302").
			WithDetailf("server.port %d must be between 0 and 65535", c.Server.Port)
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return errors.New("E302").
			WithDetailf("server.shutdownTimeout %q is not a duration", c.Server.ShutdownTimeout).
			WithSuggestion(`Use a Go duration such as "5s"`).
			Wrap(err)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E302").
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E302").
			WithDetailf("log.format %q is not text or json", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 {
		return errors.New("E302").
			WithDetailf("log.maxSizeMB %d must not be negative", c.Log.MaxSizeMB)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E302").
			WithDetailf("metrics.path %q must start with /", c.Metrics.Path)
	}
	if strings.HasPrefix(c.Catalog.Source, "s3://") && c.Catalog.Region == "" {
		return errors.New("E302").
			WithDetail("catalog.region is required for s3:// sources")
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// ShutdownTimeout returns the parsed shutdown timeout, or the default when it
// does not parse.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultShutdownTimeout)
	}
	return d
}

// LogLevel returns the configured slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
