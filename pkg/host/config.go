package host

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/dropdown/pkg/dropdown"
)

// Config configures a Server.
type Config struct {
	// Address is the listen address (e.g., "localhost:3000").
	Address string

	// Title is the page title.
	Title string

	// Options is the catalog every session starts from.
	Options []dropdown.Option

	// Current is the initial selection of every session.
	Current string

	// ClassName is appended to the widget's root class.
	ClassName string

	// CloseOnSelect closes the menu after a selection.
	CloseOnSelect bool

	// EnableMetrics mounts the Prometheus endpoint at MetricsPath.
	EnableMetrics bool

	// MetricsPath defaults to "/metrics".
	MetricsPath string

	// Registry receives the host metrics and backs the metrics endpoint.
	// Default: a fresh registry with the Go and process collectors.
	Registry *prometheus.Registry

	// Tracer creates a span per dispatched event. Default: no-op.
	Tracer trace.Tracer

	// ReadTimeout is how long a session may stay silent, pongs included.
	ReadTimeout time.Duration

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown when the serve context ends.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds request header reads.
	ReadHeaderTimeout time.Duration

	// MaxMessageSize caps an incoming WebSocket frame in bytes. A larger
	// frame closes the session.
	MaxMessageSize int64

	// CheckOrigin validates WebSocket origins. Default: same host only.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Address:           "localhost:3000",
		Title:             "Dropdown",
		EnableMetrics:     true,
		MetricsPath:       "/metrics",
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxMessageSize:    4 * 1024,
	}
}

// withDefaults fills in default values for unset fields.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.MetricsPath == "" {
		c.MetricsPath = d.MetricsPath
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	return c
}
