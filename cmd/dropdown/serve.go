package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dropdown/internal/catalog"
	"github.com/vango-dev/dropdown/internal/config"
	"github.com/vango-dev/dropdown/pkg/dropdown"
	"github.com/vango-dev/dropdown/pkg/host"
)

type serveFlags struct {
	configPath    string
	host          string
	port          int
	options       string
	region        string
	closeOnSelect bool
	noMetrics     bool
}

func serveCmd(g *globalFlags) *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live widget",
		Long: `Serve the dropdown over HTTP and WebSocket.

Settings come from dropdown.json when it exists; flags override them and
DROPDOWN_PORT overrides the port. With tracing.enabled, every client event
opens a span; finished spans are logged at debug level (--log-level=debug).

Routes:
  /          the page
  /ws        live session
  /healthz   liveness probe
  /metrics   Prometheus metrics

Examples:
  dropdown serve
  dropdown serve --port=8080 --options=fruits.json
  dropdown serve --options=s3://ui-assets/fruits.json --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := serveConfig(cmd, f, *g)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", config.ConfigFileName, "Path to dropdown.json")
	cmd.Flags().StringVarP(&f.host, "host", "H", "", "Host to bind to (default from dropdown.json)")
	cmd.Flags().IntVarP(&f.port, "port", "p", 0, "Port to listen on (default from dropdown.json)")
	cmd.Flags().StringVar(&f.options, "options", "", "Catalog source: JSON file or s3://bucket/key")
	cmd.Flags().StringVar(&f.region, "region", "", "AWS region for s3:// catalogs")
	cmd.Flags().BoolVar(&f.closeOnSelect, "close-on-select", false, "Close the menu after a selection")
	cmd.Flags().BoolVar(&f.noMetrics, "no-metrics", false, "Disable the metrics endpoint")

	return cmd
}

// serveConfig loads dropdown.json and applies command-line overrides.
func serveConfig(cmd *cobra.Command, f serveFlags, g globalFlags) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if f.host != "" {
		cfg.Server.Host = f.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = f.port
	}
	if f.options != "" {
		cfg.Catalog.Source = f.options
	}
	if f.region != "" {
		cfg.Catalog.Region = f.region
	}
	if flags.Changed("close-on-select") {
		cfg.Widget.CloseOnSelect = f.closeOnSelect
	}
	if f.noMetrics {
		cfg.Metrics.Enabled = false
	}
	g.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// warnMiss logs a current value that matches no option, with the nearest
// value when one is close enough to be a likely typo.
func warnMiss(logger *slog.Logger, cat *catalog.Catalog, value string) {
	if o, ok := cat.Closest(value); ok {
		logger.Warn("current value matches no option", "value", value, "closest", o.Value)
		return
	}
	logger.Warn("current value matches no option", "value", value)
}

func newLoader(cfg *config.Config) *catalog.Loader {
	opts := []catalog.LoaderOption{catalog.WithLogger(slog.Default())}
	if strings.HasPrefix(cfg.Catalog.Source, "s3://") {
		opts = append(opts, catalog.WithS3(catalog.NewS3Client(cfg.Catalog.Region)))
	}
	return catalog.NewLoader(opts...)
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger, closeLog := setupLogger(cfg)
	defer closeLog()

	cat, err := newLoader(cfg).Load(ctx, cfg.Catalog.Source)
	if err != nil {
		return err
	}
	logger.Info("catalog ready", "source", cfg.Catalog.Source, "options", len(cat.Options), "current", cat.Current)
	if _, ok := dropdown.Lookup(cat.Options, cat.Current); !ok && cat.Current != "" {
		warnMiss(logger, cat, cat.Current)
	}

	tracer, shutdownTracing := setupTracing(cfg, logger)
	defer shutdownTracing(context.Background())

	srv := host.New(host.Config{
		Address:         cfg.Address(),
		Title:           cfg.Widget.Title,
		Options:         cat.Options,
		Current:         cat.Current,
		ClassName:       cfg.Widget.ClassName,
		CloseOnSelect:   cfg.Widget.CloseOnSelect,
		EnableMetrics:   cfg.Metrics.Enabled,
		MetricsPath:     cfg.Metrics.Path,
		Tracer:          tracer,
		ShutdownTimeout: cfg.ShutdownTimeout(),
	})
	srv.SetLogger(logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("listening", "url", cfg.URL())
	return srv.ListenAndServe(ctx)
}
