package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vango-dev/dropdown/internal/config"
	"github.com/vango-dev/dropdown/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		var de *errors.DropdownError
		if stderrors.As(err, &de) {
			fmt.Fprint(os.Stderr, de.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel  string
	logFormat string
	logFile   string
}

// apply copies the logging flags that were given over cfg.
func (g globalFlags) apply(cfg *config.Config) {
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	if g.logFile != "" {
		cfg.Log.File = g.logFile
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:   "dropdown",
		Short: "Serve and render the dropdown widget",
		Long: `dropdown hosts a server-rendered select widget.

The widget shows the current option on a trigger button and, when
opened, a menu of every other option. Selection state belongs to the
host; each browser connection gets its own live widget over WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from dropdown.json)")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format: text or json (default from dropdown.json)")
	rootCmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "Write logs to this file, rotated by size, instead of stderr")

	rootCmd.AddCommand(
		serveCmd(&g),
		renderCmd(&g),
		initCmd(),
		versionCmd(),
	)
	return rootCmd
}

// setupLogger installs the process-wide slog logger described by cfg.Log.
// The returned close function flushes a log file, if one is open.
func setupLogger(cfg *config.Config) (*slog.Logger, func() error) {
	w, closeFn := logWriter(cfg.Log)
	return newLogger(w, cfg.LogLevel(), cfg.Log.Format), closeFn
}

// logWriter returns stderr, or a size-rotated file when l.File is set.
func logWriter(l config.LogConfig) (io.Writer, func() error) {
	if l.File == "" {
		return os.Stderr, func() error { return nil }
	}
	f := &lumberjack.Logger{
		Filename:   l.File,
		MaxSize:    l.MaxSizeMB,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	return f, f.Close
}

func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
