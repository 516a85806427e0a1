package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dropdown/internal/config"
	"github.com/vango-dev/dropdown/pkg/dropdown"
	"github.com/vango-dev/dropdown/pkg/render"
)

type renderFlags struct {
	options   string
	region    string
	current   string
	className string
	open      bool
	pretty    bool
}

func renderCmd(g *globalFlags) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the widget's static HTML",
		Long: `Render the dropdown once and print its HTML, without hydration IDs.

The current value defaults to the catalog's own "current" field.

Examples:
  dropdown render --options=fruits.json
  dropdown render --options=fruits.json --current=b --open --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, f, *g)
		},
	}

	cmd.Flags().StringVar(&f.options, "options", "", "Catalog source: JSON file or s3://bucket/key (default: sample catalog)")
	cmd.Flags().StringVar(&f.region, "region", "", "AWS region for s3:// catalogs")
	cmd.Flags().StringVar(&f.current, "current", "", "Selected value")
	cmd.Flags().StringVar(&f.className, "class", "", "Extra class on the root element")
	cmd.Flags().BoolVar(&f.open, "open", false, "Render with the menu open")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Indent the output")

	return cmd
}

func runRender(cmd *cobra.Command, f renderFlags, g globalFlags) error {
	cfg := config.New()
	cfg.Catalog.Source = f.options
	cfg.Catalog.Region = f.region
	g.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, closeLog := setupLogger(cfg)
	defer closeLog()

	cat, err := newLoader(cfg).Load(cmd.Context(), f.options)
	if err != nil {
		return err
	}

	current := cat.Current
	if cmd.Flags().Changed("current") {
		current = f.current
	}

	widget := dropdown.New(nil, dropdown.Props{
		CurrentOption: current,
		Options:       cat.Options,
		ClassName:     f.className,
	}, dropdown.WithLookupMiss(func(v string) { warnMiss(logger, cat, v) }))
	defer widget.Dispose()
	if f.open {
		widget.Toggle()
	}

	r := render.NewRenderer(render.RendererConfig{Pretty: f.pretty, SkipHIDs: true})
	html, err := r.RenderToString(widget.Render())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), html)
	if !f.pretty {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	slog.Debug("rendered", "options", len(cat.Options), "current", current, "open", f.open)
	return nil
}
