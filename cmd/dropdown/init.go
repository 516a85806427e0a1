package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dropdown/internal/config"
	"github.com/vango-dev/dropdown/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default dropdown.json",
		Long: `Write a dropdown.json with default values to dir (default ".").

Examples:
  dropdown init
  dropdown init ./deploy --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing dropdown.json")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if config.Exists(dir) && !force {
		return errors.New("E303").
			WithDetailf("%s already exists in %s", config.ConfigFileName, dir).
			WithSuggestion("Pass --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if err := config.New().SaveTo(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	success(out, "Wrote %s", path)
	info(out, "Set catalog.source to a JSON file or s3://bucket/key, then run 'dropdown serve'")
	return nil
}
