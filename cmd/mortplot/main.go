package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/mortplot/internal/cliconfig"
)

const helpDescription = `
Turn the hypertension/cardiovascular mortality table into three charts.

Charts:
  - mortality_trend.png          mean rate per year
  - age_group_distribution.png   record count per age group
  - race_comparison.png          rate spread per race (box plot)

Rows without a measured rate are dropped before plotting. Configure via file,
env (MORTPLOT_*), or flags; with --watch the charts are redrawn whenever the
input file changes.
`

var exampleUsage = strings.TrimSpace(`
  mortplot
  mortplot --input data/hypertension_cvd_mortality.csv --output-dir charts --max-rows 20
  mortplot --config $HOME/.mortplot/config.toml --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "mortplot",
		Short:         "Plot mortality trends from a CSV table",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.mortplot/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (MORTPLOT_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cliconfig.Logger(cfg.Verbose)
			logger.Debug("configuration", configFields(cfg)...)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, logger)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.mortplot/config.toml)")
	root.Flags().StringVar(&cfg.InputPath, "input", cfg.InputPath, "CSV file to load")
	root.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory the charts are written into (created if absent)")

	root.Flags().IntVar(&cfg.MaxRows, "max-rows", cfg.MaxRows, "read at most this many data rows (0 reads all)")
	root.Flags().IntVar(&cfg.MinSamples, "min-samples", cfg.MinSamples, "smallest race category drawn in the box plot")

	root.Flags().IntVar(&cfg.Width, "width", cfg.Width, "chart width in pixels")
	root.Flags().IntVar(&cfg.Height, "height", cfg.Height, "chart height in pixels")
	root.Flags().BoolVar(&cfg.Caption, "caption", cfg.Caption, "stamp source name and row count on each chart")

	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "redraw the charts whenever the input file changes")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period after a file change before redrawing")
	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "debug logging")

	if err := root.Execute(); err != nil {
		cliconfig.Logger(cfg.Verbose).Error("mortplot failed", errorFields(err)...)
		os.Exit(1)
	}
}
