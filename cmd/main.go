package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/opptrack/pocsift/internal/app"
	"github.com/opptrack/pocsift/internal/config"
	"github.com/opptrack/pocsift/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the root command. Flags override the layered
// configuration (defaults -> optional YAML file -> POCSIFT_* env vars).
func newRootCmd() *cobra.Command {
	var (
		inputFlag    string
		outputFlag   string
		sortFlag     string
		logLevelFlag string
	)

	cmd := &cobra.Command{
		Use:   "pocsift",
		Short: "Deduplicate opportunity-contract points of contact into a summary CSV",
		Long: `pocsift reads a CSV export of opportunity contracts, deduplicates its
points of contact by normalized name, aggregates each contact's associated
opportunities, and writes a sorted summary CSV.

Sort keys: name, location, department, opportunity_count
(aliases: city, opportunity).

Configuration layers, lowest to highest precedence: built-in defaults, a
YAML file named by POCSIFT_CONFIG, POCSIFT_* environment variables, and
the flags below.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(ctx)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("input") {
				cfg.Input = inputFlag
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = outputFlag
			}
			if cmd.Flags().Changed("sort") {
				cfg.SortBy = sortFlag
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevelFlag
			}

			log := logger.Get()
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}

			pipeline, err := app.FromConfig(cfg)
			if err != nil {
				return err
			}
			summary, err := pipeline.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d contacts into %d unique POCs (%d rows rejected); saved to %s\n",
				summary.RowsAccepted, summary.UniquePOCs, summary.RowsRejected, cfg.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "input CSV path")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output CSV path")
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", "", "sort key: name|location|department|opportunity_count")
	cmd.Flags().StringVar(&logLevelFlag, "log-level", "", "log verbosity: debug|info|warn|error")

	return cmd
}
