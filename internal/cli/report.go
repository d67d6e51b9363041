package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/olistdata/olistload/internal/config"
	"github.com/olistdata/olistload/internal/db"
	"github.com/olistdata/olistload/internal/logging"
	"github.com/olistdata/olistload/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the data-quality battery against loaded tables",
	Long: `Report runs the fixed battery of read-only quality checks against the
loaded raw_data tables: order volume, time coverage, financial
aggregates, review satisfaction, geographic spread, and order status.

Each metric runs independently; a failing query is shown in place with
a truncated error and the rest of the battery continues.

Examples:
  olistload report
  olistload report --host db.internal -d analytics`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var reportConnFlags connFlagValues

func init() {
	rootCmd.AddCommand(reportCmd)
	registerConnFlags(reportCmd, &reportConnFlags)
	reportCmd.Flags().Duration("timeout", 5*time.Minute,
		"Catastrophic failure protection timeout for the whole battery")
}

func runReport(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	_ = godotenv.Load()
	projectCfg, err := config.Load(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}

	connConfig, err := resolveConnection(&reportConnFlags, projectCfg, verbose)
	if err != nil {
		return err
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := db.NewConnector(connConfig).Connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger := logging.NewConsoleLogger(verbose)
	results := report.NewReporter(logger).Run(ctx, db.NewPoolAdapter(pool))
	cmd.Println(report.Render(results))

	return nil
}
