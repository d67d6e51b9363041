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
	"github.com/olistdata/olistload/internal/files/filesystem"
	"github.com/olistdata/olistload/internal/loader"
	"github.com/olistdata/olistload/internal/logging"
	"github.com/olistdata/olistload/internal/report"
	"github.com/olistdata/olistload/internal/schema"
	"github.com/olistdata/olistload/internal/store"
	"github.com/olistdata/olistload/pkg/olistload"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <data_dir>",
	Short: "Load the Olist CSV extracts into the analytics store",
	Long: `Load reads the nine Olist CSV extracts from the data directory and
writes them into PostgreSQL with replace semantics.

The load command:
1. Connects to PostgreSQL and bootstraps the raw_data, staging, and
   analytics schemas
2. Drives every registered file through read, coercion, null profiling,
   batched writes, and index creation
3. Documents table relationships and creates summary views
4. Prints a per-table summary; individual table failures do not abort
   the run

Password Authentication:
  For security, the password is NOT accepted as a CLI flag. Use
  $DB_PASSWORD (or $PGPASSWORD), optionally via a .env file.

Examples:
  # Load from ./data into the local analytics container
  olistload load ./data

  # Load into another store
  olistload load ./data --host db.internal --port 5432 -d analytics

  # Slower stores may need a longer ceiling
  olistload load ./data --timeout 2h`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

type loadFlagValues struct {
	conn      connFlagValues
	batchSize int
	timeout   time.Duration
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	registerConnFlags(loadCmd, &loadFlags.conn)

	loadCmd.Flags().IntVar(&loadFlags.batchSize, "batch-size", 0,
		fmt.Sprintf("Rows per write request (default %d)", olistload.DefaultBatchSize))

	// Catastrophic failure protection, not normal timeout control
	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", olistload.DefaultRunTimeout,
		"Catastrophic failure protection timeout\n"+
			"Prevents indefinite hangs from network issues or deadlocks\n"+
			"Examples: 30s, 5m, 1h30m")
}

// registerConnFlags adds the granular connection flags shared by the
// store-facing commands.
func registerConnFlags(cmd *cobra.Command, flags *connFlagValues) {
	cmd.Flags().StringVar(&flags.host, "host", "",
		"PostgreSQL server host\n"+
			"Precedence: --host > $DB_HOST > olistload.yaml > 127.0.0.1")
	cmd.Flags().IntVarP(&flags.port, "port", "p", 0,
		"PostgreSQL server port\n"+
			"Precedence: --port > $DB_PORT > olistload.yaml > 5433")
	cmd.Flags().StringVarP(&flags.username, "username", "U", "",
		"PostgreSQL user (default: $DB_USER or olist_user)")
	cmd.Flags().StringVarP(&flags.database, "database", "d", "",
		"Target database name (default: $DB_NAME or olist_analytics)")
	cmd.Flags().StringVar(&flags.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: prefer)")
}

// buildLoadConfig resolves the load configuration from CLI flags,
// environment, and olistload.yaml. Extracted for testability.
func buildLoadConfig(cmd *cobra.Command, dataDir string, verbose bool) (olistload.LoadConfig, *olistload.ConnectionConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return olistload.LoadConfig{}, nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}

	connConfig, err := resolveConnection(&loadFlags.conn, projectCfg, verbose)
	if err != nil {
		return olistload.LoadConfig{}, nil, err
	}

	batchSize := loadFlags.batchSize
	if batchSize == 0 && projectCfg != nil {
		batchSize = projectCfg.BatchSize
	}

	// Apply timeout from olistload.yaml if --timeout wasn't explicitly set
	timeout := loadFlags.timeout
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, parseErr := time.ParseDuration(projectCfg.Timeout)
		if parseErr != nil {
			return olistload.LoadConfig{}, nil, fmt.Errorf("invalid timeout in %s: %w", config.ConfigFileName, parseErr)
		}
		timeout = parsed
	}

	loadCfg := olistload.LoadConfig{
		DataDir:          dataDir,
		ConnectionString: db.BuildConnectionString(connConfig),
		BatchSize:        batchSize,
		Timeout:          timeout,
		Verbose:          verbose,
	}
	if err := loadCfg.Validate(); err != nil {
		return olistload.LoadConfig{}, nil, err
	}

	return loadCfg, connConfig, nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	loadCfg, connConfig, err := buildLoadConfig(cmd, args[0], verbose)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, loadCfg.Timeout)
	defer cancel()

	logger := logging.NewConsoleLogger(verbose)

	pool, err := db.NewConnector(connConfig).Connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	conn := db.NewPoolAdapter(pool)
	orchestrator := loader.New(filesystem.NewOSFileSystem(), schema.Default(), store.New(), logger)

	summary, err := orchestrator.Run(ctx, conn, loadCfg)
	if err != nil {
		return err
	}

	if summary.AnyLoaded() {
		results := report.NewReporter(logger).Run(ctx, conn)
		cmd.Println(report.Render(results))
	}

	return nil
}
