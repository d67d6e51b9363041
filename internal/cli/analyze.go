package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/olistdata/olistload/internal/analyze"
	"github.com/olistdata/olistload/internal/config"
	"github.com/olistdata/olistload/internal/files/filesystem"
	"github.com/olistdata/olistload/internal/logging"
	"github.com/olistdata/olistload/pkg/olistload"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <data_dir>",
	Short: "Profile CSV files without loading them",
	Long: `Analyze scans the data directory and profiles every CSV file: row and
column counts, per-column null/unique statistics, sample values, and a
suggested logical type. Nothing is written to the store.

Unreadable files become error entries in the artifact; the scan itself
only fails if the directory cannot be read.

Examples:
  # Print a summary of ./data
  olistload analyze ./data

  # Also write the JSON artifact
  olistload analyze ./data --output analysis.json

  # Faster scan of very large extracts
  olistload analyze ./data --sample-size 1000`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

type analyzeFlagValues struct {
	output     string
	sampleSize int
}

var analyzeFlags analyzeFlagValues

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFlags.output, "output", "o", "",
		"Write the JSON artifact to this path (default: summary only)")
	analyzeCmd.Flags().IntVar(&analyzeFlags.sampleSize, "sample-size", 0,
		"Values examined per column during type inference (0 = all)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg := olistload.AnalyzeConfig{
		DataDir:    args[0],
		OutputPath: analyzeFlags.output,
		SampleSize: analyzeFlags.sampleSize,
		Verbose:    verbose,
	}
	if cfg.OutputPath == "" {
		if projectCfg, err := config.Load("."); err == nil {
			cfg.OutputPath = projectCfg.ReportPath
		} else if !errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
		}
	}

	logger := logging.NewConsoleLogger(verbose)
	analyzer := analyze.NewAnalyzer(filesystem.NewOSFileSystem(), logger)

	analysisReport, err := analyzer.Run(cfg)
	if err != nil {
		return err
	}

	cmd.Print(analyze.RenderSummary(analysisReport))

	if cfg.OutputPath != "" {
		data, err := analyze.Encode(analysisReport)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write analysis artifact: %w", err)
		}
		logger.Info("analysis artifact written to %s", cfg.OutputPath)
	}

	return nil
}
