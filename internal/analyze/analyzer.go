// Package analyze implements the exploratory directory scan: every CSV
// file in the data directory is profiled column by column without
// touching the store. Unreadable files become error entries in the
// artifact instead of failing the scan.
package analyze

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olistdata/olistload/internal/checksum"
	"github.com/olistdata/olistload/internal/csvio"
	"github.com/olistdata/olistload/internal/files/filesystem"
	"github.com/olistdata/olistload/internal/infer"
	"github.com/olistdata/olistload/pkg/olistload"
)

// Analyzer profiles a directory of CSV extracts.
type Analyzer struct {
	fs       filesystem.Provider
	checksum checksum.Calculator
	logger   olistload.Logger
}

// NewAnalyzer creates an Analyzer. Panics on nil dependencies.
func NewAnalyzer(fs filesystem.Provider, logger olistload.Logger) *Analyzer {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Analyzer{fs: fs, checksum: checksum.New(), logger: logger}
}

// Run scans cfg.DataDir and profiles every CSV file found. The only
// errors returned are an invalid config or an unreadable directory;
// per-file problems are recorded on the file's entry.
func (a *Analyzer) Run(cfg olistload.AnalyzeConfig) (*olistload.AnalysisReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entries, err := a.fs.ReadDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %q: %w", cfg.DataDir, err)
	}

	report := &olistload.AnalysisReport{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		DataDir:     cfg.DataDir,
		Files:       make(map[string]olistload.FileProfile),
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		a.logger.Verbose("profiling %s", entry.Name())
		report.Files[entry.Name()] = a.profileFile(cfg, entry.Name())
	}

	a.logger.Info("analyzed %d files in %s", len(report.Files), cfg.DataDir)
	return report, nil
}

func (a *Analyzer) profileFile(cfg olistload.AnalyzeConfig, name string) olistload.FileProfile {
	path := cfg.DataDir + "/" + name

	content, err := a.fs.ReadFile(path)
	if err != nil {
		a.logger.Warn("%s: %v", name, err)
		return olistload.FileProfile{FileName: name, Error: err.Error()}
	}

	table, err := csvio.Parse(path, content, nil)
	if err != nil {
		a.logger.Warn("%s: %v", name, err)
		return olistload.FileProfile{FileName: name, Error: err.Error()}
	}

	profile := olistload.FileProfile{
		FileName:     name,
		TotalRows:    table.RowCount,
		TotalColumns: len(table.Header),
		Columns:      make(map[string]olistload.ColumnProfile, len(table.Header)),
		Checksum:     a.checksum.Calculate(content),
	}
	for _, col := range table.Header {
		values, _ := table.Column(col)
		profile.Columns[col] = infer.ProfileColumn("text", values, cfg.SampleSize)
	}
	return profile
}

// Encode serializes the report as the indented JSON artifact.
func Encode(report *olistload.AnalysisReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis report: %w", err)
	}
	return data, nil
}

// RenderSummary lays out a per-file overview table for the terminal.
// Iterates files in the report's sorted key order.
func RenderSummary(report *olistload.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-45s %10s %8s  %s\n", "FILE", "ROWS", "COLUMNS", "STATUS")
	for _, name := range sortedFileNames(report) {
		p := report.Files[name]
		if p.Error != "" {
			fmt.Fprintf(&b, "%-45s %10s %8s  error: %s\n", name, "-", "-", p.Error)
			continue
		}
		fmt.Fprintf(&b, "%-45s %10d %8d  ok\n", name, p.TotalRows, p.TotalColumns)
	}

	return b.String()
}

func sortedFileNames(report *olistload.AnalysisReport) []string {
	names := make([]string, 0, len(report.Files))
	for name := range report.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
