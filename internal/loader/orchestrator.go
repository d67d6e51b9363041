// Package loader orchestrates a full load run: every registered source
// file is pushed through an explicit per-table state machine, and table
// failures are collected into the run summary instead of aborting the run.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/olistdata/olistload/internal/coerce"
	"github.com/olistdata/olistload/internal/csvio"
	"github.com/olistdata/olistload/internal/files/filesystem"
	"github.com/olistdata/olistload/internal/schema"
	"github.com/olistdata/olistload/pkg/olistload"
)

// Store is the persistence surface the orchestrator needs. Implemented by
// store.Writer; narrowed here so tests can substitute a fake.
type Store interface {
	EnsureSchemas(ctx context.Context, conn olistload.DBConnection) error
	Replace(ctx context.Context, conn olistload.DBConnection, cfg *olistload.TableConfig, frame *coerce.Frame, batchSize int) (int64, error)
	CreateIndexes(ctx context.Context, conn olistload.DBConnection, cfg *olistload.TableConfig, frame *coerce.Frame) ([]string, error)
	CountRows(ctx context.Context, conn olistload.DBConnection, cfg *olistload.TableConfig) (int64, error)
	ApplyComments(ctx context.Context, conn olistload.DBConnection) error
	CreateViews(ctx context.Context, conn olistload.DBConnection) error
}

// Orchestrator runs the load pipeline over the schema registry.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type Orchestrator struct {
	fs       filesystem.Provider
	registry schema.Registry
	store    Store
	logger   olistload.Logger
}

// New creates an Orchestrator with all dependencies injected.
// Panics on nil dependencies: those are programmer errors that should fail
// loudly at startup rather than as nil dereferences mid-run.
func New(fs filesystem.Provider, registry schema.Registry, st Store, logger olistload.Logger) *Orchestrator {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if registry == nil {
		panic("registry cannot be nil")
	}
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Orchestrator{fs: fs, registry: registry, store: st, logger: logger}
}

// Run executes a full load. Schema bootstrap failures are fatal and
// returned; per-table failures become failed entries in the summary.
// The returned summary is non-nil whenever the error is nil.
func (o *Orchestrator) Run(ctx context.Context, conn olistload.DBConnection, loadCfg olistload.LoadConfig) (*olistload.LoadSummary, error) {
	if err := o.registry.Validate(); err != nil {
		return nil, err
	}
	if err := o.store.EnsureSchemas(ctx, conn); err != nil {
		return nil, err
	}
	o.logger.Verbose("schemas ready: %v", olistload.SchemaNames())

	summary := &olistload.LoadSummary{}
	for _, sourceFile := range o.registry.SourceFiles() {
		cfg := o.registry[sourceFile]
		run := o.runTable(ctx, conn, loadCfg, &cfg)
		summary.Results = append(summary.Results, run.result)
	}

	if summary.AnyLoaded() {
		o.finishRun(ctx, conn)
	}
	o.logSummary(summary)

	return summary, nil
}

// runTable drives one table through the state machine. It never returns
// an error: every failure is folded into the table's terminal result.
func (o *Orchestrator) runTable(ctx context.Context, conn olistload.DBConnection, loadCfg olistload.LoadConfig, cfg *olistload.TableConfig) *tableRun {
	run := newTableRun(cfg, o.logger)
	path := filepath.Join(loadCfg.DataDir, cfg.SourceFile)

	o.logger.Info("loading %s", cfg.SourceFile)

	if _, err := o.fs.Stat(path); err != nil {
		return run.fail(fmt.Errorf("%s: %w", cfg.SourceFile, olistload.ErrSourceFileNotFound))
	}
	run.advance(StateFileChecked)

	table, err := csvio.Read(o.fs, path, cfg.TemporalColumns)
	if err != nil {
		return run.fail(err)
	}
	run.advance(StateRead)
	o.logger.Info("  rows: %d, columns: %d", table.RowCount, len(table.Header))

	frame, err := coerce.Table(table, cfg)
	if err != nil {
		return run.fail(err)
	}
	run.advance(StateCoerced)

	o.profileNulls(frame)
	run.advance(StateNullProfiled)

	written, err := o.store.Replace(ctx, conn, cfg, frame, loadCfg.BatchSize)
	if err != nil {
		return run.fail(fmt.Errorf("write %s.%s: %w", cfg.Schema, cfg.TableName, err))
	}
	run.advance(StateWritten)

	indexes, err := o.store.CreateIndexes(ctx, conn, cfg, frame)
	if err != nil {
		return run.fail(fmt.Errorf("index %s.%s: %w", cfg.Schema, cfg.TableName, err))
	}
	run.advance(StateIndexed)
	if len(indexes) > 0 {
		o.logger.Verbose("  indexes: %v", indexes)
	}

	// Verification is advisory: a mismatch (or an unreadable count) is
	// logged and the table still completes.
	stored, err := o.store.CountRows(ctx, conn, cfg)
	switch {
	case err != nil:
		o.logger.Warn("  could not verify %s.%s: %v", cfg.Schema, cfg.TableName, err)
	case stored != written:
		o.logger.Warn("  row count mismatch for %s.%s: wrote %d, stored %d",
			cfg.Schema, cfg.TableName, written, stored)
	default:
		o.logger.Info("  loaded %d rows to %s.%s", stored, cfg.Schema, cfg.TableName)
	}
	run.complete(written)

	return run
}

// profileNulls logs per-column null counts and percentages, highest first.
func (o *Orchestrator) profileNulls(frame *coerce.Frame) {
	counts := frame.NullCounts()

	names := make([]string, 0, len(counts))
	for name, n := range counts {
		if n > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 || frame.Rows == 0 {
		return
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	o.logger.Info("  null values found:")
	for _, name := range names {
		n := counts[name]
		pct := float64(n) / float64(frame.Rows) * 100
		o.logger.Info("    - %s: %d (%.1f%%)", name, n, pct)
	}
}

// finishRun applies the post-load extras. Both are non-fatal.
func (o *Orchestrator) finishRun(ctx context.Context, conn olistload.DBConnection) {
	if err := o.store.ApplyComments(ctx, conn); err != nil {
		o.logger.Warn("documentation comments: %v", err)
	} else {
		o.logger.Verbose("documentation comments applied")
	}

	if err := o.store.CreateViews(ctx, conn); err != nil {
		o.logger.Warn("summary views: %v", err)
	} else {
		o.logger.Info("created summary views")
	}
}

func (o *Orchestrator) logSummary(summary *olistload.LoadSummary) {
	succeeded := summary.SucceededTables()
	failed := summary.FailedFiles()

	o.logger.Info("loaded %d of %d tables", len(succeeded), len(summary.Results))
	for _, table := range succeeded {
		o.logger.Verbose("  - %s", table)
	}
	if len(failed) > 0 {
		o.logger.Warn("failed: %d files", len(failed))
		for _, file := range failed {
			o.logger.Warn("  - %s", file)
		}
	}
}

// tableRun carries one table's state machine and its eventual result.
type tableRun struct {
	state  LoadState
	trace  []LoadState
	logger olistload.Logger
	result olistload.LoadResult
}

func newTableRun(cfg *olistload.TableConfig, logger olistload.Logger) *tableRun {
	return &tableRun{
		state:  StatePending,
		trace:  []LoadState{StatePending},
		logger: logger,
		result: olistload.LoadResult{
			TableName:  cfg.TableName,
			SourceFile: cfg.SourceFile,
		},
	}
}

func (r *tableRun) advance(next LoadState) {
	if r.state.Terminal() {
		panic(fmt.Sprintf("transition from terminal state %s", r.state))
	}
	r.logger.Verbose("  %s: %s -> %s", r.result.SourceFile, r.state, next)
	r.state = next
	r.trace = append(r.trace, next)
}

func (r *tableRun) complete(rows int64) {
	r.advance(StateVerified)
	r.result.Status = olistload.LoadSucceeded
	r.result.RowCount = rows
}

func (r *tableRun) fail(err error) *tableRun {
	r.logger.Error("  %s: %v", r.result.SourceFile, err)
	r.advance(StateFailed)
	r.result.Status = olistload.LoadFailed
	r.result.FailureReason = err.Error()
	return r
}
