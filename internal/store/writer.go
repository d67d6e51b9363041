// Package store persists coerced frames into PostgreSQL with replace
// semantics: drop the target, recreate it with typed columns, insert in
// fixed-size multi-row batches, then add idempotent indexes.
//
// All DDL goes through pgx.Identifier.Sanitize() for safe identifier
// quoting; row values are always bound as statement parameters.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/olistdata/olistload/internal/coerce"
	"github.com/olistdata/olistload/pkg/olistload"
)

// Writer implements the persistence phase of a table load using the
// DBConnection abstraction. Stateless and safe for concurrent use; thread
// safety depends on the injected DBConnection.
type Writer struct{}

// New creates a new Writer.
func New() *Writer {
	return &Writer{}
}

// EnsureSchemas creates the analytics schemas if they do not exist.
// Any failure here is fatal for the run and wrapped with ErrSchemaSetup.
func (w *Writer) EnsureSchemas(ctx context.Context, conn olistload.DBConnection) error {
	for _, name := range olistload.SchemaNames() {
		query := fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgx.Identifier{name}.Sanitize())
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("create schema %q: %v: %w", name, err, olistload.ErrSchemaSetup)
		}
	}
	return nil
}

// Replace drops and recreates the target table, then writes the frame in
// multi-row INSERT batches of batchSize rows. The whole write runs on a
// single acquired connection. Returns the number of rows written.
//
// The registry's key hint is documentation only; like the source extracts
// themselves, the recreated tables carry no enforced constraints.
func (w *Writer) Replace(ctx context.Context, conn olistload.DBConnection, cfg *olistload.TableConfig, frame *coerce.Frame, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = olistload.DefaultBatchSize
	}

	pooledConn, err := conn.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer pooledConn.Release()

	target := pgx.Identifier{cfg.Schema, cfg.TableName}.Sanitize()

	if _, err := pooledConn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", target)); err != nil {
		return 0, fmt.Errorf("failed to drop %s.%s: %w", cfg.Schema, cfg.TableName, err)
	}
	if _, err := pooledConn.Exec(ctx, createTableSQL(cfg, frame)); err != nil {
		return 0, fmt.Errorf("failed to create %s.%s: %w", cfg.Schema, cfg.TableName, err)
	}

	var written int64
	for start := 0; start < frame.Rows; start += batchSize {
		end := start + batchSize
		if end > frame.Rows {
			end = frame.Rows
		}

		query, args := insertBatch(cfg, frame, start, end)
		if _, err := pooledConn.Exec(ctx, query, args...); err != nil {
			return written, fmt.Errorf("failed to insert rows %d-%d into %s.%s: %w",
				start, end-1, cfg.Schema, cfg.TableName, err)
		}
		written += int64(end - start)
	}

	return written, nil
}

// CreateIndexes creates idx_<table>_<column> indexes for the configured
// index columns that are present in the frame. Creation is idempotent.
// Returns the names of the indexes created.
func (w *Writer) CreateIndexes(ctx context.Context, conn olistload.DBConnection, cfg *olistload.TableConfig, frame *coerce.Frame) ([]string, error) {
	var created []string
	for _, col := range cfg.Indexes {
		if frame.Column(col) == nil {
			continue
		}
		name := fmt.Sprintf("idx_%s_%s", cfg.TableName, col)
		query := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			pgx.Identifier{name}.Sanitize(),
			pgx.Identifier{cfg.Schema, cfg.TableName}.Sanitize(),
			pgx.Identifier{col}.Sanitize())
		if _, err := conn.Exec(ctx, query); err != nil {
			return created, fmt.Errorf("failed to create index %s: %w", name, err)
		}
		created = append(created, name)
	}
	return created, nil
}

// CountRows returns the stored row count of the target table.
func (w *Writer) CountRows(ctx context.Context, conn olistload.DBConnection, cfg *olistload.TableConfig) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{cfg.Schema, cfg.TableName}.Sanitize())
	var count int64
	if err := conn.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s.%s: %w", cfg.Schema, cfg.TableName, err)
	}
	return count, nil
}

// ApplyComments attaches the relationship documentation to the loaded
// tables. The relationships are not enforced as foreign keys; the source
// data does not satisfy them.
func (w *Writer) ApplyComments(ctx context.Context, conn olistload.DBConnection) error {
	for _, stmt := range documentationStatements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply documentation: %w", err)
		}
	}
	return nil
}

// CreateViews creates (or replaces) the analysis summary views.
func (w *Writer) CreateViews(ctx context.Context, conn olistload.DBConnection) error {
	for name, stmt := range summaryViews {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create view %s: %w", name, err)
		}
	}
	return nil
}

// ViewNames returns the summary view names in creation order.
func (w *Writer) ViewNames() []string {
	return []string{viewOrderSummary, viewProductPerformance, viewSellerPerformance}
}

func sqlType(d olistload.DType) string {
	switch d {
	case olistload.DTypeInt:
		return "bigint"
	case olistload.DTypeFloat:
		return "double precision"
	case olistload.DTypeDatetime:
		return "timestamp"
	default:
		// Declared string and pass-through columns both store as text.
		return "text"
	}
}

func createTableSQL(cfg *olistload.TableConfig, frame *coerce.Frame) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(pgx.Identifier{cfg.Schema, cfg.TableName}.Sanitize())
	b.WriteString(" (")
	for i, col := range frame.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{col.Name}.Sanitize())
		b.WriteString(" ")
		b.WriteString(sqlType(col.Declared))
	}
	b.WriteString(")")
	return b.String()
}

// insertBatch builds a multi-row INSERT for frame rows [start, end) with
// one positional parameter per cell. With nine columns and the default
// batch size of 5000 this stays well below the protocol's 65535 parameter
// limit.
func insertBatch(cfg *olistload.TableConfig, frame *coerce.Frame, start, end int) (string, []any) {
	cols := len(frame.Columns)

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier{cfg.Schema, cfg.TableName}.Sanitize())
	b.WriteString(" (")
	for i, col := range frame.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{col.Name}.Sanitize())
	}
	b.WriteString(") VALUES ")

	args := make([]any, 0, (end-start)*cols)
	for row := start; row < end; row++ {
		if row > start {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", len(args)+1)
			args = append(args, frame.Columns[c].Values[row])
		}
		b.WriteString(")")
	}

	return b.String(), args
}
