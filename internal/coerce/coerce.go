// Package coerce converts raw text columns into their declared logical
// types. Coercion is cell-level infallible: it always returns a slice of
// the same length and resolves unparseable values through fixed fallbacks.
//
// Known data-quality risk: declared int columns coerce unparseable values
// to 0 rather than NULL, which conflates "actually zero" with "missing".
// This reproduces the upstream loader's observed behavior and is kept
// deliberately; the zero shows up only in aggregate null/zero counts.
package coerce

import (
	"fmt"

	"github.com/olistdata/olistload/internal/csvio"
	"github.com/olistdata/olistload/internal/infer"
	"github.com/olistdata/olistload/pkg/olistload"
)

// Column is one typed column of a coerced frame. Values holds string,
// int64, float64, time.Time, or nil entries.
type Column struct {
	Name string

	// Declared is the declared logical type, or "" for columns that
	// passed through uncoerced.
	Declared olistload.DType

	Values []any
}

// Frame is a fully coerced table, ready to write.
type Frame struct {
	Columns []Column
	Rows    int
}

// Column returns the named column, or nil if absent.
func (f *Frame) Column(name string) *Column {
	for i := range f.Columns {
		if f.Columns[i].Name == name {
			return &f.Columns[i]
		}
	}
	return nil
}

// Row materializes row i across all columns, in column order.
func (f *Frame) Row(i int) []any {
	row := make([]any, len(f.Columns))
	for c := range f.Columns {
		row[c] = f.Columns[c].Values[i]
	}
	return row
}

// NullCounts returns the per-column null counts of the frame,
// in column order.
func (f *Frame) NullCounts() map[string]int {
	counts := make(map[string]int, len(f.Columns))
	for _, col := range f.Columns {
		n := 0
		for _, v := range col.Values {
			if v == nil {
				n++
			}
		}
		counts[col.Name] = n
	}
	return counts
}

// Apply converts raw values to the declared type. The result always has
// the same length as the input; bad cells resolve via the per-type
// fallback (string: null-marker to NULL; int: 0; float: NULL;
// datetime: NULL).
func Apply(raw []string, declared olistload.DType) []any {
	out := make([]any, len(raw))
	for i, cell := range raw {
		out[i] = coerceCell(cell, declared)
	}
	return out
}

func coerceCell(cell string, declared olistload.DType) any {
	switch declared {
	case olistload.DTypeString:
		if infer.IsMissing(cell) {
			return nil
		}
		return cell

	case olistload.DTypeInt:
		f, ok := infer.ParseNumber(cell)
		if !ok {
			return int64(0)
		}
		return int64(f)

	case olistload.DTypeFloat:
		f, ok := infer.ParseNumber(cell)
		if !ok {
			return nil
		}
		return f

	case olistload.DTypeDatetime:
		if infer.IsMissing(cell) {
			return nil
		}
		ts, ok := infer.ParseTimestampPermissive(cell)
		if !ok {
			return nil
		}
		return ts

	default:
		// Pass-through for undeclared columns.
		if infer.IsMissing(cell) {
			return nil
		}
		return cell
	}
}

// Table coerces every column of a source table per the TableConfig.
// Declared temporal columns reuse the read-time parse; columns the config
// does not declare pass through as text. The only failure mode is
// structural: a declared column absent from the source, reported with
// olistload.ErrColumnMissing.
func Table(t *csvio.Table, cfg *olistload.TableConfig) (*Frame, error) {
	for col := range cfg.ColumnTypes {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("%s: column %q: %w", t.FileName, col, olistload.ErrColumnMissing)
		}
	}

	frame := &Frame{Rows: t.RowCount}
	for _, name := range t.Header {
		declared, isDeclared := cfg.ColumnTypes[name]

		var values []any
		switch {
		case isDeclared && declared == olistload.DTypeDatetime && cfg.IsTemporal(name):
			// Temporal fast path: already parsed at read time.
			if parsed, ok := t.TemporalColumn(name); ok {
				values = parsed
			} else {
				raw, _ := t.Column(name)
				values = Apply(raw, olistload.DTypeDatetime)
			}
		case isDeclared:
			raw, _ := t.Column(name)
			values = Apply(raw, declared)
		default:
			raw, _ := t.Column(name)
			values = Apply(raw, "")
		}

		col := Column{Name: name, Values: values}
		if isDeclared {
			col.Declared = declared
		}
		frame.Columns = append(frame.Columns, col)
	}

	return frame, nil
}
