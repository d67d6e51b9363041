// Package csvio reads the delimited source extracts into column-major
// tables, parsing declared temporal columns inline with the strict date
// grammar.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olistdata/olistload/internal/files/filesystem"
	"github.com/olistdata/olistload/internal/infer"
	"github.com/olistdata/olistload/pkg/olistload"
)

// Table is one source file read into memory, column-major.
type Table struct {
	FileName string
	Header   []string

	byName   map[string]int
	raw      [][]string       // column-major, aligned with Header
	temporal map[string][]any // read-time parsed columns: time.Time or nil

	RowCount int
}

// HasColumn reports whether the header contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Column returns the raw text values of the named column.
func (t *Table) Column(name string) ([]string, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.raw[idx], true
}

// TemporalColumn returns the read-time parsed values of a temporal column.
func (t *Table) TemporalColumn(name string) ([]any, bool) {
	vals, ok := t.temporal[name]
	return vals, ok
}

// Read parses the file at path into a Table. Columns named in
// temporalColumns (and present in the header) are parsed inline with the
// strict date grammar; unparseable or missing cells become nil.
//
// Any structural CSV failure (ragged rows, bad quoting, missing header)
// is wrapped with olistload.ErrMalformedSource.
func Read(fsp filesystem.Provider, path string, temporalColumns []string) (*Table, error) {
	content, err := fsp.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, content, temporalColumns)
}

// Parse parses already-read file content. Same contract as Read.
func Parse(path string, content []byte, temporalColumns []string) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%s: empty file: %w", path, olistload.ErrMalformedSource)
		}
		return nil, fmt.Errorf("%s: %v: %w", path, err, olistload.ErrMalformedSource)
	}

	table := &Table{
		FileName: path,
		Header:   header,
		byName:   make(map[string]int, len(header)),
		raw:      make([][]string, len(header)),
		temporal: make(map[string][]any),
	}
	for i, name := range header {
		table.byName[name] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", path, err, olistload.ErrMalformedSource)
		}
		for i, cell := range record {
			table.raw[i] = append(table.raw[i], cell)
		}
		table.RowCount++
	}

	for _, col := range temporalColumns {
		raw, ok := table.Column(col)
		if !ok {
			continue
		}
		parsed := make([]any, len(raw))
		for i, cell := range raw {
			if infer.IsMissing(cell) {
				continue
			}
			if ts, ok := infer.ParseTimestamp(cell); ok {
				parsed[i] = ts
			}
		}
		table.temporal[col] = parsed
	}

	return table, nil
}
