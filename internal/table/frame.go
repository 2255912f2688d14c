// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table holds a small column-oriented data frame: named columns with
// a single inferred dtype each, built from CSV text or spreadsheet rows.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DType is the inferred type of a column.
type DType string

const (
	Int64   DType = "i64"
	Float64 DType = "f64"
	Bool    DType = "bool"
	String  DType = "str"
	Null    DType = "null"
)

// Column is a named, typed column. Values holds int64, float64, bool or
// string elements matching DType; nil marks a missing cell.
type Column struct {
	Name   string
	DType  DType
	Values []any
}

// Frame is an ordered set of equal-length columns.
type Frame struct {
	Columns []Column
}

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("input has no header row")

// ReadCSV parses CSV from r. The first record is the header; every record
// must have the same number of fields.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	return FromRecords(records[0], records[1:])
}

// FromRecords builds a frame from a header and string rows. Short rows are
// padded with empty cells (spreadsheet exports drop trailing blanks); a row
// longer than the header is an error.
func FromRecords(header []string, rows [][]string) (*Frame, error) {
	if len(header) == 0 {
		return nil, ErrNoHeader
	}
	names := columnNames(header)

	cells := make([][]string, len(names))
	for i := range cells {
		cells[i] = make([]string, len(rows))
	}
	for r, row := range rows {
		if len(row) > len(names) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", r+2, len(row), len(names))
		}
		for c, v := range row {
			cells[c][r] = v
		}
	}

	f := &Frame{Columns: make([]Column, len(names))}
	for i, name := range names {
		f.Columns[i] = inferColumn(name, cells[i])
	}
	return f, nil
}

// columnNames fills empty header cells with column_N and suffixes repeated
// names with _duplicated_K until the name is unused. Names are compared
// case-insensitively, as SQLite compares column names.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	next := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		if used[strings.ToLower(name)] {
			base := strings.ToLower(name)
			prefix := name
			for used[strings.ToLower(name)] {
				name = fmt.Sprintf("%s_duplicated_%d", prefix, next[base])
				next[base]++
			}
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.Columns) }

// Height returns the number of rows.
func (f *Frame) Height() int {
	if len(f.Columns) == 0 {
		return 0
	}
	return len(f.Columns[0].Values)
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (Column, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Head returns a frame with at most the first n rows. Column slices are
// shared with f.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.Height() {
		n = f.Height()
	}
	out := &Frame{Columns: make([]Column, len(f.Columns))}
	for i, c := range f.Columns {
		out.Columns[i] = Column{Name: c.Name, DType: c.DType, Values: c.Values[:n]}
	}
	return out
}

// Row returns the values of row i in column order.
func (f *Frame) Row(i int) []any {
	row := make([]any, len(f.Columns))
	for c, col := range f.Columns {
		row[c] = col.Values[i]
	}
	return row
}
