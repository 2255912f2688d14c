// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxCellWidth is the display width at which rendered cells are truncated.
var MaxCellWidth = 32

// Render writes f as a box-drawn table: a shape line, the header, the dtype
// row and one line per row. Widths are measured in terminal cells.
func (f *Frame) Render(w io.Writer) error {
	fmt.Fprintf(w, "shape: (%d, %d)\n", f.Height(), f.Width())
	if f.Width() == 0 {
		return nil
	}

	header := make([]string, f.Width())
	dtypes := make([]string, f.Width())
	widths := make([]int, f.Width())
	for i, c := range f.Columns {
		header[i] = clip(c.Name)
		dtypes[i] = string(c.DType)
		widths[i] = max(runewidth.StringWidth(header[i]), runewidth.StringWidth(dtypes[i]), 3)
	}

	rows := make([][]string, f.Height())
	for r := range rows {
		rows[r] = make([]string, f.Width())
		for c, col := range f.Columns {
			cell := clip(FormatValue(col.Values[r], true))
			rows[r][c] = cell
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	border(&b, widths, "┌", "┬", "┐", "─")
	line(&b, widths, header)
	dashes := make([]string, len(widths))
	for i := range dashes {
		dashes[i] = "---"
	}
	line(&b, widths, dashes)
	line(&b, widths, dtypes)
	border(&b, widths, "╞", "╪", "╡", "═")
	for _, row := range rows {
		line(&b, widths, row)
	}
	border(&b, widths, "└", "┴", "┘", "─")

	_, err := io.WriteString(w, b.String())
	return err
}

func border(b *strings.Builder, widths []int, left, mid, right, fill string) {
	b.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat(fill, w+2))
	}
	b.WriteString(right)
	b.WriteByte('\n')
}

func line(b *strings.Builder, widths []int, cells []string) {
	b.WriteString("│")
	for i, w := range widths {
		if i > 0 {
			b.WriteString("┆")
		}
		b.WriteByte(' ')
		b.WriteString(runewidth.FillRight(cells[i], w))
		b.WriteByte(' ')
	}
	b.WriteString("│\n")
}

func clip(s string) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	if runewidth.StringWidth(s) <= MaxCellWidth {
		return s
	}
	return runewidth.Truncate(s, MaxCellWidth, "…")
}

// FormatValue renders a single cell. Strings are quoted when quote is set;
// nil renders as "null" in tables and as an empty string otherwise.
func FormatValue(v any, quote bool) string {
	switch x := v.(type) {
	case nil:
		if quote {
			return "null"
		}
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) && math.Abs(x) < 1e15 {
			return strconv.FormatFloat(x, 'f', 1, 64)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case string:
		if quote {
			return strconv.Quote(x)
		}
		return x
	default:
		return fmt.Sprint(x)
	}
}

// WriteCSV writes f as CSV with a header row. Missing cells are written empty.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Names()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	record := make([]string, f.Width())
	for r := range f.Height() {
		for c, col := range f.Columns {
			record[c] = FormatValue(col.Values[r], false)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", r+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
