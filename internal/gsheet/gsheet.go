// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gsheet loads a public spreadsheet ("anyone with the link can
// view") into a table.Frame from its CSV or XLSX export endpoint.
package gsheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/utilities/internal/httputil"
	"github.com/pdiddy/utilities/internal/logging"
	"github.com/pdiddy/utilities/internal/table"
	"github.com/pdiddy/utilities/pkg/types"
)

// DefaultBaseURL is the spreadsheet export host.
const DefaultBaseURL = "https://docs.google.com"

// maxExportSize bounds how much of an export is read into memory.
var maxExportSize int64 = 256 << 20

// ErrMissingSheetID is returned when no spreadsheet identifier is given.
var ErrMissingSheetID = errors.New("sheet id is required")

// Request identifies one tab of one spreadsheet.
type Request struct {
	SheetID string
	GID     string
	Format  types.SheetFormat
	// SheetName selects the workbook sheet for XLSX exports; empty means the
	// first sheet.
	SheetName string
}

// ExportURL returns the export endpoint for the request under base.
func ExportURL(base string, req Request) string {
	if base == "" {
		base = DefaultBaseURL
	}
	format := req.Format
	if format == "" {
		format = types.SheetCSV
	}
	q := url.Values{}
	q.Set("format", string(format))
	q.Set("gid", req.GID)
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?%s",
		strings.TrimRight(base, "/"), url.PathEscape(req.SheetID), q.Encode())
}

// Loader fetches spreadsheet exports. It makes exactly one request per Load
// and does not retry or cache.
type Loader struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

// NewLoader builds a Loader from cfg.
func NewLoader(cfg types.SheetConfig) *Loader {
	return &Loader{
		Client:    httputil.NewClient(cfg.Timeout),
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
	}
}

// Load downloads the export for req and parses it into a frame.
func (l *Loader) Load(ctx context.Context, req Request) (*table.Frame, error) {
	if strings.TrimSpace(req.SheetID) == "" {
		return nil, ErrMissingSheetID
	}
	if req.GID == "" {
		req.GID = "0"
	}
	if req.Format == "" {
		req.Format = types.SheetCSV
	}

	log := logging.FromContext(ctx)
	exportURL := ExportURL(l.BaseURL, req)
	log.Info("fetching sheet", "sheet_id", req.SheetID, "gid", req.GID, "format", req.Format)

	data, err := l.fetch(ctx, exportURL)
	if err != nil {
		return nil, err
	}
	log.Debug("sheet downloaded", "bytes", len(data))

	var f *table.Frame
	switch req.Format {
	case types.SheetCSV:
		f, err = table.ReadCSV(bytes.NewReader(data))
	case types.SheetXLSX:
		f, err = readXLSX(data, req.SheetName)
	default:
		return nil, fmt.Errorf("unsupported export format %q: use csv or xlsx", req.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing sheet %s (gid %s): %w", req.SheetID, req.GID, err)
	}

	log.Info("sheet loaded", "rows", f.Height(), "columns", f.Width())
	return f, nil
}

func (l *Loader) fetch(ctx context.Context, exportURL string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.Get(ctx, client, exportURL, l.UserAgent)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("fetching sheet (is it shared as \"anyone with the link\"?): %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := httputil.ReadLimited(resp.Body, maxExportSize)
	if err != nil {
		return nil, fmt.Errorf("reading sheet export: %w", err)
	}
	return data, nil
}

// readXLSX reads the named sheet (or the first one) of an XLSX workbook.
// The first row is the header.
func readXLSX(data []byte, sheetName string) (*table.Frame, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()

	if sheetName == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := wb.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, table.ErrNoHeader
	}

	// GetRows drops trailing empty cells, so the header can be shorter than
	// a data row.
	header := rows[0]
	for _, r := range rows[1:] {
		for len(header) < len(r) {
			header = append(header, "")
		}
	}
	return table.FromRecords(header, rows[1:])
}
