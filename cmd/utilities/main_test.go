// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/utilities/internal/htmlmd"
	"github.com/pdiddy/utilities/internal/idgen"
	"github.com/pdiddy/utilities/internal/store"
)

// execute runs the CLI with args and returns what it printed. Flag values
// are reset afterwards so tests do not leak into each other.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// override sets a config key for the duration of the test.
func override(t *testing.T, key string, value any) {
	t.Helper()
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, nil) })
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"usage", usageErrorf("bad flag"), exitUsage},
		{"wrapped usage", fmt.Errorf("outer: %w", usageErrorf("x")), exitUsage},
		{"invalid length", fmt.Errorf("%w: got 0", idgen.ErrInvalidLength), exitUsage},
		{"source conflict", htmlmd.ErrSourceConflict, exitUsage},
		{"unknown command", errors.New(`unknown command "nope" for "utilities"`), exitUsage},
		{"runtime failure", errors.New("connection refused"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "utilities dev\n", out)
}

func TestRandomID(t *testing.T) {
	out, _, err := execute(t, "random-id")
	require.NoError(t, err)
	ids := lines(out)
	require.Len(t, ids, 1)
	assert.Len(t, ids[0], idgen.DefaultLength)

	out, stderr, err := execute(t, "random-id", "-l", "4", "--count", "3", "--stats")
	require.NoError(t, err)
	ids = lines(out)
	require.Len(t, ids, 3)
	for _, id := range ids {
		assert.Len(t, id, 4)
		assert.NotContains(t, id, "0")
	}
	assert.Contains(t, stderr, "length 4")
}

func TestRandomID_UUID(t *testing.T) {
	out, _, err := execute(t, "random-id", "--uuid")
	require.NoError(t, err)
	_, err = uuid.Parse(strings.TrimSpace(out))
	assert.NoError(t, err)
}

func TestRandomID_UsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"random-id", "--length", "0"},
		{"random-id", "--length", "-3"},
		{"random-id", "--length", "abc"},
		{"random-id", "--count", "0"},
	} {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			out, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, exitUsage, exitCode(err))
			assert.Empty(t, out)
		})
	}
}

func TestHTMLToMarkdown(t *testing.T) {
	in := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(in, []byte("<h1>Title</h1>"), 0o644))

	out, _, err := execute(t, "html-to-markdown", "--in_html", in)
	require.NoError(t, err)
	assert.Equal(t, "# Title", strings.TrimSpace(out))

	dst := filepath.Join(t.TempDir(), "page.md")
	out, _, err = execute(t, "html-to-markdown", "--in_html", in, "--out_markdown", dst)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(data))
}

func TestHTMLToMarkdown_SourceErrors(t *testing.T) {
	_, _, err := execute(t, "html-to-markdown", "--in_url", "https://example.com", "--in_html", "x.html")
	assert.ErrorIs(t, err, htmlmd.ErrSourceConflict)
	assert.Equal(t, exitUsage, exitCode(err))

	_, _, err = execute(t, "html-to-markdown")
	assert.ErrorIs(t, err, htmlmd.ErrNoSource)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestHTMLToMarkdown_UnknownEngine(t *testing.T) {
	_, _, err := execute(t, "html-to-markdown", "--in_html", "x.html", "--engine", "lynx")
	assert.ErrorContains(t, err, `unknown engine "lynx"`)
}

const sheetCSV = "id,name,score\n1,alpha,1.5\n2,beta,\n3,gamma,2\n"

func sheetServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/spreadsheets/d/sheet123/export") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sheetCSV))
	}))
	t.Cleanup(ts.Close)
	override(t, "gsheet.base_url", ts.URL)
	return ts
}

func TestGsheet_Outputs(t *testing.T) {
	sheetServer(t)

	out, _, err := execute(t, "gsheet", "--sheet_id", "sheet123", "--rows", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "shape: (2, 3)\n"), out)
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "gamma")

	out, _, err = execute(t, "gsheet", "--sheet_id", "sheet123", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "id,name,score\n1,alpha,1.5\n2,beta,\n3,gamma,2.0\n", out)

	out, _, err = execute(t, "gsheet", "--sheet_id", "sheet123", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": 1,`)
	assert.Contains(t, out, `"score": null`)
}

func TestGsheet_SavesToDB(t *testing.T) {
	sheetServer(t)
	db := filepath.Join(t.TempDir(), "sheets.db")

	_, _, err := execute(t, "gsheet", "--sheet_id", "sheet123", "--db", db, "--table", "scores")
	require.NoError(t, err)

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(context.Background(), "scores")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGsheet_Errors(t *testing.T) {
	sheetServer(t)

	_, _, err := execute(t, "gsheet")
	assert.Equal(t, exitUsage, exitCode(err))

	_, _, err = execute(t, "gsheet", "--sheet_id", "sheet123", "-o", "xml")
	assert.Equal(t, exitUsage, exitCode(err))

	out, _, err := execute(t, "gsheet", "--sheet_id", "sheet123", "--rows", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows must not be negative")
	assert.Equal(t, exitUsage, exitCode(err))
	assert.Empty(t, out)

	_, _, err = execute(t, "gsheet", "--sheet_id", "private")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anyone with the link")
	assert.Equal(t, exitFailure, exitCode(err))
}

func TestCollectionSize(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"numFound":2,"docs":[{"pid":"bdr:1","object_size_lsi":1024},{"pid":"bdr:2","fed_object_size_lsi":476}]}}`))
	})
	mux.HandleFunc("/api/collections/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Test Collection"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	override(t, "collection.search_url", ts.URL+"/api/search/")
	override(t, "collection.collections_url", ts.URL+"/api/collections/")

	out, _, err := execute(t, "collection-size", "--collection-pid", "bdr:abc")
	require.NoError(t, err)
	assert.Contains(t, out, "Collection: bdr:abc\n")
	assert.Contains(t, out, "Title: Test Collection\n")
	assert.Contains(t, out, "Total bytes: 1500\n")
	assert.Contains(t, out, "Human: 1.46 KB\n")

	out, _, err = execute(t, "collection-size", "--collection-pid", "bdr:abc", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_bytes": 1500`)

	_, _, err = execute(t, "collection-size")
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestTextCommands(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2025, 9, 6, 21, 46, 45, 0, time.Local) }
	defer func() { now = orig }()

	out, _, err := execute(t, "underscore", "--source", "foo bar")
	require.NoError(t, err)
	assert.Equal(t, "foo_bar\n", out)

	out, _, err = execute(t, "date-prefix", "--source", "foo bar")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-06_foo bar\n", out)

	out, _, err = execute(t, "date-prefix", "--source", "foo bar", "--add_timestamp", "TRUE")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-06T21:46:45_foo bar\n", out)

	_, _, err = execute(t, "underscore")
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	_, _, err := execute(t, "random-id", "--bogus")
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}
