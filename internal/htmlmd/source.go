// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmlmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/pdiddy/utilities/internal/httputil"
	"github.com/pdiddy/utilities/internal/logging"
)

var (
	// ErrSourceConflict is returned when both a URL and a file are given.
	ErrSourceConflict = errors.New("provide either a URL or an HTML file, not both")

	// ErrNoSource is returned when neither a URL nor a file is given.
	ErrNoSource = errors.New("provide a URL or an HTML file to convert")
)

// maxHTMLSize bounds how much of a fetched page is read into memory.
var maxHTMLSize int64 = 64 << 20

// Source is the input document: exactly one of URL and Path must be set.
type Source struct {
	URL  string
	Path string
}

// Validate enforces that exactly one of URL and Path is set.
func (s Source) Validate() error {
	hasURL := strings.TrimSpace(s.URL) != ""
	hasPath := strings.TrimSpace(s.Path) != ""
	switch {
	case hasURL && hasPath:
		return ErrSourceConflict
	case !hasURL && !hasPath:
		return ErrNoSource
	}
	return nil
}

// String returns the URL or path, whichever is set.
func (s Source) String() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Path
}

// Load returns the HTML for s, fetching it with client when s is a URL.
func (s Source) Load(ctx context.Context, client *http.Client, userAgent string) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	if s.URL != "" {
		return FetchHTML(ctx, client, s.URL, userAgent)
	}
	return ReadHTMLFile(s.Path)
}

// FetchHTML downloads url and returns its body decoded to UTF-8, using the
// charset from the Content-Type header or the document's meta tags.
func FetchHTML(ctx context.Context, client *http.Client, url, userAgent string) (string, error) {
	resp, err := httputil.Get(ctx, client, url, userAgent)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := httputil.ReadLimited(resp.Body, maxHTMLSize)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	contentType := resp.Header.Get("Content-Type")
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", fmt.Errorf("decoding %s (%s): %w", url, contentType, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	logging.FromContext(ctx).Debug("fetched html", "url", url, "content_type", contentType, "bytes", len(body))
	return strings.ToValidUTF8(string(body), "\uFFFD"), nil
}

// ReadHTMLFile reads a local HTML file. Content that is not valid UTF-8 is
// decoded with the charset its meta tags declare, defaulting to
// windows-1252 as browsers do.
func ReadHTMLFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("input HTML file does not exist: %s", path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return decodeHTML(data), nil
}

func decodeHTML(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	enc, _, _ := charset.DetermineEncoding(data, "text/html")
	if out, err := enc.NewDecoder().Bytes(data); err == nil {
		return strings.ToValidUTF8(string(out), "\uFFFD")
	}
	return strings.ToValidUTF8(string(data), "\uFFFD")
}
