// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/utilities/internal/logging"
)

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 4096

// StatusError reports a non-2xx HTTP response. Body holds the response body
// as the server sent it, truncated to a few KiB.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("HTTP %s from %s", e.Status, e.URL)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// CheckStatus returns nil for 2xx responses. Otherwise it reads (a prefix of)
// the body and returns a *StatusError. The caller still owns resp.Body.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	u := ""
	if resp.Request != nil && resp.Request.URL != nil {
		u = resp.Request.URL.String()
	}
	return &StatusError{
		URL:        u,
		StatusCode: resp.StatusCode,
		Status:     status,
		Body:       string(body),
	}
}

// NewClient returns an http.Client with the given timeout. Redirects are
// followed with the standard library policy.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Get issues a GET for rawURL with the given User-Agent and returns the
// response when the status is 2xx. On any other status the body is closed
// and a *StatusError is returned.
func Get(ctx context.Context, client *http.Client, rawURL, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	logging.FromContext(ctx).Debug("http get", "url", rawURL)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	if err := CheckStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}
