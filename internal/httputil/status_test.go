// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Success(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, "ok")
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL, "utilities-test/1.0")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "utilities-test/1.0", gotUA)
}

func TestGet_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/export", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusTemporaryRedirect)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "landed")
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL+"/export", "")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "landed", string(body))
}

func TestGet_StatusErrorKeepsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "<html>Sorry, unable to open the file at this time.</html>")
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL+"/missing", "")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "404 Not Found", se.Status)
	assert.Equal(t, ts.URL+"/missing", se.URL)
	assert.Equal(t, "<html>Sorry, unable to open the file at this time.</html>", se.Body)
	assert.Contains(t, err.Error(), "HTTP 404 Not Found")
}

func TestGet_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := Get(context.Background(), http.DefaultClient, url, "")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "fetching "))

	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestCheckStatus_TruncatesBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", maxErrorBody*2))),
	}
	err := CheckStatus(resp)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Len(t, se.Body, maxErrorBody)
	assert.Equal(t, "502 Bad Gateway", se.Status)
}
