// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collsize totals the stored byte size of every item in a
// repository collection using the repository's search and collections APIs.
package collsize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/utilities/internal/httputil"
	"github.com/pdiddy/utilities/internal/logging"
	"github.com/pdiddy/utilities/pkg/types"
)

// Fields requested from the search API for each item.
var searchFields = []string{"pid", "object_size_lsi", "fed_object_size_lsi"}

// DefaultRows is the search page size. The API caps rows at 500.
const DefaultRows = 500

// ErrMissingPID is returned when no collection PID is given.
var ErrMissingPID = errors.New("collection PID is required (e.g. bdr:bwehb8b8)")

// Result summarises a collection size calculation.
type Result struct {
	PID        string `json:"pid" yaml:"pid"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	NumFound   int    `json:"num_found" yaml:"num_found"`
	Counted    int    `json:"counted" yaml:"counted"`
	Missing    int    `json:"missing" yaml:"missing"`
	TotalBytes int64  `json:"total_bytes" yaml:"total_bytes"`
}

// Client queries the repository APIs.
type Client struct {
	HTTP           *http.Client
	SearchURL      string
	CollectionsURL string
	UserAgent      string
	Rows           int
	MaxRetries     int
}

// NewClient builds a Client from cfg, filling unset fields with defaults.
func NewClient(cfg types.CollectionConfig) *Client {
	def := types.DefaultConfig().Collection
	c := &Client{
		HTTP:           httputil.NewClient(cfg.Timeout),
		SearchURL:      cfg.SearchURL,
		CollectionsURL: cfg.CollectionsURL,
		UserAgent:      cfg.UserAgent,
		Rows:           cfg.Rows,
		MaxRetries:     cfg.MaxRetries,
	}
	if c.SearchURL == "" {
		c.SearchURL = def.SearchURL
	}
	if c.CollectionsURL == "" {
		c.CollectionsURL = def.CollectionsURL
	}
	if c.Rows <= 0 {
		c.Rows = DefaultRows
	}
	return c
}

// Run computes the size and looks up the title concurrently.
func (c *Client) Run(ctx context.Context, pid string) (Result, error) {
	pid = strings.TrimSpace(pid)
	if pid == "" {
		return Result{}, ErrMissingPID
	}

	var (
		res   Result
		title string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := c.Calculate(gctx, pid)
		res = r
		return err
	})
	g.Go(func() error {
		t, err := c.FetchTitle(gctx, pid)
		title = t
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	res.Title = title
	return res, nil
}

// Calculate pages through every item in the collection and sums its size.
// An item's object_size_lsi is used when positive, else fed_object_size_lsi;
// items with neither are counted as missing.
func (c *Client) Calculate(ctx context.Context, pid string) (Result, error) {
	log := logging.FromContext(ctx)
	rows := c.Rows
	if rows <= 0 {
		rows = DefaultRows
	}

	res := Result{PID: pid}
	first, err := c.fetchPage(ctx, pid, 0, rows)
	if err != nil {
		return Result{}, err
	}
	res.NumFound = first.Response.NumFound
	log.Info("collection search", "pid", pid, "num_found", res.NumFound, "rows", rows)

	page, start := first, 0
	for {
		log.Info("processing page", "page", start/rows+1, "start", start, "docs", len(page.Response.Docs))
		for _, d := range page.Response.Docs {
			size, ok := d.size()
			if !ok {
				res.Missing++
				log.Debug("item missing size", "pid", d.PID, "missing", res.Missing)
				continue
			}
			res.TotalBytes += size
			res.Counted++
		}

		start += rows
		if start >= res.NumFound {
			break
		}
		page, err = c.fetchPage(ctx, pid, start, rows)
		if err != nil {
			return Result{}, err
		}
		if len(page.Response.Docs) == 0 {
			log.Warn("empty page before reaching num_found, stopping", "start", start, "num_found", res.NumFound)
			break
		}
	}
	return res, nil
}

// FetchTitle returns the collection's name, falling back to its primary
// title. A 403 means the collection is not public and yields "" without error.
func (c *Client) FetchTitle(ctx context.Context, pid string) (string, error) {
	u := strings.TrimSuffix(c.CollectionsURL, "/") + "/" + url.PathEscape(pid) + "/"

	resp, err := c.get(ctx, u)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		logging.FromContext(ctx).Debug("collection title not public", "pid", pid)
		return "", nil
	}
	if err := httputil.CheckStatus(resp); err != nil {
		return "", fmt.Errorf("fetching collection %s: %w", pid, err)
	}

	var cr collectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("parsing collection response: %w", err)
	}
	if cr.Name != "" {
		return cr.Name, nil
	}
	return cr.PrimaryTitle, nil
}

func (c *Client) fetchPage(ctx context.Context, pid string, start, rows int) (*searchResponse, error) {
	params := url.Values{
		"q":     {`rel_is_member_of_collection_ssim:"` + pid + `"`},
		"rows":  {strconv.Itoa(rows)},
		"start": {strconv.Itoa(start)},
		"fl":    {strings.Join(searchFields, ",")},
	}
	resp, err := c.get(ctx, c.SearchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("searching collection %s at start %d: %w", pid, start, err)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return &sr, nil
}

// get issues a JSON GET, retrying on 429.
func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	return resp, nil
}

// Repository API JSON structures.
type searchResponse struct {
	Response struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

type searchDoc struct {
	PID        string `json:"pid"`
	ObjectSize *int64 `json:"object_size_lsi"`
	FedSize    *int64 `json:"fed_object_size_lsi"`
}

func (d searchDoc) size() (int64, bool) {
	if d.ObjectSize != nil && *d.ObjectSize > 0 {
		return *d.ObjectSize, true
	}
	if d.FedSize != nil {
		return *d.FedSize, true
	}
	return 0, false
}

type collectionResponse struct {
	Name         string `json:"name"`
	PrimaryTitle string `json:"primary_title"`
}
