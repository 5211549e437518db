// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed queries the arXiv export API and parses its Atom response
// into normalized Paper records. See docs/ARCHITECTURE.md § Feed.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// FetchError reports a failed feed request or an unusable feed response.
// It is fatal to the whole query; no partial paper list is synthesized.
type FetchError struct {
	Query string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching feed for %q: %v", e.Query, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client retrieves papers from the literature feed.
type Client struct {
	HTTP *http.Client
	Cfg  types.FeedConfig
}

// NewClient returns a feed client with the config's timeout applied.
func NewClient(cfg types.FeedConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// Fetch queries the feed with a full-text filter and returns at most
// maxResults papers, newest submissions first. The feed's ordering is
// authoritative; no local re-sorting is performed.
//
// Entries missing an identifier or link are skipped without failing the
// fetch. Transport failures, non-2xx statuses, and undecodable responses
// return a *FetchError.
func (c *Client) Fetch(ctx context.Context, query string, maxResults int) ([]types.Paper, error) {
	q := buildQuery(query)
	if q == "" {
		return nil, &FetchError{Query: query, Err: fmt.Errorf("empty query")}
	}
	if maxResults <= 0 {
		maxResults = c.Cfg.MaxResults
	}

	url := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		apiBase, q, maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Query: query, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Cfg.MaxRetries)
	if err != nil {
		return nil, &FetchError{Query: query, Err: fmt.Errorf("feed request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Query: query, Err: fmt.Errorf("feed returned HTTP %d", resp.StatusCode)}
	}

	var f atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, &FetchError{Query: query, Err: fmt.Errorf("parsing feed response: %w", err)}
	}

	papers := make([]types.Paper, 0, len(f.Entries))
	for _, entry := range f.Entries {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			continue
		}

		p := types.Paper{
			ID:        id,
			Title:     strings.TrimSpace(entry.Title),
			Abstract:  strings.TrimSpace(entry.Summary),
			Published: strings.TrimSpace(entry.Published),
			Link:      id,
		}

		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}

		papers = append(papers, p)
	}
	return papers, nil
}

// buildQuery constructs the search_query parameter from free text.
func buildQuery(freeText string) string {
	terms := strings.Fields(freeText)
	if len(terms) == 0 {
		return ""
	}
	return "all:" + strings.Join(terms, "+")
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}
