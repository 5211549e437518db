// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline coordinates the query-to-artifact flow: fetch papers,
// summarize and cite them, derive the mind-map graph, and assemble the
// response bundle. It is the only component aware of the overall shape.
// See docs/ARCHITECTURE.md § Pipeline.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-assistant/internal/cite"
	"github.com/pdiddy/research-assistant/internal/digest"
	"github.com/pdiddy/research-assistant/internal/mindmap"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Error is an operation-level failure. Msg is the generic message shown to
// the caller; the wrapped cause is kept for diagnostics only and never
// rendered to the end user.
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Fetcher retrieves papers for a query. *feed.Client implements it; tests
// substitute fixtures.
type Fetcher interface {
	Fetch(ctx context.Context, query string, maxResults int) ([]types.Paper, error)
}

// Summarizer produces per-paper digest outcomes positionally aligned with
// its input. *digest.Service implements it.
type Summarizer interface {
	SummarizeResults(ctx context.Context, papers []types.Paper) []digest.Result
}

// Orchestrator runs the pipeline for one query at a time. It holds no
// per-query state; every entity it creates is owned by the returned bundle.
type Orchestrator struct {
	fetcher    Fetcher
	summarizer Summarizer
	log        *slog.Logger
}

// New returns an Orchestrator. A nil logger falls back to slog.Default.
func New(fetcher Fetcher, summarizer Summarizer, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{fetcher: fetcher, summarizer: summarizer, log: log}
}

// Run turns a query into a bundle of papers, summaries, citations, and the
// mind-map graph, with all three slices positionally aligned.
//
// The fetch is the only hard external dependency: its failure aborts the
// run. Summarization and citation formatting then proceed concurrently
// over the paper slice; per-paper summarization failures degrade to empty
// digests while a citation failure aborts. All fatal errors come back as a
// *Error carrying a generic message and the internal cause.
func (o *Orchestrator) Run(ctx context.Context, query string, maxResults int) (*types.Bundle, error) {
	if query == "" {
		return nil, &Error{Msg: "query must not be empty"}
	}
	if maxResults <= 0 {
		return nil, &Error{Msg: "max_results must be a positive integer"}
	}

	papers, err := o.fetcher.Fetch(ctx, query, maxResults)
	if err != nil {
		return nil, &Error{Msg: "search failed", Err: err}
	}

	var (
		results   []digest.Result
		citations = make([]types.Citation, len(papers))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results = o.summarizer.SummarizeResults(gctx, papers)
		return nil
	})
	g.Go(func() error {
		for i, p := range papers {
			c, err := cite.Format(p)
			if err != nil {
				return fmt.Errorf("paper %d: %w", i, err)
			}
			citations[i] = c
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, &Error{Msg: "search failed", Err: err}
	}

	summaries := make([]types.Digest, len(results))
	for i, r := range results {
		summaries[i] = r.Digest
		if r.Err != nil {
			o.log.Warn("summarization degraded to empty digest",
				"query", query, "index", i, "paper", papers[i].ID, "error", r.Err)
		}
	}

	graph, err := mindmap.Build(papers, summaries)
	if err != nil {
		return nil, &Error{Msg: "search failed", Err: err}
	}

	return &types.Bundle{
		Papers:    papers,
		Summaries: summaries,
		Citations: citations,
		Graph:     graph,
	}, nil
}
