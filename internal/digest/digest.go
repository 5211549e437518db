// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest produces per-paper AI digests (bullet points plus an
// optional narrative). One failing paper never cancels its siblings: the
// failed slot degrades to an empty digest and the batch continues.
// See docs/ARCHITECTURE.md § Summarization.
package digest

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// SummarizationError reports a failed digest request for a single paper.
// It never surfaces past the service boundary; callers see it only through
// Result when they ask for per-paper outcomes.
type SummarizationError struct {
	PaperID string
	Err     error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarizing %s: %v", e.PaperID, e.Err)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// Backend requests a digest for one paper from a generative service.
// Implementations must be safe for concurrent use.
type Backend interface {
	Summarize(ctx context.Context, paper types.Paper) (types.Digest, error)
}

// Result is the per-paper outcome of a batch run. Err is nil on success and
// a *SummarizationError when the slot degraded to an empty digest, so the
// degrade path stays observable rather than silently swallowed.
type Result struct {
	Digest types.Digest
	Err    error
}

// Service runs bounded-concurrency digest batches over a Backend.
type Service struct {
	backend Backend
	cfg     types.SummaryConfig
}

// NewService returns a Service using the given backend.
func NewService(backend Backend, cfg types.SummaryConfig) *Service {
	return &Service{backend: backend, cfg: cfg}
}

// Summarize returns digests positionally aligned with papers. The output
// length always equals the input length; failed papers yield the zero
// Digest.
func (s *Service) Summarize(ctx context.Context, papers []types.Paper) []types.Digest {
	results := s.SummarizeResults(ctx, papers)
	digests := make([]types.Digest, len(results))
	for i, r := range results {
		digests[i] = r.Digest
	}
	return digests
}

// SummarizeResults is Summarize with per-paper outcomes exposed. Each paper
// is summarized in its own goroutine, bounded by cfg.Concurrency; results
// are scattered into index-addressed slots so completion order never leaks
// into output order.
func (s *Service) SummarizeResults(ctx context.Context, papers []types.Paper) []Result {
	results := make([]Result, len(papers))

	limit := s.cfg.Concurrency
	if limit <= 0 {
		limit = 4
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, p := range papers {
		i, p := i, p
		g.Go(func() error {
			d, err := s.summarizeOne(ctx, p)
			if err != nil {
				results[i] = Result{Err: &SummarizationError{PaperID: p.ID, Err: err}}
				return nil
			}
			results[i] = Result{Digest: d}
			return nil
		})
	}

	g.Wait()
	return results
}

// backoffBase controls the base duration for per-paper retry backoff.
// Tests override this to avoid real sleeps.
var backoffBase = time.Second

// summarizeOne calls the backend for a single paper, retrying with
// exponential backoff when cfg.MaxRetries is positive.
func (s *Service) summarizeOne(ctx context.Context, paper types.Paper) (types.Digest, error) {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return types.Digest{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		d, err := s.backend.Summarize(ctx, paper)
		if err == nil {
			return s.clamp(d), nil
		}
		lastErr = err
	}
	return types.Digest{}, lastErr
}

// clamp enforces the bullet cap on a backend reply.
func (s *Service) clamp(d types.Digest) types.Digest {
	max := s.cfg.MaxBullets
	if max <= 0 {
		max = 8
	}
	if len(d.Bullets) > max {
		d.Bullets = d.Bullets[:max]
	}
	return d
}
