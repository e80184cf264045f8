package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-vector-search/index"
	"github.com/gcbaptista/go-vector-search/services"
)

// MultiSearch executes multiple named queries in parallel against the same
// snapshot.
func (s *Service) MultiSearch(ctx context.Context, snapshot *index.Snapshot, multiQuery services.MultiSearchQuery) (*services.MultiSearchResult, error) {
	startTime := time.Now()

	if len(multiQuery.Queries) == 0 {
		return nil, fmt.Errorf("at least one query is required")
	}

	seen := make(map[string]struct{}, len(multiQuery.Queries))
	for _, nq := range multiQuery.Queries {
		if nq.Name == "" {
			return nil, fmt.Errorf("each query must have a non-empty name")
		}
		if _, dup := seen[nq.Name]; dup {
			return nil, fmt.Errorf("duplicate query name '%s'", nq.Name)
		}
		seen[nq.Name] = struct{}{}
	}

	var (
		mu      sync.Mutex
		results = make(map[string]services.SearchResult, len(multiQuery.Queries))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, nq := range multiQuery.Queries {
		nq := nq // per-iteration copy; go.mod targets go 1.21 loop semantics
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("multi-search cancelled: %w", err)
			}

			limit := nq.Limit
			if limit == 0 {
				limit = multiQuery.Limit
			}
			result := s.Search(snapshot, services.SearchQuery{QueryString: nq.Query, Limit: limit})

			mu.Lock()
			results[nq.Name] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	processingTime := time.Since(startTime)

	return &services.MultiSearchResult{
		Results:          results,
		TotalQueries:     len(multiQuery.Queries),
		ProcessingTimeMs: float64(processingTime.Nanoseconds()) / 1e6,
	}, nil
}
