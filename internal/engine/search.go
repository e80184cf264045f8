package engine

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-vector-search/internal/metrics"
	"github.com/gcbaptista/go-vector-search/model"
	"github.com/gcbaptista/go-vector-search/services"
)

// Search ranks the corpus against query. Results come from the snapshot
// current at the time of the call, or from the query cache when an entry
// for that same snapshot exists.
func (e *Engine) Search(query services.SearchQuery) services.SearchResult {
	start := time.Now()
	query.Limit = e.effectiveLimit(query.Limit)

	if model.IsBlank(query.QueryString) {
		e.metrics.SearchQueriesTotal.WithLabelValues(metrics.ResultBlank).Inc()
		return services.SearchResult{
			Hits:    []services.HitResult{},
			Query:   query.QueryString,
			QueryId: uuid.New().String(),
		}
	}

	e.mu.RLock()
	result, cacheHit := e.searchLocked(query)
	e.mu.RUnlock()

	status := cacheMiss
	switch {
	case cacheHit:
		status = cacheHitStatus
	case e.cache == nil:
		status = cacheBypass
	}
	e.observeSearch(query.QueryString, result, status, time.Since(start))
	return result
}

// searchLocked runs a search with the read lock held.
func (e *Engine) searchLocked(query services.SearchQuery) (services.SearchResult, bool) {
	snapshot := e.indexer.Snapshot()

	var key cacheKey
	if e.cache != nil {
		key = cacheKey{
			generation: snapshot.Generation(),
			limit:      query.Limit,
			query:      strings.Join(e.tokenizer.Normalize(query.QueryString), " "),
		}
		if cached, ok := e.cache.Get(key); ok {
			cached.Hits = slices.Clone(cached.Hits)
			cached.Query = query.QueryString
			cached.QueryId = uuid.New().String()
			cached.Took = 0
			cached.CacheHit = true
			return cached, true
		}
	}

	result := e.searcher.Search(snapshot, query)
	if e.cache != nil {
		stored := result
		stored.Hits = slices.Clone(result.Hits)
		e.cache.Add(key, stored)
	}
	return result, false
}

// MultiSearch runs several queries against one snapshot.
func (e *Engine) MultiSearch(ctx context.Context, query services.MultiSearchQuery) (*services.MultiSearchResult, error) {
	query.Limit = e.effectiveLimit(query.Limit)
	queries := make([]services.NamedSearchQuery, len(query.Queries))
	for i, nq := range query.Queries {
		if nq.Limit > 0 {
			nq.Limit = e.effectiveLimit(nq.Limit)
		}
		queries[i] = nq
	}
	query.Queries = queries

	e.mu.RLock()
	result, err := e.searcher.MultiSearch(ctx, e.indexer.Snapshot(), query)
	e.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	// Each named query counts as one search in metrics and analytics.
	for _, nq := range query.Queries {
		named, ok := result.Results[nq.Name]
		if !ok {
			continue
		}
		if model.IsBlank(nq.Query) {
			e.metrics.SearchQueriesTotal.WithLabelValues(metrics.ResultBlank).Inc()
			continue
		}
		e.observeSearch(nq.Query, named, cacheBypass, time.Duration(named.Took)*time.Millisecond)
	}
	return result, nil
}

// effectiveLimit applies the configured default and maximum to a requested
// limit. 0 means no limit.
func (e *Engine) effectiveLimit(limit int) int {
	if limit <= 0 {
		limit = e.searchCfg.DefaultLimit
	}
	if limit > 0 && e.searchCfg.MaxLimit > 0 && limit > e.searchCfg.MaxLimit {
		limit = e.searchCfg.MaxLimit
	}
	return limit
}

// Cache status labels for the search latency histogram. Multi-search and
// a disabled cache report bypass.
const (
	cacheHitStatus = "hit"
	cacheMiss      = "miss"
	cacheBypass    = "bypass"
)

func (e *Engine) observeSearch(queryString string, result services.SearchResult, cacheStatus string, took time.Duration) {
	resultType := metrics.ResultHit
	if result.Total == 0 {
		resultType = metrics.ResultZeroResult
	}
	cacheHit := cacheStatus == cacheHitStatus
	switch cacheStatus {
	case cacheHitStatus:
		e.metrics.CacheHitsTotal.Inc()
	case cacheMiss:
		e.metrics.CacheMissesTotal.Inc()
	}

	e.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	e.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(took.Seconds())
	e.metrics.SearchResultsCount.Observe(float64(result.Total))

	e.analytics.TrackSearchEvent(model.SearchEvent{
		Query:        queryString,
		ResponseTime: took,
		ResultCount:  result.Total,
		CacheHit:     cacheHit,
	})

	e.logger.WithFields(logrus.Fields{
		"query":     queryString,
		"query_id":  result.QueryId,
		"results":   result.Total,
		"cache_hit": cacheHit,
		"took":      took,
	}).Debug("Search completed")
}
