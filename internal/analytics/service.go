package analytics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gcbaptista/go-vector-search/model"
)

const (
	defaultMaxEvents   = 10000 // Keep last 10k events for performance
	popularSearchLimit = 5
)

// Service records search events in memory and summarizes them.
type Service struct {
	mutex     sync.RWMutex
	events    []model.SearchEvent
	maxEvents int
	now       func() time.Time
}

// NewService creates an analytics service keeping at most maxEvents events.
// A non-positive maxEvents uses the default of 10000.
func NewService(maxEvents int) *Service {
	if maxEvents <= 0 {
		maxEvents = defaultMaxEvents
	}
	return &Service{
		events:    make([]model.SearchEvent, 0),
		maxEvents: maxEvents,
		now:       time.Now,
	}
}

// TrackSearchEvent records a new search event. A zero Timestamp is set to
// the current time.
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > s.maxEvents {
		s.events = s.events[len(s.events)-s.maxEvents:]
	}
}

// Len returns the number of retained events.
func (s *Service) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// Summary aggregates every retained event.
func (s *Service) Summary() model.AnalyticsSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := model.AnalyticsSummary{
		TotalSearches:            len(s.events),
		Searches24h:              len(s.filterEventsByTime(s.events, s.now().Add(-24*time.Hour))),
		AvgResponseTimeUs:        s.calculateAvgResponseTime(s.events),
		ResponseTimeDistribution: s.getResponseTimeDistribution(s.events),
		PopularSearches:          s.getPopularSearches(s.events),
	}
	for _, event := range s.events {
		if event.ResultCount == 0 {
			summary.ZeroResultSearches++
		}
		if event.CacheHit {
			summary.CacheHits++
		}
	}
	return summary
}

// filterEventsByTime returns events after the given time
func (s *Service) filterEventsByTime(events []model.SearchEvent, after time.Time) []model.SearchEvent {
	var filtered []model.SearchEvent
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

func (s *Service) calculateAvgResponseTime(events []model.SearchEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Microseconds()
}

// getPopularSearches returns the most frequent queries. Queries are compared
// case-insensitively after trimming; ties are ordered alphabetically.
func (s *Service) getPopularSearches(events []model.SearchEvent) []model.PopularSearch {
	queryCounts := make(map[string]int)

	for _, event := range events {
		query := strings.ToLower(strings.TrimSpace(event.Query))
		if query != "" {
			queryCounts[query]++
		}
	}

	type queryCount struct {
		query string
		count int
	}

	queries := make([]queryCount, 0, len(queryCounts))
	for query, count := range queryCounts {
		queries = append(queries, queryCount{query: query, count: count})
	}

	// Sort by count descending
	sort.Slice(queries, func(i, j int) bool {
		if queries[i].count != queries[j].count {
			return queries[i].count > queries[j].count
		}
		return queries[i].query < queries[j].query
	})

	popular := make([]model.PopularSearch, 0, popularSearchLimit)
	for i, qc := range queries {
		if i >= popularSearchLimit {
			break
		}
		popular = append(popular, model.PopularSearch{
			Query:       qc.query,
			SearchCount: qc.count,
		})
	}

	return popular
}

func (s *Service) getResponseTimeDistribution(events []model.SearchEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)

	if total == 0 {
		return dist
	}

	for _, event := range events {
		switch {
		case event.ResponseTime < time.Millisecond:
			dist.BucketUnder1ms++
		case event.ResponseTime < 10*time.Millisecond:
			dist.Bucket1To10ms++
		case event.ResponseTime < 100*time.Millisecond:
			dist.Bucket10To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}

	// Calculate percentages
	dist.PercentageUnder1ms = float64(dist.BucketUnder1ms) / float64(total) * 100
	dist.Percentage1To10 = float64(dist.Bucket1To10ms) / float64(total) * 100
	dist.Percentage10To100 = float64(dist.Bucket10To100ms) / float64(total) * 100
	dist.Percentage100Plus = float64(dist.Bucket100msPlus) / float64(total) * 100

	return dist
}
