package model

import "time"

// SearchEvent represents a single search event for analytics tracking
type SearchEvent struct {
	Query        string        `json:"query"`
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	CacheHit     bool          `json:"cache_hit"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for popular search terms
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// ResponseTimeDistribution buckets search latencies
type ResponseTimeDistribution struct {
	BucketUnder1ms     int     `json:"bucket_under_1ms"`
	Bucket1To10ms      int     `json:"bucket_1_10ms"`
	Bucket10To100ms    int     `json:"bucket_10_100ms"`
	Bucket100msPlus    int     `json:"bucket_100ms_plus"`
	PercentageUnder1ms float64 `json:"percentage_under_1ms"`
	Percentage1To10    float64 `json:"percentage_1_10"`
	Percentage10To100  float64 `json:"percentage_10_100"`
	Percentage100Plus  float64 `json:"percentage_100_plus"`
}

// AnalyticsSummary aggregates the tracked search events.
type AnalyticsSummary struct {
	TotalSearches            int                      `json:"total_searches"`
	Searches24h              int                      `json:"searches_24h"`
	ZeroResultSearches       int                      `json:"zero_result_searches"`
	CacheHits                int                      `json:"cache_hits"`
	AvgResponseTimeUs        int64                    `json:"avg_response_time_us"`
	ResponseTimeDistribution ResponseTimeDistribution `json:"response_time_distribution"`
	PopularSearches          []PopularSearch          `json:"popular_searches"`
}

// IndexStats describes the current corpus snapshot.
type IndexStats struct {
	DocumentCount  int       `json:"document_count"`
	VocabularySize int       `json:"vocabulary_size"`
	TotalTokens    int       `json:"total_tokens"`
	Generation     uint64    `json:"generation"`
	NextID         int       `json:"next_id"`
	LastRebuild    time.Time `json:"last_rebuild"`
}
