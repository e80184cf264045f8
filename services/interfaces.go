package services

import (
	"context"

	"github.com/gcbaptista/go-vector-search/model"
)

// HitResult is one ranked document in a search response.
type HitResult struct {
	DocumentID int     `json:"document_id"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"` // Cosine similarity in (0, 1]
}

type SearchResult struct {
	Hits     []HitResult `json:"hits"`
	Total    int         `json:"total"` // Matching documents before Limit is applied
	Query    string      `json:"query"`
	Took     int64       `json:"took"`     // milliseconds
	QueryId  string      `json:"query_id"` // unique UUID for this search query
	CacheHit bool        `json:"cache_hit"`

	// Suggestion is a corrected query, set only when nothing matched and
	// some query term is a near miss of an indexed term.
	Suggestion string `json:"suggestion,omitempty"`
}

type SearchQuery struct {
	QueryString string `json:"query"`
	Limit       int    `json:"limit,omitempty"` // 0 returns every match
}

// MultiSearchQuery runs several named queries against the same snapshot.
type MultiSearchQuery struct {
	Queries []NamedSearchQuery `json:"queries"`
	Limit   int                `json:"limit,omitempty"` // Applied to queries without their own limit
}

// NamedSearchQuery is a single query within a multi-search request.
type NamedSearchQuery struct {
	Name  string `json:"name"`
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// MultiSearchResult holds the result of every named query.
type MultiSearchResult struct {
	Results          map[string]SearchResult `json:"results"`
	TotalQueries     int                     `json:"total_queries"`
	ProcessingTimeMs float64                 `json:"processing_time_ms"`
}

// DocumentManager defines operations that change or read the corpus.
// Every mutation is reflected in search results once it returns.
type DocumentManager interface {
	AddDocument(text string) (model.Document, bool)
	AddDocuments(texts []string) []model.Document
	RemoveDocument(id int) bool
	ListDocuments() []model.Document
	GetDocument(id int) (model.Document, error)
}

// Searcher defines operations for querying the corpus.
type Searcher interface {
	Search(query SearchQuery) SearchResult
	MultiSearch(ctx context.Context, query MultiSearchQuery) (*MultiSearchResult, error)
}

// JobManager defines background operations and their status.
type JobManager interface {
	AddDocumentsAsync(texts []string) (string, error)
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
}

// SearchEngine is the full in-process API served over HTTP.
type SearchEngine interface {
	DocumentManager
	Searcher
	JobManager
	Stats() model.IndexStats
	Analytics() model.AnalyticsSummary
}
