package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-vector-search/index"
	"github.com/gcbaptista/go-vector-search/internal/typoutil"
	"github.com/gcbaptista/go-vector-search/model"
	"github.com/gcbaptista/go-vector-search/services"
)

// Service ranks documents of a snapshot against free-text queries. It holds
// no corpus state and is safe for concurrent use.
type Service struct {
	analyzer        index.Analyzer
	suggestDistance int
}

// Option customizes a Service.
type Option func(*Service)

// WithSuggestDistance enables query suggestions for searches without hits:
// unknown terms are replaced by the closest indexed term at most d edits
// away. Zero disables suggestions.
func WithSuggestDistance(d int) Option {
	return func(s *Service) {
		s.suggestDistance = d
	}
}

// NewService creates a search Service that tokenizes queries with analyzer.
// Documents must have been indexed with the same analyzer.
func NewService(analyzer index.Analyzer, opts ...Option) (*Service, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}
	s := &Service{analyzer: analyzer}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search ranks the documents in snapshot against query.QueryString. A blank
// query returns no hits. Only documents with a score above zero are
// returned, best first; Total counts them before Limit is applied.
func (s *Service) Search(snapshot *index.Snapshot, query services.SearchQuery) services.SearchResult {
	startTime := time.Now()

	result := services.SearchResult{
		Hits:    []services.HitResult{},
		Query:   query.QueryString,
		QueryId: uuid.New().String(),
	}

	if model.IsBlank(query.QueryString) || snapshot == nil {
		result.Took = time.Since(startTime).Milliseconds()
		return result
	}

	// 1. Tokenize and weight the query against the current IDF table
	tokens := s.analyzer.Normalize(query.QueryString)
	queryVector := snapshot.VectorizeQuery(tokens)

	// 2. Only documents sharing a weighted term can score above zero
	ranked := Rank(queryVector, snapshot.Candidates(queryVector))
	result.Total = len(ranked)
	if result.Total == 0 {
		result.Suggestion = s.suggest(snapshot, tokens)
	}

	// 3. Apply limit
	if query.Limit > 0 && len(ranked) > query.Limit {
		ranked = ranked[:query.Limit]
	}

	// 4. Attach document text
	result.Hits = make([]services.HitResult, 0, len(ranked))
	for _, scored := range ranked {
		doc, _ := snapshot.Document(scored.DocumentID)
		result.Hits = append(result.Hits, services.HitResult{
			DocumentID: scored.DocumentID,
			Text:       doc.Text,
			Score:      scored.Score,
		})
	}

	result.Took = time.Since(startTime).Milliseconds()
	return result
}

// suggest replaces every token missing from the vocabulary by its closest
// indexed term. It returns "" when no token could be corrected.
func (s *Service) suggest(snapshot *index.Snapshot, tokens []string) string {
	if s.suggestDistance <= 0 || len(tokens) == 0 {
		return ""
	}

	corrected := make([]string, len(tokens))
	changed := false
	for i, token := range tokens {
		corrected[i] = token
		if _, known := snapshot.IDF(token); known {
			continue
		}
		if term, ok := typoutil.Closest(token, snapshot, s.suggestDistance); ok {
			corrected[i] = term
			changed = true
		}
	}
	if !changed {
		return ""
	}
	return strings.Join(corrected, " ")
}
