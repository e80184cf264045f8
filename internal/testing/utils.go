// Package testing provides utilities and helpers for testing the search engine.
package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-vector-search/config"
	"github.com/gcbaptista/go-vector-search/internal/engine"
	"github.com/gcbaptista/go-vector-search/services"
)

// TestConfig returns the default configuration with the sample corpus
// seeded and logging silenced. Modifiers run in order.
func TestConfig(modifiers ...func(*config.Config)) *config.Config {
	cfg := config.Default()
	cfg.Corpus.SeedSample = true
	cfg.Logging.Level = "error"
	for _, modify := range modifiers {
		modify(cfg)
	}
	return cfg
}

// CreateTestEngine creates an engine seeded with the five sample documents.
func CreateTestEngine(t *testing.T, modifiers ...func(*config.Config)) *engine.Engine {
	t.Helper()
	eng, err := engine.NewEngine(TestConfig(modifiers...))
	require.NoError(t, err, "Failed to create test engine")
	t.Cleanup(eng.Close)
	return eng
}

// CreateEmptyTestEngine creates an engine with no documents.
func CreateEmptyTestEngine(t *testing.T, modifiers ...func(*config.Config)) *engine.Engine {
	t.Helper()
	modifiers = append([]func(*config.Config){func(cfg *config.Config) {
		cfg.Corpus.SeedSample = false
		cfg.Corpus.Documents = nil
	}}, modifiers...)
	return CreateTestEngine(t, modifiers...)
}

// HitIDs returns the document ids of the hits in rank order.
func HitIDs(result services.SearchResult) []int {
	ids := make([]int, len(result.Hits))
	for i, hit := range result.Hits {
		ids[i] = hit.DocumentID
	}
	return ids
}

// AssertRanked checks the result holds only positive scores in
// non-increasing order with ties broken by ascending id.
func AssertRanked(t *testing.T, result services.SearchResult) {
	t.Helper()
	for i, hit := range result.Hits {
		assert.Greater(t, hit.Score, 0.0, "hit %d must have a positive score", i)
		if i == 0 {
			continue
		}
		prev := result.Hits[i-1]
		assert.GreaterOrEqual(t, prev.Score, hit.Score, "hits must be sorted by score")
		if prev.Score == hit.Score {
			assert.Less(t, prev.DocumentID, hit.DocumentID, "ties must be ordered by id")
		}
	}
}

// SearchTestCase represents a test case for search operations
type SearchTestCase struct {
	Name          string
	Query         services.SearchQuery
	ExpectedCount int
	ExpectedFirst int // Expected first result document ID; 0 skips the check
	ValidateFunc  func(t *testing.T, results *services.SearchResult)
}

// RunSearchTests runs a suite of search tests against a searcher
func RunSearchTests(t *testing.T, searcher services.Searcher, tests []SearchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			results := searcher.Search(tt.Query)

			assert.Equal(t, tt.ExpectedCount, results.Total, "Result count should match")
			AssertRanked(t, results)

			if tt.ExpectedFirst != 0 && assert.NotEmpty(t, results.Hits) {
				assert.Equal(t, tt.ExpectedFirst, results.Hits[0].DocumentID, "First result should match expected")
			}

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, &results)
			}
		})
	}
}
