package engine_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-vector-search/config"
	"github.com/gcbaptista/go-vector-search/internal/engine"
	"github.com/gcbaptista/go-vector-search/internal/errors"
	"github.com/gcbaptista/go-vector-search/internal/metrics"
	testutils "github.com/gcbaptista/go-vector-search/internal/testing"
	"github.com/gcbaptista/go-vector-search/services"
)

func TestNewEngine_SeedsSampleCorpus(t *testing.T) {
	eng := testutils.CreateTestEngine(t)

	docs := eng.ListDocuments()
	require.Len(t, docs, len(config.SampleDocuments))
	for i, doc := range docs {
		assert.Equal(t, i+1, doc.ID)
		assert.Equal(t, config.SampleDocuments[i], doc.Text)
	}

	stats := eng.Stats()
	assert.Equal(t, 5, stats.DocumentCount)
	assert.Equal(t, 6, stats.NextID)
	assert.Greater(t, stats.VocabularySize, 0)
}

func TestNewEngine_ExtraSeedDocuments(t *testing.T) {
	eng := testutils.CreateEmptyTestEngine(t, func(cfg *config.Config) {
		cfg.Corpus.Documents = []string{"dokumen pertama", "  ", "dokumen kedua"}
	})
	assert.Len(t, eng.ListDocuments(), 2)
}

func TestNewEngine_InvalidTokenizer(t *testing.T) {
	cfg := testutils.TestConfig(func(cfg *config.Config) {
		cfg.Tokenizer.Language = "klingon"
	})
	_, err := engine.NewEngine(cfg)
	assert.Error(t, err)
}

func TestEngine_ExampleEndToEnd(t *testing.T) {
	eng := testutils.CreateTestEngine(t)

	testutils.RunSearchTests(t, eng, []testutils.SearchTestCase{
		{
			Name:          "cosine similarity vektor",
			Query:         services.SearchQuery{QueryString: "cosine similarity vektor"},
			ExpectedCount: 2,
			ExpectedFirst: 2,
			ValidateFunc: func(t *testing.T, results *services.SearchResult) {
				assert.Equal(t, []int{2, 5}, testutils.HitIDs(*results))
				assert.Contains(t, results.Hits[0].Text, "Cosine similarity mengukur kesamaan antara dua vektor")
			},
		},
		{
			Name:          "no shared terms",
			Query:         services.SearchQuery{QueryString: "kucing anjing"},
			ExpectedCount: 0,
		},
		{
			Name:          "blank query",
			Query:         services.SearchQuery{QueryString: "   "},
			ExpectedCount: 0,
		},
		{
			Name:          "stemmed query",
			Query:         services.SearchQuery{QueryString: "pembobotan"},
			ExpectedCount: 1,
			ExpectedFirst: 4,
		},
		{
			Name:          "root of an affixed corpus word",
			Query:         services.SearchQuery{QueryString: "representasi"},
			ExpectedCount: 1,
			ExpectedFirst: 5,
		},
	})
}

func TestEngine_AddDocument(t *testing.T) {
	eng := testutils.CreateTestEngine(t)

	doc, ok := eng.AddDocument("Algoritma ranking menggunakan pembobotan kata")
	require.True(t, ok)
	assert.Equal(t, 6, doc.ID)

	got, err := eng.GetDocument(6)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, ok = eng.AddDocument("   ")
	assert.False(t, ok)
	assert.Len(t, eng.ListDocuments(), 6)
}

func TestEngine_RebuildConsistency(t *testing.T) {
	eng := testutils.CreateTestEngine(t)
	text := "Stemming bahasa Indonesia memotong imbuhan kata"

	doc, ok := eng.AddDocument(text)
	require.True(t, ok)

	result := eng.Search(services.SearchQuery{QueryString: text})
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, doc.ID, result.Hits[0].DocumentID)
	assert.InDelta(t, 1.0, result.Hits[0].Score, 1e-9)
	for _, hit := range result.Hits[1:] {
		assert.Less(t, hit.Score, result.Hits[0].Score)
	}
}

func TestEngine_IDsNeverReused(t *testing.T) {
	eng := testutils.CreateEmptyTestEngine(t)

	for _, text := range []string{"satu", "dua", "tiga"} {
		_, ok := eng.AddDocument(text)
		require.True(t, ok)
	}
	require.True(t, eng.RemoveDocument(3))

	doc, ok := eng.AddDocument("empat")
	require.True(t, ok)
	assert.Equal(t, 4, doc.ID)
}

func TestEngine_RemoveDocument(t *testing.T) {
	eng := testutils.CreateTestEngine(t)

	assert.True(t, eng.RemoveDocument(2))
	assert.False(t, eng.RemoveDocument(2), "removing twice is a no-op")
	assert.False(t, eng.RemoveDocument(42))

	result := eng.Search(services.SearchQuery{QueryString: "cosine similarity vektor"})
	assert.Equal(t, []int{5}, testutils.HitIDs(result))

	_, err := eng.GetDocument(2)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrDocumentNotFound))

	var notFound *errors.DocumentNotFoundError
	require.True(t, stderrors.As(err, &notFound))
	assert.Equal(t, 2, notFound.DocumentID)
}

func TestEngine_RemoveLastDocument(t *testing.T) {
	eng := testutils.CreateEmptyTestEngine(t)
	doc, _ := eng.AddDocument("satu-satunya dokumen")
	require.True(t, eng.RemoveDocument(doc.ID))

	assert.Empty(t, eng.ListDocuments())
	assert.Empty(t, eng.Search(services.SearchQuery{QueryString: "dokumen"}).Hits)
}

func TestEngine_CacheNeverStale(t *testing.T) {
	eng := testutils.CreateTestEngine(t)
	query := services.SearchQuery{QueryString: "vektor"}

	first := eng.Search(query)
	assert.False(t, first.CacheHit)
	second := eng.Search(query)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Hits, second.Hits)
	assert.NotEqual(t, first.QueryId, second.QueryId)

	// Equivalent queries share an entry.
	third := eng.Search(services.SearchQuery{QueryString: "VEKTOR!"})
	assert.True(t, third.CacheHit)

	doc, ok := eng.AddDocument("vektor vektor vektor")
	require.True(t, ok)

	after := eng.Search(query)
	assert.False(t, after.CacheHit, "a write must invalidate cached results")
	assert.Contains(t, testutils.HitIDs(after), doc.ID)

	require.True(t, eng.RemoveDocument(doc.ID))
	afterRemove := eng.Search(query)
	assert.False(t, afterRemove.CacheHit)
	assert.NotContains(t, testutils.HitIDs(afterRemove), doc.ID)
	assert.Equal(t, first.Hits, afterRemove.Hits)
}

func TestEngine_CacheDisabled(t *testing.T) {
	eng := testutils.CreateTestEngine(t, func(cfg *config.Config) {
		cfg.Search.CacheSize = 0
	})
	query := services.SearchQuery{QueryString: "vektor"}
	eng.Search(query)
	assert.False(t, eng.Search(query).CacheHit)
}

func TestEngine_Limits(t *testing.T) {
	eng := testutils.CreateTestEngine(t, func(cfg *config.Config) {
		cfg.Search.DefaultLimit = 2
		cfg.Search.MaxLimit = 3
	})
	query := "dokumen informasi retrieval vektor"

	assert.Len(t, eng.Search(services.SearchQuery{QueryString: query}).Hits, 2, "default limit")
	assert.Len(t, eng.Search(services.SearchQuery{QueryString: query, Limit: 1}).Hits, 1)
	assert.Len(t, eng.Search(services.SearchQuery{QueryString: query, Limit: 50}).Hits, 3, "max limit")
}

func TestEngine_MultiSearch(t *testing.T) {
	eng := testutils.CreateTestEngine(t)

	result, err := eng.MultiSearch(context.Background(), services.MultiSearchQuery{
		Queries: []services.NamedSearchQuery{
			{Name: "vektor", Query: "cosine similarity vektor"},
			{Name: "tfidf", Query: "TF-IDF"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, testutils.HitIDs(result.Results["vektor"]))
	assert.Equal(t, []int{4}, testutils.HitIDs(result.Results["tfidf"]))
}

func TestEngine_MetricsAndAnalytics(t *testing.T) {
	m := metrics.New()
	eng, err := engine.NewEngine(testutils.TestConfig(), engine.WithMetrics(m))
	require.NoError(t, err)
	assert.Same(t, m, eng.Metrics())

	eng.Search(services.SearchQuery{QueryString: "vektor"})
	eng.Search(services.SearchQuery{QueryString: "vektor"})
	eng.Search(services.SearchQuery{QueryString: "kucing"})
	eng.AddDocument("dokumen baru")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultZeroResult)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Documents))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.DocumentsAddedTotal))

	summary := eng.Analytics()
	assert.Equal(t, 3, summary.TotalSearches)
	assert.Equal(t, 1, summary.ZeroResultSearches)
	assert.Equal(t, 1, summary.CacheHits)
	require.NotEmpty(t, summary.PopularSearches)
	assert.Equal(t, "vektor", summary.PopularSearches[0].Query)
}

func TestEngine_MultiSearchRecordsEachQuery(t *testing.T) {
	m := metrics.New()
	eng, err := engine.NewEngine(testutils.TestConfig(), engine.WithMetrics(m))
	require.NoError(t, err)
	t.Cleanup(eng.Close)

	_, err = eng.MultiSearch(context.Background(), services.MultiSearchQuery{
		Queries: []services.NamedSearchQuery{
			{Name: "hit", Query: "vektor"},
			{Name: "miss", Query: "kucing"},
			{Name: "blank", Query: "  "},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultZeroResult)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues(metrics.ResultBlank)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CacheMissesTotal))

	summary := eng.Analytics()
	assert.Equal(t, 2, summary.TotalSearches)
	assert.Equal(t, 1, summary.ZeroResultSearches)
}

// Readers must never see a document that is stored but not yet indexed,
// or an index entry for a document that is already gone.
func TestEngine_ConcurrentReadsAndWrites(t *testing.T) {
	eng := testutils.CreateTestEngine(t)

	const writers, readers, iterations = 4, 8, 24
	var wg sync.WaitGroup

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				doc, ok := eng.AddDocument(fmt.Sprintf("konkuren vektor dokumen %d %d", w, i))
				if !assert.True(t, ok) {
					return
				}
				if i%2 == 0 {
					eng.RemoveDocument(doc.ID)
				}
			}
		}(w)
	}

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations*2; i++ {
				result := eng.Search(services.SearchQuery{QueryString: "konkuren vektor"})
				testutils.AssertRanked(t, result)
				for _, hit := range result.Hits {
					assert.NotEmpty(t, hit.Text, "hit %d has no text", hit.DocumentID)
				}
				stats := eng.Stats()
				assert.GreaterOrEqual(t, stats.NextID, stats.DocumentCount+1)
				_ = eng.ListDocuments()
			}
		}()
	}

	wg.Wait()

	docs := eng.ListDocuments()
	assert.Len(t, docs, 5+writers*iterations/2)
	seen := make(map[int]bool, len(docs))
	for _, doc := range docs {
		assert.False(t, seen[doc.ID], "duplicate id %d", doc.ID)
		seen[doc.ID] = true
	}

	result := eng.Search(services.SearchQuery{QueryString: "konkuren"})
	assert.Equal(t, writers*iterations/2, result.Total)
}
