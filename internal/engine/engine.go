// Package engine owns the corpus and its index behind a single
// reader/writer lock. Writes mutate the corpus and rebuild the index as one
// step; searches read a consistent snapshot.
package engine

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-vector-search/config"
	"github.com/gcbaptista/go-vector-search/internal/analytics"
	"github.com/gcbaptista/go-vector-search/internal/indexing"
	"github.com/gcbaptista/go-vector-search/internal/jobs"
	"github.com/gcbaptista/go-vector-search/internal/logging"
	"github.com/gcbaptista/go-vector-search/internal/metrics"
	"github.com/gcbaptista/go-vector-search/internal/search"
	"github.com/gcbaptista/go-vector-search/internal/tokenizer"
	"github.com/gcbaptista/go-vector-search/services"
	"github.com/gcbaptista/go-vector-search/store"
)

var _ services.SearchEngine = (*Engine)(nil)

// cacheKey identifies a cached result. The generation ties an entry to the
// snapshot it was computed from.
type cacheKey struct {
	generation uint64
	limit      int
	query      string // normalized tokens joined by a space
}

// Engine is the single owner of corpus and index state.
// It implements the services.SearchEngine interface.
type Engine struct {
	mu        sync.RWMutex
	indexer   *indexing.Service
	searcher  *search.Service
	tokenizer *tokenizer.Tokenizer

	cache     *lru.Cache[cacheKey, services.SearchResult] // nil when disabled
	searchCfg config.SearchConfig
	metrics   *metrics.Metrics
	analytics *analytics.Service
	logger    *logrus.Entry

	jobs      *jobs.Manager
	batchSize int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *logrus.Entry) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the metrics collectors. The default creates a private
// set.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithAnalytics sets the analytics service.
func WithAnalytics(a *analytics.Service) Option {
	return func(e *Engine) {
		if a != nil {
			e.analytics = a
		}
	}
}

// NewEngine builds an engine from cfg and loads the configured seed corpus.
func NewEngine(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	tok, err := tokenizer.NewFromConfig(cfg.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}

	indexer, err := indexing.NewService(store.NewDocumentStore(), tok)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexing service: %w", err)
	}

	searcher, err := search.NewService(tok, search.WithSuggestDistance(cfg.Search.SuggestDistance))
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	e := &Engine{
		indexer:   indexer,
		searcher:  searcher,
		tokenizer: tok,
		searchCfg: cfg.Search,
		logger:    logging.Discard(),
		batchSize: cfg.Jobs.BatchSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.New()
	}
	if e.analytics == nil {
		e.analytics = analytics.NewService(0)
	}
	if e.batchSize <= 0 {
		e.batchSize = 100
	}

	if cfg.Search.CacheSize > 0 {
		cache, err := lru.New[cacheKey, services.SearchResult](cfg.Search.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create query cache: %w", err)
		}
		e.cache = cache
	}

	var seed []string
	if cfg.Corpus.SeedSample {
		seed = append(seed, config.SampleDocuments...)
	}
	seed = append(seed, cfg.Corpus.Documents...)
	if len(seed) > 0 {
		start := time.Now()
		added := e.indexer.AddDocuments(seed)
		e.observeRebuild(time.Since(start))
		e.metrics.DocumentsAddedTotal.Add(float64(len(added)))
		e.logger.WithField("documents", len(added)).Info("Seed corpus indexed")
	} else {
		e.observeRebuild(0)
	}

	e.jobs = jobs.NewManager(cfg.Jobs.MaxWorkers,
		jobs.WithLogger(e.logger.WithField("subsystem", "jobs")),
		jobs.WithMetrics(e.metrics),
		jobs.WithRetention(cfg.Jobs.Retention),
	)
	e.jobs.Start()

	e.logger.WithFields(logrus.Fields{
		"language":         cfg.Tokenizer.Language,
		"remove_stopwords": cfg.Tokenizer.RemoveStopwords,
		"cache_size":       cfg.Search.CacheSize,
	}).Info("Engine ready")

	return e, nil
}

// Close stops background jobs. Running imports are cancelled between
// batches; documents already added stay in the corpus.
func (e *Engine) Close() {
	e.jobs.Stop()
}

// Metrics returns the engine's collectors.
func (e *Engine) Metrics() *metrics.Metrics {
	return e.metrics
}

// Tokenizer returns the tokenizer shared by indexing and search.
func (e *Engine) Tokenizer() *tokenizer.Tokenizer {
	return e.tokenizer
}

// observeRebuild updates index metrics after a rebuild. Callers hold the
// write lock, or own the engine exclusively during construction.
func (e *Engine) observeRebuild(took time.Duration) {
	stats := e.indexer.Snapshot().Stats()
	e.metrics.RebuildsTotal.Inc()
	e.metrics.RebuildDuration.Observe(took.Seconds())
	e.metrics.Documents.Set(float64(stats.DocumentCount))
	e.metrics.VocabularySize.Set(float64(stats.VocabularySize))
}

// invalidateCache drops every cached result. Callers hold the write lock.
func (e *Engine) invalidateCache() {
	if e.cache != nil {
		e.cache.Purge()
	}
}
