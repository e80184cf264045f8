package indexing

import (
	"fmt"

	"github.com/gcbaptista/go-vector-search/index"
	"github.com/gcbaptista/go-vector-search/model"
	"github.com/gcbaptista/go-vector-search/store"
)

// Service owns the corpus and the snapshot derived from it. Every mutation
// rebuilds the snapshot before returning, so Snapshot always reflects the
// current documents.
//
// Service is not safe for concurrent use; callers must serialize writes and
// exclude readers while a write runs.
type Service struct {
	documentStore *store.DocumentStore
	analyzer      index.Analyzer
	snapshot      *index.Snapshot
	generation    uint64
}

// NewService creates a Service over documentStore and builds the initial
// snapshot.
func NewService(documentStore *store.DocumentStore, analyzer index.Analyzer) (*Service, error) {
	if documentStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}
	s := &Service{
		documentStore: documentStore,
		analyzer:      analyzer,
	}
	s.Rebuild()
	return s, nil
}

// AddDocument appends text as a new document and rebuilds the index.
// Blank or whitespace-only text is ignored and reported as false.
func (s *Service) AddDocument(text string) (model.Document, bool) {
	if model.IsBlank(text) {
		return model.Document{}, false
	}
	doc := s.documentStore.Add(text)
	s.Rebuild()
	return doc, true
}

// AddDocuments appends every non-blank text and rebuilds once. It returns
// the documents that were created, in order.
func (s *Service) AddDocuments(texts []string) []model.Document {
	added := make([]model.Document, 0, len(texts))
	for _, text := range texts {
		if model.IsBlank(text) {
			continue
		}
		added = append(added, s.documentStore.Add(text))
	}
	if len(added) > 0 {
		s.Rebuild()
	}
	return added
}

// RemoveDocument deletes the document with id and rebuilds the index. It
// reports whether the document existed; removing an absent id changes
// nothing but still rebuilds.
func (s *Service) RemoveDocument(id int) bool {
	removed := s.documentStore.Remove(id)
	s.Rebuild()
	return removed
}

// Rebuild recomputes the snapshot from the current corpus.
func (s *Service) Rebuild() *index.Snapshot {
	s.generation++
	s.snapshot = index.Build(s.documentStore.List(), s.analyzer, s.generation)
	return s.snapshot
}

// Snapshot returns the current index snapshot.
func (s *Service) Snapshot() *index.Snapshot {
	return s.snapshot
}

// Documents returns the corpus in insertion order.
func (s *Service) Documents() []model.Document {
	return s.documentStore.List()
}

// Document returns the document with id.
func (s *Service) Document(id int) (model.Document, bool) {
	return s.documentStore.Get(id)
}

// NextID returns the id the next added document will receive.
func (s *Service) NextID() int {
	return s.documentStore.NextID()
}

// Stats describes the current snapshot and id counter.
func (s *Service) Stats() model.IndexStats {
	stats := s.snapshot.Stats()
	stats.NextID = s.documentStore.NextID()
	return stats
}
