package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-vector-search/internal/errors"
	"github.com/gcbaptista/go-vector-search/model"
)

// AddDocument adds text to the corpus and rebuilds the index before
// returning. Blank text is ignored and reported as false.
func (e *Engine) AddDocument(text string) (model.Document, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	doc, ok := e.indexer.AddDocument(text)
	if !ok {
		e.logger.Debug("Ignoring blank document")
		return model.Document{}, false
	}
	took := time.Since(start)

	e.invalidateCache()
	e.observeRebuild(took)
	e.metrics.DocumentsAddedTotal.Inc()

	e.logger.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"documents":   e.indexer.Snapshot().Len(),
		"rebuild":     took,
	}).Info("Document added")
	return doc, true
}

// AddDocuments adds every non-blank text in order and rebuilds the index
// once. It returns the documents that were added.
func (e *Engine) AddDocuments(texts []string) []model.Document {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	added := e.indexer.AddDocuments(texts)
	if len(added) == 0 {
		return added
	}
	took := time.Since(start)

	e.invalidateCache()
	e.observeRebuild(took)
	e.metrics.DocumentsAddedTotal.Add(float64(len(added)))

	e.logger.WithFields(logrus.Fields{
		"added":     len(added),
		"skipped":   len(texts) - len(added),
		"documents": e.indexer.Snapshot().Len(),
		"rebuild":   took,
	}).Info("Documents added")
	return added
}

// RemoveDocument deletes the document with id and rebuilds the index. It
// reports whether the document existed.
func (e *Engine) RemoveDocument(id int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	removed := e.indexer.RemoveDocument(id)
	took := time.Since(start)

	e.invalidateCache()
	e.observeRebuild(took)

	fields := logrus.Fields{"document_id": id, "rebuild": took}
	if !removed {
		e.logger.WithFields(fields).Debug("Document to remove not found")
		return false
	}
	e.metrics.DocumentsRemoved.Inc()
	e.logger.WithFields(fields).Info("Document removed")
	return true
}

// ListDocuments returns the corpus in insertion order.
func (e *Engine) ListDocuments() []model.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.indexer.Documents()
}

// GetDocument returns the document with id, or a DocumentNotFoundError.
func (e *Engine) GetDocument(id int) (model.Document, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	doc, ok := e.indexer.Document(id)
	if !ok {
		return model.Document{}, errors.NewDocumentNotFoundError(id)
	}
	return doc, nil
}

// Stats describes the current index snapshot.
func (e *Engine) Stats() model.IndexStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.indexer.Stats()
}

// Analytics summarizes tracked searches.
func (e *Engine) Analytics() model.AnalyticsSummary {
	return e.analytics.Summary()
}
