// Package store keeps the ordered corpus and assigns document ids.
package store

import (
	"slices"

	"github.com/gcbaptista/go-vector-search/model"
)

// DocumentStore holds documents in insertion order. It is not safe for
// concurrent use; the engine serializes access to it.
type DocumentStore struct {
	docs      []model.Document
	positions map[int]int // document id -> index in docs
	nextID    int         // high-water mark, never decreases
}

// NewDocumentStore creates an empty store. The first document gets id 1.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		positions: make(map[int]int),
		nextID:    1,
	}
}

// Add appends a document with a fresh id. Ids are never reused, even after
// the highest one is removed.
func (ds *DocumentStore) Add(text string) model.Document {
	id := ds.NextID()
	doc := model.Document{ID: id, Text: text}
	ds.positions[id] = len(ds.docs)
	ds.docs = append(ds.docs, doc)
	ds.nextID = id + 1
	return doc
}

// Remove deletes the document with id and reports whether it existed.
func (ds *DocumentStore) Remove(id int) bool {
	pos, ok := ds.positions[id]
	if !ok {
		return false
	}
	ds.docs = slices.Delete(ds.docs, pos, pos+1)
	delete(ds.positions, id)
	for i := pos; i < len(ds.docs); i++ {
		ds.positions[ds.docs[i].ID] = i
	}
	return true
}

// Get returns the document with id.
func (ds *DocumentStore) Get(id int) (model.Document, bool) {
	pos, ok := ds.positions[id]
	if !ok {
		return model.Document{}, false
	}
	return ds.docs[pos], true
}

// List returns a copy of the corpus in insertion order.
func (ds *DocumentStore) List() []model.Document {
	return slices.Clone(ds.docs)
}

// Len returns the number of documents.
func (ds *DocumentStore) Len() int {
	return len(ds.docs)
}

// NextID returns the id the next Add will assign:
// max(high-water mark, max existing id + 1).
func (ds *DocumentStore) NextID() int {
	next := ds.nextID
	for _, doc := range ds.docs {
		if doc.ID >= next {
			next = doc.ID + 1
		}
	}
	return next
}
