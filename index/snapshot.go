// Package index holds the immutable vector-space view of a corpus: term
// frequencies, document frequencies, the IDF table, one TF-IDF vector per
// document and a posting list per term.
package index

import (
	"slices"
	"time"

	"github.com/gcbaptista/go-vector-search/model"
)

// Analyzer produces the canonical token sequence for a text.
type Analyzer interface {
	Normalize(text string) []string
}

// Snapshot is the index for one corpus state. It is never modified after
// Build returns, so any number of readers may share it.
type Snapshot struct {
	generation  uint64
	docs        []model.Document
	positions   map[int]int // document id -> position in docs and vectors
	df          map[string]int
	idf         IDFTable
	vectors     []DocumentVector
	postings    map[string]PostingList
	terms       []string // sorted vocabulary
	totalTokens int
	builtAt     time.Time
}

// Build tokenizes every document with analyzer and computes the TF-IDF
// vectors for the corpus. Documents keep the order they are given in.
func Build(docs []model.Document, analyzer Analyzer, generation uint64) *Snapshot {
	s := &Snapshot{
		generation: generation,
		docs:       slices.Clone(docs),
		positions:  make(map[int]int, len(docs)),
		df:         make(map[string]int),
		idf:        make(IDFTable),
		vectors:    make([]DocumentVector, len(docs)),
		postings:   make(map[string]PostingList),
		builtAt:    time.Now(),
	}

	frequencies := make([]map[string]int, len(docs))
	for i, doc := range s.docs {
		s.positions[doc.ID] = i
		tokens := analyzer.Normalize(doc.Text)
		s.totalTokens += len(tokens)

		tf := TermFrequencies(tokens)
		frequencies[i] = tf
		for term, count := range tf {
			s.df[term]++
			s.postings[term] = append(s.postings[term], PostingEntry{DocID: doc.ID, TermFrequency: count})
		}
	}

	n := len(s.docs)
	s.terms = make([]string, 0, len(s.df))
	for term, df := range s.df {
		s.idf[term] = InverseDocumentFrequency(n, df)
		s.terms = append(s.terms, term)
	}
	slices.Sort(s.terms)

	for i, doc := range s.docs {
		vector := make(TermVector, len(frequencies[i]))
		for term, count := range frequencies[i] {
			vector[term] = float64(count) * s.idf[term]
		}
		s.vectors[i] = DocumentVector{ID: doc.ID, Vector: vector}
	}

	for term, list := range s.postings {
		slices.SortFunc(list, func(a, b PostingEntry) int { return a.DocID - b.DocID })
		s.postings[term] = list
	}

	return s
}

// Generation returns the rebuild counter the snapshot was built with.
func (s *Snapshot) Generation() uint64 {
	return s.generation
}

// BuiltAt returns when the snapshot was built.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// Len returns the number of indexed documents.
func (s *Snapshot) Len() int {
	return len(s.docs)
}

// VectorizeQuery weights query tokens by their raw count times the corpus
// IDF. Terms the corpus has never seen get weight 0.
func (s *Snapshot) VectorizeQuery(tokens []string) TermVector {
	tf := TermFrequencies(tokens)
	vector := make(TermVector, len(tf))
	for term, count := range tf {
		vector[term] = float64(count) * s.idf[term]
	}
	return vector
}

// IDF returns the inverse document frequency of term and whether the term
// occurs in the corpus.
func (s *Snapshot) IDF(term string) (float64, bool) {
	idf, ok := s.idf[term]
	return idf, ok
}

// DocumentFrequency returns the number of documents containing term.
func (s *Snapshot) DocumentFrequency(term string) int {
	return s.df[term]
}

// Terms returns the vocabulary in sorted order.
func (s *Snapshot) Terms() []string {
	return slices.Clone(s.terms)
}

// Postings returns the documents containing term, ordered by id.
func (s *Snapshot) Postings(term string) PostingList {
	return slices.Clone(s.postings[term])
}

// Vector returns the TF-IDF vector of a document.
func (s *Snapshot) Vector(id int) (TermVector, bool) {
	pos, ok := s.positions[id]
	if !ok {
		return nil, false
	}
	return s.vectors[pos].Vector, true
}

// Document returns a document by id.
func (s *Snapshot) Document(id int) (model.Document, bool) {
	pos, ok := s.positions[id]
	if !ok {
		return model.Document{}, false
	}
	return s.docs[pos], true
}

// Documents returns the indexed documents in corpus order.
func (s *Snapshot) Documents() []model.Document {
	return slices.Clone(s.docs)
}

// DocumentVectors returns every document vector in corpus order. The
// vectors are shared and must not be modified.
func (s *Snapshot) DocumentVectors() []DocumentVector {
	return slices.Clone(s.vectors)
}

// Candidates returns the vectors of documents sharing at least one
// positively weighted term with query, in corpus order. Every other
// document has a cosine score of 0 against query.
func (s *Snapshot) Candidates(query TermVector) []DocumentVector {
	seen := make(map[int]struct{})
	for term, weight := range query {
		if weight <= 0 {
			continue
		}
		for _, entry := range s.postings[term] {
			seen[entry.DocID] = struct{}{}
		}
	}

	positions := make([]int, 0, len(seen))
	for id := range seen {
		positions = append(positions, s.positions[id])
	}
	slices.Sort(positions)

	candidates := make([]DocumentVector, len(positions))
	for i, pos := range positions {
		candidates[i] = s.vectors[pos]
	}
	return candidates
}

// Stats summarizes the snapshot. NextID is left for the owner of the
// corpus to fill in.
func (s *Snapshot) Stats() model.IndexStats {
	return model.IndexStats{
		DocumentCount:  len(s.docs),
		VocabularySize: len(s.df),
		TotalTokens:    s.totalTokens,
		Generation:     s.generation,
		LastRebuild:    s.builtAt,
	}
}
