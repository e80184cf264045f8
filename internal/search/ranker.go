package search

import (
	"slices"

	"github.com/gcbaptista/go-vector-search/index"
)

// ScoredDocument is a document id with its similarity to a query.
type ScoredDocument struct {
	DocumentID int
	Score      float64
}

// Rank scores every document against query, drops scores <= 0 and sorts by
// descending score. Equal scores are ordered by ascending document id.
func Rank(query index.TermVector, docs []index.DocumentVector) []ScoredDocument {
	scored := make([]ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		score := CosineSimilarity(query, doc.Vector)
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredDocument{DocumentID: doc.ID, Score: score})
	}

	slices.SortFunc(scored, func(a, b ScoredDocument) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return a.DocumentID - b.DocumentID
		}
	})
	return scored
}
