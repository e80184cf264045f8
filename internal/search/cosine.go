package search

import (
	"math"
	"slices"

	"github.com/gcbaptista/go-vector-search/index"
)

// CosineSimilarity returns dot(v1, v2) / (|v1| * |v2|) over the union of
// both key sets. If either vector has zero magnitude the result is 0.
// Sums run in sorted term order so the same inputs always give the same
// bits.
func CosineSimilarity(v1, v2 index.TermVector) float64 {
	terms := make([]string, 0, len(v1)+len(v2))
	for term := range v1 {
		terms = append(terms, term)
	}
	for term := range v2 {
		if _, ok := v1[term]; !ok {
			terms = append(terms, term)
		}
	}
	slices.Sort(terms)

	var dot, sum1, sum2 float64
	for _, term := range terms {
		a, b := v1[term], v2[term]
		dot += a * b
		sum1 += a * a
		sum2 += b * b
	}

	magnitude := math.Sqrt(sum1) * math.Sqrt(sum2)
	if magnitude == 0 {
		return 0
	}
	return dot / magnitude
}
