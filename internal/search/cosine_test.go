package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/go-vector-search/index"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		v1   index.TermVector
		v2   index.TermVector
		want float64
	}{
		{"identical", index.TermVector{"a": 1, "b": 2}, index.TermVector{"a": 1, "b": 2}, 1},
		{"scaled copy", index.TermVector{"a": 1, "b": 2}, index.TermVector{"a": 3, "b": 6}, 1},
		{"orthogonal", index.TermVector{"a": 1}, index.TermVector{"b": 1}, 0},
		{"partial overlap", index.TermVector{"a": 1, "b": 1}, index.TermVector{"a": 1}, 1 / math.Sqrt2},
		{"empty and non-empty", index.TermVector{"a": 1}, index.TermVector{}, 0},
		{"both empty", index.TermVector{}, index.TermVector{}, 0},
		{"nil vectors", nil, nil, 0},
		{"all zero weights", index.TermVector{"a": 0}, index.TermVector{"a": 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.v1, tt.v2), 1e-12)
		})
	}
}

func TestCosineSimilarity_Bounds(t *testing.T) {
	vectors := []index.TermVector{
		{"a": 0.5, "b": 1.2, "c": 3},
		{"b": 0.1},
		{"c": 2, "d": 7},
		{"a": 1, "d": 0.3, "e": 9},
	}
	for i, v1 := range vectors {
		for j, v2 := range vectors {
			score := CosineSimilarity(v1, v2)
			assert.GreaterOrEqual(t, score, 0.0, "pair %d,%d", i, j)
			assert.LessOrEqual(t, score, 1.0+1e-12, "pair %d,%d", i, j)
			assert.Equal(t, score, CosineSimilarity(v2, v1), "symmetric for pair %d,%d", i, j)
		}
		assert.InDelta(t, 1.0, CosineSimilarity(v1, v1), 1e-12)
	}
}
