package search

import (
	"reflect"
	"testing"

	"github.com/gcbaptista/go-vector-search/index"
)

func idsOf(scored []ScoredDocument) []int {
	ids := make([]int, len(scored))
	for i, s := range scored {
		ids[i] = s.DocumentID
	}
	return ids
}

func TestRank(t *testing.T) {
	query := index.TermVector{"a": 1, "b": 1}

	tests := []struct {
		name string
		docs []index.DocumentVector
		want []int
	}{
		{
			name: "sorted by descending score",
			docs: []index.DocumentVector{
				{ID: 1, Vector: index.TermVector{"a": 1}},
				{ID: 2, Vector: index.TermVector{"a": 1, "b": 1}},
				{ID: 3, Vector: index.TermVector{"a": 1, "c": 5}},
			},
			want: []int{2, 1, 3},
		},
		{
			name: "zero scores dropped",
			docs: []index.DocumentVector{
				{ID: 1, Vector: index.TermVector{"c": 1}},
				{ID: 2, Vector: index.TermVector{}},
				{ID: 3, Vector: index.TermVector{"b": 2}},
			},
			want: []int{3},
		},
		{
			name: "ties ordered by ascending id",
			docs: []index.DocumentVector{
				{ID: 9, Vector: index.TermVector{"a": 1}},
				{ID: 4, Vector: index.TermVector{"b": 1}},
				{ID: 7, Vector: index.TermVector{"a": 2}},
			},
			want: []int{4, 7, 9},
		},
		{
			name: "no documents",
			docs: nil,
			want: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(query, tt.docs)
			if ids := idsOf(got); !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Rank ids = %v, want %v", ids, tt.want)
			}
			for i, s := range got {
				if s.Score <= 0 {
					t.Errorf("result %d has non-positive score %v", i, s.Score)
				}
				if i > 0 && got[i-1].Score < s.Score {
					t.Errorf("results not sorted at %d: %v < %v", i, got[i-1].Score, s.Score)
				}
			}
		})
	}
}

func TestRank_EmptyQuery(t *testing.T) {
	docs := []index.DocumentVector{{ID: 1, Vector: index.TermVector{"a": 1}}}
	if got := Rank(index.TermVector{}, docs); len(got) != 0 {
		t.Errorf("Rank with empty query = %v, want none", got)
	}
}
