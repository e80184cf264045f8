package typoutil

import (
	"sort"
	"testing"
)

func TestDamerauLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name        string
		a           string
		b           string
		maxDistance int
		want        int
	}{
		{"both empty", "", "", 2, 0},
		{"a empty", "", "ab", 2, 2},
		{"identical", "vektor", "vektor", 2, 0},
		{"substitution", "vekter", "vektor", 2, 1},
		{"insertion", "dokumn", "dokumen", 2, 1},
		{"deletion", "informasii", "informasi", 2, 1},
		{"transposition", "vetkor", "vektor", 2, 1},
		{"two edits", "vecktr", "vektor", 2, 2},
		{"unicode", "café", "cafe", 2, 1},
		{"length difference exceeds limit", "ab", "abcdef", 2, 3},
		{"early termination", "kucing", "vektor", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DamerauLevenshteinDistance(tt.a, tt.b, tt.maxDistance)
			if got != tt.want {
				t.Errorf("DamerauLevenshteinDistance(%q, %q, %d) = %d, want %d", tt.a, tt.b, tt.maxDistance, got, tt.want)
			}
		})
	}
}

func TestDamerauLevenshteinDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{{"retrieval", "retreival"}, {"sistem", "system"}, {"kata", "akta"}}
	for _, p := range pairs {
		if d1, d2 := DamerauLevenshteinDistance(p[0], p[1], 3), DamerauLevenshteinDistance(p[1], p[0], 3); d1 != d2 {
			t.Errorf("distance(%q, %q) = %d but reverse is %d", p[0], p[1], d1, d2)
		}
	}
}

type mapVocabulary map[string]int

func (v mapVocabulary) Terms() []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

func (v mapVocabulary) DocumentFrequency(term string) int {
	return v[term]
}

func TestClosest(t *testing.T) {
	vocab := mapVocabulary{
		"vektor":  2,
		"sektor":  1,
		"dokumen": 3,
		"kata":    1,
		"kita":    1,
	}

	tests := []struct {
		name        string
		term        string
		maxDistance int
		want        string
		wantOK      bool
	}{
		{"single typo", "dokumn", 1, "dokumen", true},
		{"tie prefers higher document frequency", "xektor", 1, "vektor", true},
		{"tie on frequency prefers alphabetical", "kuta", 1, "kata", true},
		{"known term is not corrected", "vektor", 1, "", false},
		{"too far", "vecktr", 1, "", false},
		{"too short", "ve", 2, "", false},
		{"disabled", "dokumn", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.term, vocab, tt.maxDistance)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Closest(%q, %d) = (%q, %v), want (%q, %v)", tt.term, tt.maxDistance, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
