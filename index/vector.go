package index

import "math"

// TermVector is a sparse map from term to non-negative weight.
type TermVector map[string]float64

// IDFTable maps every corpus term to its inverse document frequency.
type IDFTable map[string]float64

// DocumentVector pairs a document id with its TF-IDF vector.
type DocumentVector struct {
	ID     int
	Vector TermVector
}

// TermFrequencies counts raw occurrences of each token.
func TermFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, token := range tokens {
		tf[token]++
	}
	return tf
}

// InverseDocumentFrequency returns ln(n / max(1, df)).
func InverseDocumentFrequency(n, df int) float64 {
	if n <= 0 {
		return 0
	}
	if df < 1 {
		df = 1
	}
	return math.Log(float64(n) / float64(df))
}
