package tokenizer

import (
	"github.com/RadhiFadlillah/go-sastrawi"
)

// IndonesianStemmer reduces Indonesian words to their dictionary roots with
// the Sastrawi confix-stripping rules. A word with no root candidate is
// returned unchanged. A root stems to itself, so Stem(Stem(w)) == Stem(w).
type IndonesianStemmer struct {
	stemmer sastrawi.Stemmer
}

// NewIndonesianStemmer creates a stemmer backed by dict. A nil dict uses
// DefaultDictionary.
func NewIndonesianStemmer(dict *Dictionary) *IndonesianStemmer {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &IndonesianStemmer{stemmer: sastrawi.NewStemmer(dict.words)}
}

// Stem returns the root form of word, or word itself when no root is found.
func (s *IndonesianStemmer) Stem(word string) string {
	if word == "" {
		return word
	}
	return s.stemmer.Stem(word)
}
