package tokenizer

import (
	"github.com/kljensen/snowball/english"
)

// Stemmer reduces a token to its root form. Implementations must be pure:
// the same input always yields the same output, independent of corpus state.
type Stemmer interface {
	Stem(word string) string
}

// StemmerFunc adapts a plain function to the Stemmer interface.
type StemmerFunc func(word string) string

// Stem calls f(word).
func (f StemmerFunc) Stem(word string) string {
	return f(word)
}

// IdentityStemmer returns tokens unchanged.
type IdentityStemmer struct{}

// Stem returns word.
func (IdentityStemmer) Stem(word string) string {
	return word
}

// EnglishStemmer applies the Snowball (Porter2) English algorithm.
type EnglishStemmer struct{}

// Stem returns the Snowball stem of word.
func (EnglishStemmer) Stem(word string) string {
	return english.Stem(word, false)
}
