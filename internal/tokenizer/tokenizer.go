// Package tokenizer turns raw text into the canonical token sequence used by
// the index: lowercased, punctuation stripped, optionally stop-word filtered,
// and stemmed to a root form.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Options configures a Tokenizer.
type Options struct {
	// RemoveStopwords drops tokens found in the stop-word set.
	RemoveStopwords bool
}

// Tokenizer normalizes text into tokens. It holds no mutable state and is
// safe for concurrent use.
type Tokenizer struct {
	opts      Options
	stemmer   Stemmer
	stopwords StopwordSet
}

// New creates a Tokenizer. A nil stemmer leaves tokens unchanged and a nil
// stop-word set removes nothing.
func New(opts Options, stemmer Stemmer, stopwords StopwordSet) *Tokenizer {
	if stemmer == nil {
		stemmer = IdentityStemmer{}
	}
	if stopwords == nil {
		stopwords = StopwordSet{}
	}
	return &Tokenizer{
		opts:      opts,
		stemmer:   stemmer,
		stopwords: stopwords,
	}
}

// Options returns the options the tokenizer was built with.
func (t *Tokenizer) Options() Options {
	return t.opts
}

// Normalize converts text into its canonical token sequence.
// Order is preserved and repeated tokens are kept, since term frequency
// counting downstream needs them.
func (t *Tokenizer) Normalize(text string) []string {
	words := Tokenize(text)

	tokens := make([]string, 0, len(words)) // Initialize as empty slice, not nil
	for _, word := range words {
		if t.opts.RemoveStopwords && t.stopwords.Contains(word) {
			continue
		}
		stemmed := t.stemmer.Stem(word)
		if stemmed == "" {
			continue
		}
		// A root can itself be a stop word ("sebagai" -> "bagai"); dropping it
		// here keeps Normalize stable when applied to its own output.
		if t.opts.RemoveStopwords && t.stopwords.Contains(stemmed) {
			continue
		}
		tokens = append(tokens, stemmed)
	}
	return tokens
}

// Tokenize lowercases text, drops every character that is not a letter,
// number, underscore or whitespace, and splits on runs of whitespace.
// Invalid UTF-8 sequences are dropped, so any byte input is accepted.
// No stop-word removal or stemming is applied.
func Tokenize(text string) []string {
	// 1. Repair encoding and compose
	text = strings.ToValidUTF8(text, "")
	text = norm.NFC.String(text)

	// 2. Lowercase. Casers are stateful, so one is built per call.
	text = cases.Lower(language.Und).String(text)

	// 3. Strip punctuation and symbols without inserting a separator
	stripped := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)

	// 4. Split by whitespace
	fields := strings.Fields(stripped)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
