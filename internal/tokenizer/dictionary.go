package tokenizer

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RadhiFadlillah/go-sastrawi"
)

//go:embed data/stopwords_id.txt
var indonesianStopwords string

//go:embed data/stopwords_en.txt
var englishStopwords string

// Dictionary is a set of root words. It must not be modified once a
// stemmer is using it.
type Dictionary struct {
	words sastrawi.Dictionary
}

// NewDictionary creates a dictionary containing words. Each word is
// normalized with Tokenize; entries that do not form exactly one token are
// skipped.
func NewDictionary(words ...string) *Dictionary {
	d := &Dictionary{words: sastrawi.NewDictionary()}
	d.Add(words...)
	return d
}

// DefaultDictionary returns a new dictionary holding the Sastrawi root
// word list.
func DefaultDictionary() *Dictionary {
	return &Dictionary{words: sastrawi.DefaultDictionary()}
}

// Add inserts words into the dictionary.
func (d *Dictionary) Add(words ...string) {
	for _, w := range words {
		tokens := Tokenize(w)
		if len(tokens) != 1 {
			continue
		}
		d.words.Add(tokens[0])
	}
}

// Contains reports whether word is a known root.
func (d *Dictionary) Contains(word string) bool {
	return d.words.Find(word)
}

// StopwordSet is an immutable set of tokens removed before indexing.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from words, normalizing each with Tokenize.
func NewStopwordSet(words ...string) StopwordSet {
	set := make(StopwordSet, len(words))
	for _, w := range words {
		for _, token := range Tokenize(w) {
			set[token] = struct{}{}
		}
	}
	return set
}

// Contains reports whether token is a stop word.
func (s StopwordSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// IndonesianStopwords returns the embedded Indonesian stop-word list.
func IndonesianStopwords() StopwordSet {
	return NewStopwordSet(mustParseWordList(indonesianStopwords)...)
}

// EnglishStopwords returns the embedded English stop-word list.
func EnglishStopwords() StopwordSet {
	return NewStopwordSet(mustParseWordList(englishStopwords)...)
}

// ParseWordList reads one word per line. Blank lines and lines starting
// with '#' are ignored.
func ParseWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// LoadWordList reads a word list file with ParseWordList.
func LoadWordList(path string) ([]string, error) {
	file, err := os.Open(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	words, err := ParseWordList(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse word list %s: %w", path, err)
	}
	return words, nil
}

func mustParseWordList(data string) []string {
	words, err := ParseWordList(strings.NewReader(data))
	if err != nil {
		panic(err)
	}
	return words
}
