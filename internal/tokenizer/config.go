package tokenizer

import (
	"fmt"

	"github.com/gcbaptista/go-vector-search/config"
)

// NewFromConfig builds a Tokenizer with the stemmer and stop-word list for
// the configured language, loading any configured word list files.
func NewFromConfig(cfg config.TokenizerConfig) (*Tokenizer, error) {
	var (
		stemmer   Stemmer
		stopwords StopwordSet
	)

	switch cfg.Language {
	case config.LanguageIndonesian, "":
		dict := DefaultDictionary()
		if cfg.DictionaryFile != "" {
			words, err := LoadWordList(cfg.DictionaryFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load stemmer dictionary: %w", err)
			}
			dict.Add(words...)
		}
		stemmer = NewIndonesianStemmer(dict)
		stopwords = IndonesianStopwords()
	case config.LanguageEnglish:
		stemmer = EnglishStemmer{}
		stopwords = EnglishStopwords()
	case config.LanguageNone:
		stemmer = IdentityStemmer{}
		stopwords = StopwordSet{}
	default:
		return nil, fmt.Errorf("unsupported tokenizer language '%s'", cfg.Language)
	}

	if cfg.StopwordsFile != "" {
		words, err := LoadWordList(cfg.StopwordsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load stop words: %w", err)
		}
		stopwords = NewStopwordSet(words...)
	}

	return New(Options{RemoveStopwords: cfg.RemoveStopwords}, stemmer, stopwords), nil
}
