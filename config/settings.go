// Package config provides configuration structures for the search service.
// Settings are read from an optional YAML file, then overridden by VSM_*
// environment variables, with defaults for anything left unset.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported tokenizer languages.
const (
	LanguageIndonesian = "indonesian"
	LanguageEnglish    = "english"
	LanguageNone       = "none"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the top-level service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Jobs      JobsConfig      `yaml:"jobs"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes int64         `yaml:"max_request_bytes"`
}

// TokenizerConfig selects the stemmer and stop-word list supplied to the
// tokenizer. RemoveStopwords is the only option the tokenizer itself reads.
type TokenizerConfig struct {
	Language        string `yaml:"language"`         // "indonesian", "english" or "none"
	RemoveStopwords bool   `yaml:"remove_stopwords"` // Drop stop words before and after stemming
	StopwordsFile   string `yaml:"stopwords_file"`   // Replaces the built-in stop-word list when set
	DictionaryFile  string `yaml:"dictionary_file"`  // Extra Indonesian root words
}

// SearchConfig controls result limits and the query cache.
type SearchConfig struct {
	CacheSize    int `yaml:"cache_size"`    // Number of cached query results; 0 disables the cache
	DefaultLimit int `yaml:"default_limit"` // Hits returned when a query sets no limit; 0 means all
	MaxLimit     int `yaml:"max_limit"`     // Upper bound for a requested limit; 0 means unbounded

	// SuggestDistance is the edit distance for "did you mean" suggestions
	// on searches without hits; 0 disables them.
	SuggestDistance int `yaml:"suggest_distance"`
}

// LoggingConfig controls log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CorpusConfig lists documents loaded at startup.
type CorpusConfig struct {
	SeedSample bool     `yaml:"seed_sample"` // Load the built-in sample documents
	Documents  []string `yaml:"documents"`   // Additional documents, added in order
}

// JobsConfig controls background bulk imports.
type JobsConfig struct {
	MaxWorkers int           `yaml:"max_workers"` // Concurrent jobs
	BatchSize  int           `yaml:"batch_size"`  // Documents added per rebuild during an import
	Retention  time.Duration `yaml:"retention"`   // How long finished jobs stay queryable; 0 keeps them
}

// SampleDocuments is the built-in demonstration corpus.
var SampleDocuments = []string{
	"Information retrieval adalah proses mencari informasi dari koleksi dokumen",
	"Cosine similarity mengukur kesamaan antara dua vektor dalam ruang multidimensi",
	"Sistem temu balik informasi menggunakan berbagai algoritma untuk ranking dokumen",
	"TF-IDF adalah metode pembobotan kata dalam information retrieval",
	"Vector space model merepresentasikan dokumen dan query sebagai vektor",
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestBytes: 1 << 20,
		},
		Tokenizer: TokenizerConfig{
			Language: LanguageIndonesian,
		},
		Search: SearchConfig{
			CacheSize:       256,
			MaxLimit:        100,
			SuggestDistance: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: LogFormatText,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Corpus: CorpusConfig{
			SeedSample: true,
		},
		Jobs: JobsConfig{
			MaxWorkers: 2,
			BatchSize:  100,
			Retention:  24 * time.Hour,
		},
	}
}

// Load reads a YAML config file (if path is not empty) over the defaults,
// applies environment-variable overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied flag
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// ApplyDefaults fills zero values that have no meaningful zero setting.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MaxRequestBytes == 0 {
		c.Server.MaxRequestBytes = 1 << 20
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Tokenizer.Language == "" {
		c.Tokenizer.Language = LanguageIndonesian
	}
	c.Tokenizer.Language = strings.ToLower(strings.TrimSpace(c.Tokenizer.Language))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
	if c.Corpus.Documents == nil {
		c.Corpus.Documents = []string{}
	}
	if c.Jobs.MaxWorkers == 0 {
		c.Jobs.MaxWorkers = 2
	}
	if c.Jobs.BatchSize == 0 {
		c.Jobs.BatchSize = 100
	}
}

// Validate returns a list of configuration problems; empty means valid.
func (c *Config) Validate() []string {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if c.Server.MaxRequestBytes < 0 {
		problems = append(problems, "server.max_request_bytes cannot be negative")
	}

	switch c.Tokenizer.Language {
	case LanguageIndonesian, LanguageEnglish, LanguageNone:
	default:
		problems = append(problems, "tokenizer.language '"+c.Tokenizer.Language+"' is not one of indonesian, english, none")
	}
	if c.Tokenizer.DictionaryFile != "" && c.Tokenizer.Language != LanguageIndonesian {
		problems = append(problems, "tokenizer.dictionary_file is only used with the indonesian language")
	}

	if c.Search.CacheSize < 0 {
		problems = append(problems, "search.cache_size cannot be negative")
	}
	if c.Search.DefaultLimit < 0 {
		problems = append(problems, "search.default_limit cannot be negative")
	}
	if c.Search.MaxLimit < 0 {
		problems = append(problems, "search.max_limit cannot be negative")
	}
	if c.Search.SuggestDistance < 0 || c.Search.SuggestDistance > 3 {
		problems = append(problems, "search.suggest_distance must be between 0 and 3")
	}
	if c.Search.MaxLimit > 0 && c.Search.DefaultLimit > c.Search.MaxLimit {
		problems = append(problems, "search.default_limit cannot exceed search.max_limit")
	}

	switch c.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		problems = append(problems, "logging.format '"+c.Logging.Format+"' must be 'text' or 'json'")
	}

	if c.Jobs.MaxWorkers < 1 {
		problems = append(problems, "jobs.max_workers must be at least 1")
	}
	if c.Jobs.BatchSize < 1 {
		problems = append(problems, "jobs.batch_size must be at least 1")
	}
	if c.Jobs.Retention < 0 {
		problems = append(problems, "jobs.retention cannot be negative")
	}

	return problems
}

// applyEnvOverrides reads VSM_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VSM_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("VSM_TOKENIZER_LANGUAGE"); v != "" {
		cfg.Tokenizer.Language = v
	}
	if v := os.Getenv("VSM_TOKENIZER_REMOVE_STOPWORDS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tokenizer.RemoveStopwords = b
		}
	}
	if v := os.Getenv("VSM_TOKENIZER_STOPWORDS_FILE"); v != "" {
		cfg.Tokenizer.StopwordsFile = v
	}
	if v := os.Getenv("VSM_TOKENIZER_DICTIONARY_FILE"); v != "" {
		cfg.Tokenizer.DictionaryFile = v
	}
	if v := os.Getenv("VSM_SEARCH_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.CacheSize = n
		}
	}
	if v := os.Getenv("VSM_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VSM_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("VSM_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("VSM_CORPUS_SEED_SAMPLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Corpus.SeedSample = b
		}
	}
}
