package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-vector-search/config"
	"github.com/gcbaptista/go-vector-search/internal/engine"
	"github.com/gcbaptista/go-vector-search/internal/logging"
	"github.com/gcbaptista/go-vector-search/services"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit  int
	format string // "text", "json"
	docs   []string
}

func newSearchCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank the configured corpus against a query",
		Long: `Rank the configured corpus against a query and print the hits.

Examples:
  search_engine search "cosine similarity vektor"
  search_engine search "TF-IDF" --limit 1 --format json
  search_engine search "kucing" --doc "kucing dan anjing"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Corpus.Documents = append(cfg.Corpus.Documents, opts.docs...)
			return runSearch(cmd.OutOrStdout(), cfg, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 10, "Maximum number of results (0 for all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringArrayVarP(&opts.docs, "doc", "d", nil, "Extra document to index before searching (repeatable)")

	return cmd
}

func runSearch(out io.Writer, cfg *config.Config, query string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q: use text or json", opts.format)
	}

	// Logs would mix with results on stdout.
	cfg.Logging.Level = "error"
	logger := logging.NewWithOutput(cfg.Logging, os.Stderr)

	eng, err := engine.NewEngine(cfg, engine.WithLogger(logging.Component(logger, "engine")))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer eng.Close()

	result := eng.Search(services.SearchQuery{QueryString: query, Limit: opts.limit})

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printHits(out, result, newStyles(out))
}

type styles struct {
	header lipgloss.Style
	score  lipgloss.Style
	dim    lipgloss.Style
}

// newStyles returns colored styles when out is a terminal and plain ones
// otherwise.
func newStyles(out io.Writer) styles {
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return styles{
			header: lipgloss.NewStyle().Bold(true),
			score:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		}
	}
	return styles{header: lipgloss.NewStyle(), score: lipgloss.NewStyle(), dim: lipgloss.NewStyle()}
}

func printHits(out io.Writer, result services.SearchResult, st styles) error {
	if len(result.Hits) == 0 {
		if _, err := fmt.Fprintln(out, st.dim.Render(fmt.Sprintf("No documents match %q", result.Query))); err != nil {
			return err
		}
		if result.Suggestion != "" {
			_, err := fmt.Fprintf(out, "Did you mean %s?\n", st.header.Render(result.Suggestion))
			return err
		}
		return nil
	}

	if _, err := fmt.Fprintln(out, st.header.Render(fmt.Sprintf("%d of %d documents match %q", len(result.Hits), result.Total, result.Query))); err != nil {
		return err
	}
	for i, hit := range result.Hits {
		line := fmt.Sprintf("%2d. %s  [%d] %s", i+1, st.score.Render(fmt.Sprintf("%.4f", hit.Score)), hit.DocumentID, hit.Text)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
