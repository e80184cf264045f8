// Package cmd provides the CLI commands for go-vector-search.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-vector-search/config"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "search_engine",
		Short: "Vector space model search engine",
		Long: `go-vector-search ranks documents against free-text queries using
TF-IDF weighting and cosine similarity.

Run 'search_engine serve' to start the HTTP server with the web page and
JSON API, or 'search_engine search <query>' to rank the configured corpus
from the command line.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetVersionTemplate("go-vector-search version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	cmd.AddCommand(newServeCmd(loadConfig))
	cmd.AddCommand(newSearchCmd(loadConfig))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
