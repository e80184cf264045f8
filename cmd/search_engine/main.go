// Package main provides the entry point for the go-vector-search server and CLI.
package main

import (
	"os"

	"github.com/gcbaptista/go-vector-search/cmd/search_engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
