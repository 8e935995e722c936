// Package main is the entry point for the azcap CLI.
//
// azcap validates Azure deployment plans against live capacity metadata:
// which VM sizes, disk SKUs, service tiers and resource types are actually
// offered in a region for a subscription. It serves an HTTP API for UI
// integration and supports one-shot validation from the command line.
//
// Commands: serve, validate, regions, skus.
//
// For detailed usage information, run:
//
//	azcap --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/azcap/cmd/azcap/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
