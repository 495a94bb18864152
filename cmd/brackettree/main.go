// Package main is the entry point for the brackettree CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/brackettree/internal/cli"
	"github.com/yaklabco/brackettree/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrMalformedTree only selects the exit code; the tree was already printed.
		if !errors.Is(err, cli.ErrMalformedTree) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
