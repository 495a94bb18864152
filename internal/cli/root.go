// Package cli provides the Cobra command structure for brackettree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/brackettree/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root brackettree command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var noConfig bool

	rootCmd := &cobra.Command{
		Use:   "brackettree",
		Short: "Assemble and query persistent bracket trees",
		Long: `brackettree assembles a stream of pre-classified text and bracket tokens
into a persistent bracket tree of text, bracket, pair, invalid-closer and
list nodes.

Token documents are produced by an external lexer. brackettree prints the
resulting tree, answers which scopes enclose an offset, and merges trees
built for adjacent regions of the same file.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false,
		"ignore system, user and project config files")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	addCommandGroups(rootCmd)
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newScopesCommand())
	rootCmd.AddCommand(newMergeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	installHelp(rootCmd)

	return rootCmd
}
