package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/brackettree/internal/logging"
	"github.com/yaklabco/brackettree/pkg/bracketast"
	"github.com/yaklabco/brackettree/pkg/reporter"
	"github.com/yaklabco/brackettree/pkg/tokenfile"
)

type inspectFlags struct {
	treeFlags

	maxDepth  int
	noSummary bool
	strict    bool
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:     "inspect <tokens-file>",
		GroupID: groupTree,
		Short:   "Assemble a token document and print its tree",
		Long: `Assemble the tokens of a token document into a bracket tree and print it.

Every node is shown with its kind, absolute span and height. Opening brackets
that never close and closing brackets with no partner are counted in the
summary line.

Examples:
  brackettree inspect tokens.yml
  brackettree inspect tokens.json --format json
  brackettree inspect tokens.yml --open-policy text --max-depth 3
  brackettree inspect tokens.yml --strict     # exit 1 on unmatched brackets`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], flags)
		},
	}

	addTreeFlags(cmd, &flags.treeFlags)
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "limit printed tree depth (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail when the tree has unmatched brackets")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, flags *inspectFlags) error {
	ctx := logging.WithFields(commandContext(cmd), logging.FieldPath, path)
	logger := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	doc, err := tokenfile.Load(ctx, path)
	if err != nil {
		return err
	}

	asm, err := doc.Assemble(cfg.AssembleOptions())
	if err != nil {
		return err
	}

	logger.Debug("assembled tree",
		logging.FieldLanguage, doc.Language,
		logging.FieldTokens, len(doc.Tokens),
		logging.FieldLength, asm.Root.Length(),
		logging.FieldHeight, asm.Root.Height(),
		logging.FieldUnmatchedOpen, asm.UnmatchedOpen,
		logging.FieldUnmatchedClose, asm.UnmatchedClose,
	)

	rep, err := newReporter(cmd, cfg, reporter.Options{
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		MaxDepth:    flags.maxDepth,
	})
	if err != nil {
		return err
	}

	report := &reporter.TreeReport{
		Name:           doc.Name(),
		Language:       doc.Language,
		Start:          doc.Start,
		Root:           asm.Root,
		UnmatchedOpen:  asm.UnmatchedOpen,
		UnmatchedClose: asm.UnmatchedClose,
	}
	if doc.HasText() {
		report.Locator = doc
	}

	if err := rep.ReportTree(ctx, report); err != nil {
		return fmt.Errorf("report tree: %w", err)
	}

	if flags.strict && !bracketast.IsWellFormed(asm.Root) {
		return ErrMalformedTree
	}

	return nil
}
