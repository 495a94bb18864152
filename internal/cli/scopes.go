package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/brackettree/internal/logging"
	"github.com/yaklabco/brackettree/pkg/bracketast"
	"github.com/yaklabco/brackettree/pkg/config"
	"github.com/yaklabco/brackettree/pkg/reporter"
	"github.com/yaklabco/brackettree/pkg/tokenfile"
)

type scopesFlags struct {
	treeFlags

	offset    uint64
	line      int
	column    int
	maxScopes int
	pairsOnly bool
	noContext bool
}

func newScopesCommand() *cobra.Command {
	flags := &scopesFlags{}

	cmd := &cobra.Command{
		Use:     "scopes <tokens-file>",
		GroupID: groupQuery,
		Short:   "Print the scopes enclosing an offset",
		Long: `Print the chain of pairs and lists that enclose an offset, outermost first.

The offset is absolute: it includes the document's start. When the token
document carries enough text to rebuild its source, --line and --column may
be used instead of --offset and the source line is shown under the chain.

Examples:
  brackettree scopes tokens.yml --offset 42
  brackettree scopes tokens.yml --line 3 --column 7 --pairs-only
  brackettree scopes tokens.yml --offset 42 --max-scopes 2 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScopes(cmd, args[0], flags)
		},
	}

	addTreeFlags(cmd, &flags.treeFlags)
	cmd.Flags().Uint64Var(&flags.offset, "offset", 0, "absolute byte offset to query")
	cmd.Flags().IntVar(&flags.line, "line", 0, "1-based line to query (requires source text)")
	cmd.Flags().IntVar(&flags.column, "column", 1, "1-based column used with --line")
	cmd.Flags().IntVar(&flags.maxScopes, "max-scopes", 0, "report at most N innermost scopes (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.pairsOnly, "pairs-only", false, "report only bracket pairs")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit the source line")
	cmd.MarkFlagsMutuallyExclusive("offset", "line")

	return cmd
}

func runScopes(cmd *cobra.Command, path string, flags *scopesFlags) error {
	ctx := logging.WithFields(commandContext(cmd), logging.FieldPath, path)
	logger := logging.FromContext(ctx)

	cliCfg := flags.cliConfig(cmd)
	cliCfg.MaxScopes = flags.maxScopes
	cliCfg.PairsOnly = flags.pairsOnly

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	doc, err := tokenfile.Load(ctx, path)
	if err != nil {
		return err
	}

	offset, err := resolveOffset(cmd, doc, flags)
	if err != nil {
		return err
	}

	asm, err := doc.Assemble(cfg.AssembleOptions())
	if err != nil {
		return err
	}

	all := enclosing(asm.Root, doc.Start, offset, cfg)
	scopes := bracketast.TrimScopes(all, cfg.MaxScopes)

	logger.Debug("resolved scopes",
		logging.FieldOffset, offset,
		logging.FieldScopes, len(all),
		logging.FieldMaxScopes, cfg.MaxScopes,
	)

	rep, err := newReporter(cmd, cfg, reporter.Options{
		ShowContext: !flags.noContext,
		Compact:     flags.compact,
	})
	if err != nil {
		return err
	}

	report := &reporter.ScopeReport{
		Name:     doc.Name(),
		Language: doc.Language,
		Offset:   offset,
		Scopes:   scopes,
		Total:    len(all),
	}
	if doc.HasText() {
		report.Locator = doc
	}

	if err := rep.ReportScopes(ctx, report); err != nil {
		return fmt.Errorf("report scopes: %w", err)
	}

	return nil
}

// resolveOffset turns --offset or --line/--column into an absolute offset.
func resolveOffset(cmd *cobra.Command, doc *tokenfile.Document, flags *scopesFlags) (uint64, error) {
	if !cmd.Flags().Changed("line") {
		if !cmd.Flags().Changed("offset") {
			return 0, errors.Join(ErrInvalidUsage, errors.New("one of --offset or --line is required"))
		}
		return flags.offset, nil
	}

	offset, ok := doc.Offset(flags.line, flags.column)
	if !ok {
		if !doc.HasText() {
			return 0, errors.Join(ErrInvalidUsage,
				fmt.Errorf("%s carries no source text; use --offset", doc.Name()))
		}
		return 0, errors.Join(ErrInvalidUsage,
			fmt.Errorf("position %d:%d is outside %s", flags.line, flags.column, doc.Name()))
	}
	return offset, nil
}

// enclosing queries a tree whose root begins at start with an absolute
// offset and returns scopes with absolute spans.
func enclosing(root bracketast.Node, start, offset uint64, cfg *config.Config) []bracketast.Scope {
	if offset < start {
		return nil
	}

	var scopes []bracketast.Scope
	if cfg.PairsOnly {
		scopes = bracketast.EnclosingPairs(root, offset-start)
	} else {
		scopes = bracketast.EnclosingScopes(root, offset-start)
	}

	for i := range scopes {
		scopes[i].Start += start
		scopes[i].End += start
	}
	return scopes
}
