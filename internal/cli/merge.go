package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/brackettree/internal/logging"
	"github.com/yaklabco/brackettree/pkg/bracketast"
	"github.com/yaklabco/brackettree/pkg/reporter"
	"github.com/yaklabco/brackettree/pkg/runner"
)

type mergeFlags struct {
	treeFlags

	starts     []string
	contiguous bool
	jobs       int
	exclude    []string
	maxDepth   int
	noSummary  bool
	strict     bool
}

func newMergeCommand() *cobra.Command {
	flags := &mergeFlags{}

	cmd := &cobra.Command{
		Use:     "merge <tokens-file|dir>...",
		GroupID: groupTree,
		Short:   "Merge trees of adjacent regions into one tree",
		Long: `Assemble each token document as one region and merge the regions, in
argument order, into a single tree.

A directory argument contributes its .yml, .yaml and .json files in sorted
order. Documents are loaded and assembled in parallel.

Each region starts at its document's start field unless --starts gives the
offsets explicitly or --contiguous lays the regions end to end. Regions must
be contiguous: every region has to begin exactly where the previous one ends.
A gap or overlap fails the merge and nothing is printed.

Examples:
  brackettree merge head.yml body.yml tail.yml
  brackettree merge a.yml b.yml --starts 0,120
  brackettree merge regions/ --contiguous --format json
  brackettree merge regions/ --exclude '**/draft-*'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args, flags)
		},
	}

	addTreeFlags(cmd, &flags.treeFlags)
	cmd.Flags().StringSliceVar(&flags.starts, "starts", nil, "comma-separated region start offsets")
	cmd.Flags().BoolVar(&flags.contiguous, "contiguous", false, "lay regions end to end from the first start")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel loaders (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns skipped inside directories")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "limit printed tree depth (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail when the merged tree has unmatched brackets")
	cmd.MarkFlagsMutuallyExclusive("starts", "contiguous")

	return cmd
}

func runMerge(cmd *cobra.Command, paths []string, flags *mergeFlags) error {
	logger := commandLogger(cmd)

	cfg, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	result, err := runner.Run(commandContext(cmd), runner.Options{
		Paths:        paths,
		ExcludeGlobs: flags.exclude,
		Jobs:         flags.jobs,
		Assemble:     cfg.AssembleOptions(),
	})
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return err
	}
	if len(result.Files) == 0 {
		return errors.Join(ErrInvalidUsage, errors.New("no token files found"))
	}

	logger.Debug("loaded regions",
		logging.FieldRegions, result.Stats.FilesLoaded,
		logging.FieldTokens, result.Stats.Tokens,
	)

	starts, err := parseStarts(flags.starts, len(result.Files))
	if err != nil {
		return err
	}

	regions := make([]bracketast.Region, 0, len(result.Files))
	var next uint64

	for i, outcome := range result.Files {
		root := outcome.Assembly.Root

		start := outcome.Document.Start
		switch {
		case starts != nil:
			start = starts[i]
		case flags.contiguous && i > 0:
			start = next
		}
		next = start + root.Length()

		logger.Debug("region",
			logging.FieldPath, outcome.Path,
			logging.FieldOffset, start,
			logging.FieldLength, root.Length(),
		)

		regions = append(regions, bracketast.Region{Start: start, Tree: root})
	}

	merged, err := bracketast.MergeTrees(regions)
	if err != nil {
		return fmt.Errorf("merge %d regions: %w", len(regions), err)
	}

	logger.Debug("merged regions",
		logging.FieldRegions, len(regions),
		logging.FieldLength, merged.Length(),
		logging.FieldHeight, merged.Height(),
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
		Name:           "merged",
		Start:          regions[0].Start,
		Root:           merged,
		Regions:        len(regions),
		UnmatchedOpen:  result.Stats.UnmatchedOpen,
		UnmatchedClose: result.Stats.UnmatchedClose,
	}
	if err := rep.ReportTree(commandContext(cmd), report); err != nil {
		return fmt.Errorf("report tree: %w", err)
	}

	if flags.strict && !bracketast.IsWellFormed(merged) {
		return ErrMalformedTree
	}

	return nil
}

// parseStarts converts --starts values into offsets. It returns nil when no
// starts were given.
func parseStarts(values []string, regions int) ([]uint64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) != regions {
		return nil, errors.Join(ErrInvalidUsage,
			fmt.Errorf("--starts has %d values for %d regions", len(values), regions))
	}

	starts := make([]uint64, len(values))
	for i, value := range values {
		start, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, errors.Join(ErrInvalidUsage, fmt.Errorf("invalid start %q: %w", value, err))
		}
		starts[i] = start
	}
	return starts, nil
}
