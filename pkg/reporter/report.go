package reporter

import (
	"github.com/yaklabco/brackettree/internal/ui/pretty"
	"github.com/yaklabco/brackettree/pkg/bracketast"
)

// Locator maps absolute offsets to 1-based line and column numbers.
// It returns (0, 0) when the position is unknown.
type Locator interface {
	LineAt(offset uint64) (int, int)
	LineContent(line int) []byte
}

// TreeReport describes an assembled or merged tree.
type TreeReport struct {
	// Name identifies the tree's source.
	Name string

	// Language is an optional language label.
	Language string

	// Start is the absolute offset of the root.
	Start uint64

	// Root is the tree to render.
	Root bracketast.Node

	// Regions is the number of merged regions, zero for a single document.
	Regions int

	// UnmatchedOpen counts opening brackets that found no partner.
	UnmatchedOpen int

	// UnmatchedClose counts invalid closing brackets.
	UnmatchedClose int

	// Locator resolves line numbers; may be nil.
	Locator Locator
}

// ScopeReport describes the scopes enclosing one offset.
type ScopeReport struct {
	Name     string
	Language string
	Offset   uint64

	// Scopes are ordered outermost first.
	Scopes []bracketast.Scope

	// Total is the number of scopes before trimming.
	Total int

	// Locator resolves line numbers; may be nil.
	Locator Locator
}

// Stats computes aggregate statistics for the report's tree.
func (r *TreeReport) Stats() pretty.TreeStats {
	stats := pretty.TreeStats{
		UnmatchedOpen:  r.UnmatchedOpen,
		UnmatchedClose: r.UnmatchedClose,
	}
	if r.Root == nil {
		return stats
	}

	stats.Height = r.Root.Height()
	stats.Length = r.Root.Length()

	//nolint:errcheck,revive // callback never fails
	bracketast.Walk(r.Root, r.Start, func(n bracketast.Node, _ uint64) error {
		stats.Nodes++
		if n.Kind() == bracketast.NodePair {
			stats.Pairs++
		}
		return nil
	})

	return stats
}
