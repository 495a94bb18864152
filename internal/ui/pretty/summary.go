package pretty

import (
	"fmt"
	"strings"
)

// TreeStats holds aggregate counts for one assembled tree.
type TreeStats struct {
	Nodes          int
	Pairs          int
	UnmatchedOpen  int
	UnmatchedClose int
	Height         int
	Length         uint64
}

// WellFormed reports whether every bracket in the tree was matched.
func (t TreeStats) WellFormed() bool {
	return t.UnmatchedOpen == 0 && t.UnmatchedClose == 0
}

// FormatSummaryOneLine formats tree statistics as a compact single line.
func (s *Styles) FormatSummaryOneLine(stats TreeStats) string {
	parts := []string{
		pluralize(stats.Nodes, "node", "nodes"),
		pluralize(stats.Pairs, "pair", "pairs"),
		fmt.Sprintf("height %d", stats.Height),
		fmt.Sprintf("length %d", stats.Length),
	}
	line := s.Dim.Render(strings.Join(parts, ", "))

	if stats.WellFormed() {
		return line + " " + s.Success.Render("balanced") + "\n"
	}

	var problems []string
	if stats.UnmatchedOpen > 0 {
		problems = append(problems, pluralize(stats.UnmatchedOpen, "unmatched opener", "unmatched openers"))
	}
	if stats.UnmatchedClose > 0 {
		problems = append(problems, pluralize(stats.UnmatchedClose, "invalid closer", "invalid closers"))
	}

	return line + " " + s.Warning.Render(strings.Join(problems, ", ")) + "\n"
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
