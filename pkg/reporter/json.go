package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/brackettree/pkg/bracketast"
)

// jsonVersion is the schema version of the JSON output.
const jsonVersion = "1.0.0"

// JSONTree is the top-level JSON structure for a tree report.
type JSONTree struct {
	Version  string    `json:"version"`
	Name     string    `json:"name"`
	Language string    `json:"language,omitempty"`
	Regions  int       `json:"regions,omitempty"`
	Summary  JSONStats `json:"summary"`
	Root     *JSONNode `json:"root"`
}

// JSONStats contains aggregate statistics.
type JSONStats struct {
	Nodes          int    `json:"nodes"`
	Pairs          int    `json:"pairs"`
	Height         int    `json:"height"`
	Length         uint64 `json:"length"`
	UnmatchedOpen  int    `json:"unmatchedOpen"`
	UnmatchedClose int    `json:"unmatchedClose"`
	WellFormed     bool   `json:"wellFormed"`
}

// JSONNode represents a single node with absolute offsets.
type JSONNode struct {
	Kind     string      `json:"kind"`
	Start    uint64      `json:"start"`
	End      uint64      `json:"end"`
	Height   int         `json:"height"`
	Bracket  string      `json:"bracket,omitempty"`
	Line     int         `json:"line,omitempty"`
	Column   int         `json:"column,omitempty"`
	Children []*JSONNode `json:"children,omitempty"`
}

// JSONScopes is the top-level JSON structure for a scope report.
type JSONScopes struct {
	Version string      `json:"version"`
	Name    string      `json:"name"`
	Offset  uint64      `json:"offset"`
	Line    int         `json:"line,omitempty"`
	Column  int         `json:"column,omitempty"`
	Total   int         `json:"total"`
	Scopes  []JSONScope `json:"scopes"`
}

// JSONScope represents one enclosing scope.
type JSONScope struct {
	Depth   int    `json:"depth"`
	Kind    string `json:"kind"`
	Start   uint64 `json:"start"`
	End     uint64 `json:"end"`
	Bracket string `json:"bracket,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// JSONReporter formats trees as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportTree implements Reporter.
func (r *JSONReporter) ReportTree(_ context.Context, report *TreeReport) error {
	stats := report.Stats()

	output := &JSONTree{
		Version:  jsonVersion,
		Name:     report.Name,
		Language: report.Language,
		Regions:  report.Regions,
		Summary: JSONStats{
			Nodes:          stats.Nodes,
			Pairs:          stats.Pairs,
			Height:         stats.Height,
			Length:         stats.Length,
			UnmatchedOpen:  stats.UnmatchedOpen,
			UnmatchedClose: stats.UnmatchedClose,
			WellFormed:     stats.WellFormed(),
		},
	}
	if report.Root != nil {
		output.Root = buildJSONNode(report.Root, report.Start, report.Locator)
	}

	return r.encode(output)
}

// ReportScopes implements Reporter.
func (r *JSONReporter) ReportScopes(_ context.Context, report *ScopeReport) error {
	output := &JSONScopes{
		Version: jsonVersion,
		Name:    report.Name,
		Offset:  report.Offset,
		Total:   report.Total,
		Scopes:  make([]JSONScope, 0, len(report.Scopes)),
	}
	if report.Locator != nil {
		output.Line, output.Column = report.Locator.LineAt(report.Offset)
	}

	for _, scope := range report.Scopes {
		entry := JSONScope{
			Depth:   scope.Depth,
			Kind:    scope.Node.Kind().String(),
			Start:   scope.Start,
			End:     scope.End,
			Bracket: bracketLabel(scope.Node),
		}
		if report.Locator != nil {
			entry.Line, entry.Column = report.Locator.LineAt(scope.Start)
		}
		output.Scopes = append(output.Scopes, entry)
	}

	return r.encode(output)
}

func (r *JSONReporter) encode(v any) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func buildJSONNode(node bracketast.Node, start uint64, locator Locator) *JSONNode {
	out := &JSONNode{
		Kind:    node.Kind().String(),
		Start:   start,
		End:     start + node.Length(),
		Height:  node.Height(),
		Bracket: bracketLabel(node),
	}
	if locator != nil {
		out.Line, out.Column = locator.LineAt(start)
	}

	offset := start
	for _, child := range node.Children() {
		out.Children = append(out.Children, buildJSONNode(child, offset, locator))
		offset += child.Length()
	}

	return out
}

// bracketLabel names the bracket kinds a node carries, using long names.
func bracketLabel(node bracketast.Node) string {
	switch n := node.(type) {
	case *bracketast.Bracket:
		return n.BracketKind().String()
	case *bracketast.InvalidClosingBracket:
		return n.BracketKind().String()
	case *bracketast.Pair:
		return n.Opening().BracketKind().Family().String()
	default:
		return ""
	}
}
