package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/brackettree/internal/ui/pretty"
	"github.com/yaklabco/brackettree/pkg/bracketast"
)

// Tree drawing guides.
const (
	guideBranch = "├─ "
	guideLast   = "└─ "
	guidePipe   = "│  "
	guideBlank  = "   "
)

// TextReporter formats trees as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	line   lipgloss.Style
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)

	width := opts.Width
	if width == 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}

	line := lipgloss.NewStyle()
	if width > 0 {
		line = line.MaxWidth(width)
	}

	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		line:   line,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportTree implements Reporter.
func (r *TextReporter) ReportTree(_ context.Context, report *TreeReport) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	header := r.styles.FormatHeader(report.Name, report.Language)
	if report.Regions > 0 {
		header += r.styles.Dim.Render(fmt.Sprintf(" (%d regions)", report.Regions))
	}
	r.writeLine(header)

	if report.Root == nil {
		r.writeLine(r.styles.Dim.Render("(empty)"))
		return nil
	}

	r.writeNode(report, report.Root, report.Start, "", "", 0)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(report.Stats()))
	}

	return nil
}

// writeNode prints one node and recurses into its children.
// prefix is printed before the node's guide, childPrefix before its children's.
func (r *TextReporter) writeNode(
	report *TreeReport, node bracketast.Node, start uint64, prefix, childPrefix string, depth int,
) {
	label := r.styles.FormatNodeLabel(node, start)
	if report.Locator != nil {
		if loc := r.styles.FormatLocation(report.Locator.LineAt(start)); loc != "" {
			label += " " + loc
		}
	}
	r.writeLine(r.styles.Guide.Render(prefix) + label)

	children := node.Children()
	if len(children) == 0 {
		return
	}

	if r.opts.MaxDepth > 0 && depth >= r.opts.MaxDepth {
		r.writeLine(r.styles.Guide.Render(childPrefix+guideLast) +
			r.styles.Dim.Render(fmt.Sprintf("... %d children", len(children))))
		return
	}

	offset := start
	for i, child := range children {
		guide, next := guideBranch, guidePipe
		if i == len(children)-1 {
			guide, next = guideLast, guideBlank
		}
		r.writeNode(report, child, offset, childPrefix+guide, childPrefix+next, depth+1)
		offset += child.Length()
	}
}

// ReportScopes implements Reporter.
func (r *TextReporter) ReportScopes(_ context.Context, report *ScopeReport) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	header := r.styles.FormatHeader(report.Name, report.Language) +
		r.styles.Dim.Render(fmt.Sprintf(" offset %d", report.Offset))

	var line, col int
	if report.Locator != nil {
		line, col = report.Locator.LineAt(report.Offset)
		if loc := r.styles.FormatLocation(line, col); loc != "" {
			header += " " + loc
		}
	}
	r.writeLine(header)

	if len(report.Scopes) == 0 {
		r.writeLine(r.styles.Warning.Render("offset is outside the tree"))
		return nil
	}

	for _, scope := range report.Scopes {
		entry := fmt.Sprintf("%s%s %s",
			strings.Repeat("  ", scope.Depth),
			r.styles.Dim.Render(fmt.Sprintf("%d", scope.Depth)),
			r.styles.FormatNodeLabel(scope.Node, scope.Start),
		)
		if report.Locator != nil {
			if loc := r.styles.FormatLocation(report.Locator.LineAt(scope.Start)); loc != "" {
				entry += " " + loc
			}
		}
		r.writeLine(entry)
	}

	if r.opts.ShowContext && line > 0 {
		source := pretty.Truncate(string(report.Locator.LineContent(line)), pretty.DefaultTermWidth)
		fmt.Fprint(r.bw, r.styles.FormatSourceContext(source, col))
	}

	if report.Total > len(report.Scopes) {
		r.writeLine(r.styles.Dim.Render(
			fmt.Sprintf("showing innermost %d of %d scopes", len(report.Scopes), report.Total)))
	}

	return nil
}

func (r *TextReporter) writeLine(s string) {
	fmt.Fprintln(r.bw, r.line.Render(s))
}
