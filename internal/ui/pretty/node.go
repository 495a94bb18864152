package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/brackettree/pkg/bracketast"
)

// FormatNodeLabel renders the one-line description of a node: its kind,
// its bracket glyphs, and its half-open span.
func (s *Styles) FormatNodeLabel(node bracketast.Node, start uint64) string {
	var builder strings.Builder

	builder.WriteString(s.ForKind(node.Kind()).Render(node.Kind().String()))

	if glyph := bracketGlyph(node); glyph != "" {
		builder.WriteString(" " + s.Glyph.Render(strconv.Quote(glyph)))
	}

	builder.WriteString(" " + s.FormatSpan(start, start+node.Length()))

	if node.ChildCount() > 0 {
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" h=%d", node.Height())))
	}

	return builder.String()
}

// FormatSpan renders a half-open byte range.
func (s *Styles) FormatSpan(start, end uint64) string {
	return s.Span.Render(fmt.Sprintf("[%d,%d)", start, end))
}

// FormatLocation renders a 1-based line and column, or nothing when unknown.
func (s *Styles) FormatLocation(line, col int) string {
	if line <= 0 {
		return ""
	}
	return s.Location.Render(fmt.Sprintf("%d:%d", line, col))
}

// maxHeaderName bounds the document name shown in headers.
const maxHeaderName = 72

// FormatHeader formats a document header with an optional language label.
// Long names keep their trailing path components.
func (s *Styles) FormatHeader(name, language string) string {
	header := s.FilePath.Render(TruncatePath(name, maxHeaderName))
	if language != "" {
		header += " " + s.Language.Render("("+language+")")
	}
	return header
}

// FormatSourceContext formats a source line with a caret under column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "    "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

func bracketGlyph(node bracketast.Node) string {
	switch n := node.(type) {
	case *bracketast.Bracket:
		return n.BracketKind().Glyph()
	case *bracketast.InvalidClosingBracket:
		return n.BracketKind().Glyph()
	case *bracketast.Pair:
		return n.Opening().BracketKind().Glyph() + n.Closing().BracketKind().Glyph()
	default:
		return ""
	}
}
