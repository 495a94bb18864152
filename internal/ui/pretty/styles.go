// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/brackettree/pkg/bracketast"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Node kinds
	Text    lipgloss.Style
	Bracket lipgloss.Style
	Pair    lipgloss.Style
	Invalid lipgloss.Style
	List    lipgloss.Style

	// Node annotations
	Glyph    lipgloss.Style
	Span     lipgloss.Style
	Location lipgloss.Style
	Guide    lipgloss.Style

	// Headers and source context
	FilePath   lipgloss.Style
	Language   lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Bracket: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Pair:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		List:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		Glyph:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Span:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Guide:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Language:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:        plain,
		Warning:      plain,
		Success:      plain,
		Text:         plain,
		Bracket:      plain,
		Pair:         plain,
		Invalid:      plain,
		List:         plain,
		Glyph:        plain,
		Span:         plain,
		Location:     plain,
		Guide:        plain,
		FilePath:     plain,
		Language:     plain,
		SourceLine:   plain,
		Caret:        plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// ForKind returns the style used for a node kind's label.
func (s *Styles) ForKind(kind bracketast.NodeKind) lipgloss.Style {
	switch kind {
	case bracketast.NodeText:
		return s.Text
	case bracketast.NodeBracket:
		return s.Bracket
	case bracketast.NodePair:
		return s.Pair
	case bracketast.NodeInvalidClosingBracket:
		return s.Invalid
	case bracketast.NodeList:
		return s.List
	default:
		return s.Dim
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
