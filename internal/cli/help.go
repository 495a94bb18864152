package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/brackettree/internal/configloader"
	"github.com/yaklabco/brackettree/internal/ui/pretty"
	"github.com/yaklabco/brackettree/pkg/bracketast"
)

// Command groups listed in the root help.
const (
	groupTree  = "tree"
	groupQuery = "query"
	groupSetup = "setup"
)

func addCommandGroups(root *cobra.Command) {
	root.AddGroup(
		&cobra.Group{ID: groupTree, Title: "Tree commands:"},
		&cobra.Group{ID: groupQuery, Title: "Query commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup commands:"},
	)
	root.SetHelpCommandGroupID(groupSetup)
	root.SetCompletionCommandGroupID(groupSetup)
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}
{{- end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]
{{- end }}

{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end }}

{{- if .HasAvailableSubCommands }}
{{- range $group := .Groups }}

{{ heading $group.Title }}
{{- range $.Commands }}{{ if and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")) }}
  {{ command (pad .Name .NamePadding) }} {{ .Short }}
{{- end }}{{ end }}
{{- end }}
{{- end }}

{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}

{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}

{{- if not .HasParent }}

{{ heading "Bracket kinds:" }}
{{ bracketKinds }}

{{ heading "Exit codes:" }}
{{ exitCodes }}

{{ heading "Environment:" }}
{{ envVars }}
{{- end }}

{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end }}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ trimLines . }}

{{ end }}` + usageTemplate

// installHelp replaces Cobra's help and usage output for root and every
// subcommand below it.
func installHelp(root *cobra.Command) {
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return newHelpRenderer(cmd).render(cmd, "usage", usageTemplate)
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := newHelpRenderer(cmd).render(cmd, "help", helpTemplate); err != nil {
			cmd.PrintErrln(err)
		}
	})
}

// helpRenderer styles help text with the same palette as tree output. The
// color mode is read when help is rendered, after --color has been parsed.
type helpRenderer struct {
	styles *pretty.Styles
}

func newHelpRenderer(cmd *cobra.Command) *helpRenderer {
	mode := "auto"
	if flag := cmd.Flag("color"); flag != nil {
		mode = flag.Value.String()
	}
	return &helpRenderer{styles: pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))}
}

func (h *helpRenderer) render(cmd *cobra.Command, name, text string) error {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"heading":      h.styles.Bold.Render,
		"command":      h.styles.Pair.Render,
		"dim":          h.styles.Dim.Render,
		"flags":        h.flags,
		"bracketKinds": h.bracketKinds,
		"exitCodes":    h.exitCodes,
		"envVars":      h.envVars,
		"pad":          pad,
		"trimLines":    trimLines,
	}).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	return tmpl.Execute(cmd.OutOrStdout(), cmd)
}

// flags lists visible flags as "-s, --name type   usage (default x)".
func (h *helpRenderer) flags(set *pflag.FlagSet) string {
	type row struct {
		name, typ, usage string
	}

	var rows []row
	width := 0
	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		name := "    --" + flag.Name
		if flag.Shorthand != "" {
			name = "-" + flag.Shorthand + ", --" + flag.Name
		}
		typ, usage := pflag.UnquoteUsage(flag)
		if showDefault(flag) {
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}
		rows = append(rows, row{name: name, typ: typ, usage: usage})
		width = max(width, len(name)+1+len(typ))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := h.styles.Glyph.Render(r.name)
		labelLen := len(r.name)
		if r.typ != "" {
			label += " " + h.styles.Dim.Render(r.typ)
			labelLen += 1 + len(r.typ)
		}
		lines = append(lines, "  "+label+strings.Repeat(" ", width-labelLen)+"   "+r.usage)
	}
	return strings.Join(lines, "\n")
}

func showDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return false
	default:
		return true
	}
}

// bracketKinds lists each bracket family with its glyphs and the names a
// token document may use instead.
func (h *helpRenderer) bracketKinds() string {
	var lines []string
	for family := bracketast.FamilyParen; bracketast.NewBracketKind(family, false).Valid(); family++ {
		open := bracketast.NewBracketKind(family, false)
		closing := bracketast.NewBracketKind(family, true)
		lines = append(lines, fmt.Sprintf("  %s %s %s   %s, %s",
			pad(family.String(), len("square")),
			h.styles.Glyph.Render(open.Glyph()), h.styles.Glyph.Render(closing.Glyph()),
			open, closing))
	}
	return strings.Join(lines, "\n")
}

func (h *helpRenderer) exitCodes() string {
	lines := make([]string, 0, len(exitCodeDescriptions))
	for _, entry := range exitCodeDescriptions {
		code := pad(fmt.Sprint(entry.code), 3)
		if entry.code != ExitSuccess {
			code = h.styles.Warning.Render(code)
		}
		lines = append(lines, "  "+code+"  "+entry.description)
	}
	return strings.Join(lines, "\n")
}

// envVars lists the BRACKETTREE_* variables in the order they are applied.
func (h *helpRenderer) envVars() string {
	vars := configloader.ListEnvVars()

	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, "  "+h.styles.Glyph.Render(pad(v.Name, width))+"   "+v.Description)
	}
	return strings.Join(lines, "\n")
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
