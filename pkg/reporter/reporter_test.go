package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/brackettree/pkg/bracketast"
	"github.com/yaklabco/brackettree/pkg/reporter"
	"github.com/yaklabco/brackettree/pkg/tokenfile"
)

const sampleDoc = `
source: main.go
tokens:
  - text: "f"
  - bracket: "("
  - text: "x"
  - bracket: ")"
  - text: "\n"
  - bracket: "}"
`

func loadSample(t *testing.T) (*tokenfile.Document, *bracketast.Assembly) {
	t.Helper()

	doc, err := tokenfile.Decode([]byte(sampleDoc), "sample.yml")
	require.NoError(t, err)

	asm, err := doc.Assemble(bracketast.AssembleOptions{})
	require.NoError(t, err)

	return doc, asm
}

func treeReport(t *testing.T) *reporter.TreeReport {
	t.Helper()

	doc, asm := loadSample(t)
	return &reporter.TreeReport{
		Name:           doc.Name(),
		Language:       doc.Language,
		Root:           asm.Root,
		UnmatchedOpen:  asm.UnmatchedOpen,
		UnmatchedClose: asm.UnmatchedClose,
		Locator:        doc,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, reporter.FormatText.IsValid())
	assert.True(t, reporter.FormatJSON.IsValid())
	assert.False(t, reporter.Format("sarif").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTreeReport_Stats(t *testing.T) {
	report := treeReport(t)
	stats := report.Stats()

	// List(Text, Pair(Bracket, Text, Bracket), Text, InvalidClosingBracket)
	assert.Equal(t, 8, stats.Nodes)
	assert.Equal(t, 1, stats.Pairs)
	assert.Equal(t, uint64(6), stats.Length)
	assert.Equal(t, 1, stats.UnmatchedClose)
	assert.False(t, stats.WellFormed())

	empty := (&reporter.TreeReport{}).Stats()
	assert.Zero(t, empty.Nodes)
	assert.True(t, empty.WellFormed())
}

func TestTextReporter_ReportTree(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	require.NoError(t, rep.ReportTree(context.Background(), treeReport(t)))

	want := strings.Join([]string{
		"main.go (go)",
		"List [0,6) h=2 1:1",
		"├─ Text [0,1) 1:1",
		`├─ Pair "()" [1,4) h=1 1:2`,
		`│  ├─ Bracket "(" [1,2) 1:2`,
		"│  ├─ Text [2,3) 1:3",
		`│  └─ Bracket ")" [3,4) 1:4`,
		"├─ Text [4,5) 1:5",
		`└─ InvalidClosingBracket "}" [5,6) 2:1`,
		"8 nodes, 1 pair, height 2, length 6 1 invalid closer",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_MaxDepth(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", MaxDepth: 1})

	require.NoError(t, rep.ReportTree(context.Background(), treeReport(t)))

	out := buf.String()
	assert.Contains(t, out, "... 3 children")
	assert.NotContains(t, out, `Bracket "("`)
	assert.NotContains(t, out, "nodes,", "summary disabled")
}

func TestTextReporter_EmptyTree(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	require.NoError(t, rep.ReportTree(context.Background(), &reporter.TreeReport{Name: "merged", Regions: 0}))
	assert.Equal(t, "merged\n(empty)\n", buf.String())
}

func TestTextReporter_ReportScopes(t *testing.T) {
	doc, asm := loadSample(t)
	all := bracketast.EnclosingScopes(asm.Root, 2)

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowContext: true})

	err := rep.ReportScopes(context.Background(), &reporter.ScopeReport{
		Name:     doc.Name(),
		Language: doc.Language,
		Offset:   2,
		Scopes:   bracketast.TrimScopes(all, 1),
		Total:    len(all),
		Locator:  doc,
	})
	require.NoError(t, err)

	want := strings.Join([]string{
		"main.go (go) offset 2 1:3",
		`  1 Pair "()" [1,4) h=1 1:2`,
		"    f(x)",
		"      ^",
		"showing innermost 1 of 2 scopes",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_ScopesOutside(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	require.NoError(t, rep.ReportScopes(context.Background(), &reporter.ScopeReport{Name: "x", Offset: 99}))
	assert.Contains(t, buf.String(), "offset is outside the tree")
}

func TestJSONReporter_ReportTree(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	require.NoError(t, rep.ReportTree(context.Background(), treeReport(t)))

	var output reporter.JSONTree
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	assert.Equal(t, "main.go", output.Name)
	assert.Equal(t, "go", output.Language)
	assert.Equal(t, 8, output.Summary.Nodes)
	assert.False(t, output.Summary.WellFormed)

	require.NotNil(t, output.Root)
	assert.Equal(t, "List", output.Root.Kind)
	require.Len(t, output.Root.Children, 4)

	pair := output.Root.Children[1]
	assert.Equal(t, "Pair", pair.Kind)
	assert.Equal(t, "paren", pair.Bracket)
	assert.Equal(t, uint64(1), pair.Start)
	assert.Equal(t, uint64(4), pair.End)
	require.Len(t, pair.Children, 3)
	assert.Equal(t, "open_paren", pair.Children[0].Bracket)

	invalid := output.Root.Children[3]
	assert.Equal(t, "InvalidClosingBracket", invalid.Kind)
	assert.Equal(t, "close_brace", invalid.Bracket)
	assert.Equal(t, 2, invalid.Line)
	assert.Equal(t, 1, invalid.Column)
}

func TestJSONReporter_ReportScopes(t *testing.T) {
	doc, asm := loadSample(t)
	scopes := bracketast.EnclosingPairs(asm.Root, 2)

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	err := rep.ReportScopes(context.Background(), &reporter.ScopeReport{
		Name:    doc.Name(),
		Offset:  2,
		Scopes:  scopes,
		Total:   len(scopes),
		Locator: doc,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\n  \"version\"", "indented by default")

	var output reporter.JSONScopes
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, 1, output.Line)
	assert.Equal(t, 3, output.Column)
	require.Len(t, output.Scopes, 1)
	assert.Equal(t, 0, output.Scopes[0].Depth)
	assert.Equal(t, "Pair", output.Scopes[0].Kind)
	assert.Equal(t, uint64(1), output.Scopes[0].Start)
}
