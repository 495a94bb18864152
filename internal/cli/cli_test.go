package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/brackettree/internal/cli"
	"github.com/yaklabco/brackettree/internal/configloader"
	"github.com/yaklabco/brackettree/pkg/bracketast"
	"github.com/yaklabco/brackettree/pkg/fsutil"
	"github.com/yaklabco/brackettree/pkg/reporter"
	"github.com/yaklabco/brackettree/pkg/tokenfile"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

// balancedDoc is "f(x)\n{}" starting at offset 0.
const balancedDoc = `source: main.go
tokens:
  - text: "f"
  - bracket: "("
  - text: "x"
  - bracket: ")"
  - text: "\n"
  - bracket: "{"
  - bracket: "}"
`

// brokenDoc is "a)" starting at offset 7.
const brokenDoc = `start: 7
tokens:
  - text: "a"
  - bracket: ")"
`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-config", "--color", "never"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "brackettree" {
		t.Errorf("expected Use to be 'brackettree', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"inspect", "scopes", "merge", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestRootHelpListsEnvironment(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Environment:")
	assert.Contains(t, out, "BRACKETTREE_OPEN_POLICY")
}

func TestRootHelpSections(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, want := range []string{
		"Tree commands:", "Query commands:", "Setup commands:",
		"Bracket kinds:", "open_paren, close_paren", "open_angle, close_angle",
		"Exit codes:", "65   invalid token, empty document or non-contiguous merge",
		"--no-config",
	} {
		assert.Contains(t, out, want)
	}

	tree := strings.Index(out, "Tree commands:")
	query := strings.Index(out, "Query commands:")
	setup := strings.Index(out, "Setup commands:")
	require.True(t, tree < query && query < setup, "groups out of order:\n%s", out)
	assert.Contains(t, out[tree:query], "inspect")
	assert.Contains(t, out[tree:query], "merge")
	assert.Contains(t, out[query:setup], "scopes")
	assert.Contains(t, out[setup:], "init")
	assert.NotContains(t, out, "\x1b[", "--color never must not emit escapes")
}

func TestSubcommandHelp(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "inspect", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Flags:")
	assert.Contains(t, out, "--open-policy")
	assert.Contains(t, out, "Global Flags:")
	assert.Contains(t, out, "--color string")
	assert.Contains(t, out, "(default auto)")
	assert.NotContains(t, out, "Exit codes:")
	assert.NotContains(t, out, "Environment:")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "test-version")
	assert.Contains(t, out, "test-commit")
}

func TestInspect_Text(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, t.TempDir(), "tokens.yml", balancedDoc)

	out, err := execute(t, "inspect", path)
	require.NoError(t, err)

	assert.Contains(t, out, "main.go (go)")
	assert.Contains(t, out, `Pair "()" [1,4) h=1 1:2`)
	assert.Contains(t, out, `Pair "{}" [5,7) h=1 2:1`)
	assert.Contains(t, out, "balanced")
}

func TestInspect_JSONStrict(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, t.TempDir(), "broken.yml", brokenDoc)

	out, err := execute(t, "inspect", path, "--format", "json", "--strict")
	require.ErrorIs(t, err, cli.ErrMalformedTree)
	assert.Equal(t, cli.ExitMalformedTree, cli.ExitCode(err))

	var tree reporter.JSONTree
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, 1, tree.Summary.UnmatchedClose)
	require.NotNil(t, tree.Root)
	assert.Equal(t, uint64(7), tree.Root.Start)
	assert.Equal(t, "InvalidClosingBracket", tree.Root.Children[1].Kind)
}

func TestInspect_OpenPolicyFlag(t *testing.T) {
	t.Parallel()

	doc := "tokens:\n  - text: a\n  - bracket: \"(\"\n  - text: b\n"
	path := writeDoc(t, t.TempDir(), "open.yml", doc)

	out, err := execute(t, "inspect", path, "--open-policy", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Text [0,3)")
	assert.NotContains(t, out, "Bracket")

	out, err = execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, `Bracket "(" [1,2)`)
	assert.Contains(t, out, "1 unmatched opener")
}

func TestInspect_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "inspect", filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestInspect_InvalidToken(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, t.TempDir(), "bad.yml", "tokens:\n  - bracket: \"«\"\n")

	_, err := execute(t, "inspect", path)
	require.ErrorIs(t, err, bracketast.ErrInvalidToken)
	assert.Equal(t, cli.ExitDataError, cli.ExitCode(err))
}

func TestInspect_EmptyTokenList(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, t.TempDir(), "empty.yml", "source: main.go\ntokens: []\n")

	_, err := execute(t, "inspect", path)
	require.ErrorIs(t, err, tokenfile.ErrEmptyDocument)
	assert.Equal(t, cli.ExitDataError, cli.ExitCode(err))
}

func TestScopes_Offset(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, t.TempDir(), "tokens.yml", balancedDoc)

	out, err := execute(t, "scopes", path, "--offset", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "main.go (go) offset 2 1:3")
	assert.Contains(t, out, "0 List [0,7)")
	assert.Contains(t, out, `1 Pair "()" [1,4)`)
	assert.Contains(t, out, "f(x)")
}

func TestScopes_LineColumnPairsOnly(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, t.TempDir(), "tokens.yml", balancedDoc)

	out, err := execute(t, "scopes", path, "--line", "2", "--column", "2", "--pairs-only", "--format", "json")
	require.NoError(t, err)

	var scopes reporter.JSONScopes
	require.NoError(t, json.Unmarshal([]byte(out), &scopes))
	assert.Equal(t, uint64(6), scopes.Offset)
	require.Len(t, scopes.Scopes, 1)
	assert.Equal(t, "Pair", scopes.Scopes[0].Kind)
	assert.Equal(t, "brace", scopes.Scopes[0].Bracket)
}

func TestScopes_AbsoluteOffsets(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, t.TempDir(), "broken.yml", brokenDoc)

	out, err := execute(t, "scopes", path, "--offset", "8", "--format", "json", "--max-scopes", "1")
	require.NoError(t, err)

	var scopes reporter.JSONScopes
	require.NoError(t, json.Unmarshal([]byte(out), &scopes))
	assert.Equal(t, 1, scopes.Total)
	require.Len(t, scopes.Scopes, 1)
	assert.Equal(t, uint64(7), scopes.Scopes[0].Start)
	assert.Equal(t, uint64(9), scopes.Scopes[0].End)

	out, err = execute(t, "scopes", path, "--offset", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "offset is outside the tree")
}

func TestScopes_RequiresPosition(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, t.TempDir(), "tokens.yml", balancedDoc)

	_, err := execute(t, "scopes", path)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	noText := writeDoc(t, t.TempDir(), "opaque.yml", "tokens:\n  - length: 4\n")
	_, err = execute(t, "scopes", noText, "--line", "1")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Contains(t, err.Error(), "no source text")
}

func TestMerge_Contiguous(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeDoc(t, dir, "a.yml", balancedDoc)
	second := writeDoc(t, dir, "b.yml", brokenDoc)

	out, err := execute(t, "merge", first, second, "--contiguous", "--format", "json")
	require.NoError(t, err)

	var tree reporter.JSONTree
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, 2, tree.Regions)
	assert.Equal(t, uint64(9), tree.Summary.Length)
	require.NotNil(t, tree.Root)
	assert.Equal(t, "List", tree.Root.Kind)
	require.Len(t, tree.Root.Children, 2)
	assert.Equal(t, uint64(7), tree.Root.Children[1].Start)
	assert.Equal(t, 1, tree.Summary.UnmatchedClose)
}

func TestMerge_DocumentStarts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeDoc(t, dir, "a.yml", balancedDoc)
	second := writeDoc(t, dir, "b.yml", brokenDoc)

	// a.yml covers [0,7) and b.yml declares start 7.
	out, err := execute(t, "merge", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, "merged (2 regions)")
}

func TestMerge_ContiguityViolation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeDoc(t, dir, "a.yml", balancedDoc)
	second := writeDoc(t, dir, "b.yml", brokenDoc)

	out, err := execute(t, "merge", first, second, "--starts", "0,9")
	require.ErrorIs(t, err, bracketast.ErrContiguityViolation)
	assert.Equal(t, cli.ExitDataError, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "gap of 2")
	assert.Empty(t, out, "a failed merge prints nothing")

	var contErr *bracketast.ContiguityError
	require.True(t, errors.As(err, &contErr))
	assert.Equal(t, 1, contErr.Index)

	_, err = execute(t, "merge", first, second, "--starts", "0")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestMerge_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, dir, "01-head.yml", balancedDoc)
	writeDoc(t, dir, "02-tail.yml", brokenDoc)
	writeDoc(t, dir, "draft.yml", "tokens:\n  - bracket: nope\n")

	out, err := execute(t, "merge", dir, "--exclude", "draft.*", "--jobs", "2", "--format", "json")
	require.NoError(t, err)

	var tree reporter.JSONTree
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, 2, tree.Regions)
	assert.Equal(t, uint64(9), tree.Summary.Length)

	_, err = execute(t, "merge", dir)
	require.ErrorIs(t, err, bracketast.ErrInvalidToken)
	assert.Equal(t, cli.ExitDataError, cli.ExitCode(err))

	_, err = execute(t, "merge", t.TempDir())
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), configloader.DefaultConfigFile)

	_, err := execute(t, "init", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# brackettree configuration"))

	_, err = execute(t, "init", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "init", "--output", path, "--force")
	require.NoError(t, err)
}

func TestExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "open.yml", "tokens:\n  - text: a\n  - bracket: \"(\"\n  - text: b\n")
	cfgPath := writeDoc(t, dir, "custom.yml", "open_policy: text\n")

	out, err := execute(t, "--config", cfgPath, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Text [0,3)")

	badCfg := writeDoc(t, dir, "bad.yml", "open_policy: sometimes\n")
	_, err = execute(t, "--config", badCfg, "inspect", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(errors.New("boom")))
	assert.Equal(t, cli.ExitDataError, cli.ExitCode(&bracketast.ContiguityError{Index: 1}))
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(&configloader.ValidationError{Message: "bad"}))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(fmt.Errorf("read: %w", fsutil.ErrIsDirectory)))
}

func TestInspect_Directory(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "inspect", t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}
