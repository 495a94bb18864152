package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/brackettree/pkg/bracketast"
	"github.com/yaklabco/brackettree/pkg/runner"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_PreservesOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var paths []string
	for i := range 12 {
		// Later files get more tokens so workers finish out of order.
		content := "tokens:\n"
		for range 12 - i {
			content += "  - bracket: \"(\"\n  - text: x\n  - bracket: \")\"\n"
		}
		paths = append(paths, writeDoc(t, dir, fmt.Sprintf("r%02d.yml", i), content))
	}

	result, err := runner.Run(context.Background(), runner.Options{Paths: paths, Jobs: 4})
	require.NoError(t, err)
	require.NoError(t, result.Err())

	require.Len(t, result.Files, len(paths))
	for i, outcome := range result.Files {
		assert.Equal(t, paths[i], outcome.Path)
		assert.Equal(t, 12-i, outcome.Assembly.Root.ChildCount())
	}
	assert.Equal(t, 12, result.Stats.FilesLoaded)
	assert.True(t, result.IsWellFormed())
}

func TestRun_AssembleOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "open.yml", "tokens:\n  - text: a\n  - bracket: \"[\"\n  - text: b\n")

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:    []string{path},
		Assemble: bracketast.AssembleOptions{OpenPolicy: bracketast.OpenAsText, CoalesceText: true},
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	root := result.Files[0].Assembly.Root
	assert.Equal(t, 1, root.ChildCount())
	assert.Equal(t, 1, result.Stats.UnmatchedOpen)
	assert.False(t, result.IsWellFormed())
	assert.Equal(t, 3, result.Stats.Tokens)
}

func TestRun_FileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeDoc(t, dir, "good.yml", "tokens:\n  - text: a\n")
	bad := writeDoc(t, dir, "bad.yml", "tokens:\n  - bracket: nope\n")

	result, err := runner.Run(context.Background(), runner.Options{Paths: []string{good, bad}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesLoaded)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	require.ErrorIs(t, result.Err(), bracketast.ErrInvalidToken)
	assert.Contains(t, result.Err().Error(), "bad.yml")
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.NoError(t, result.Err())
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "a.yml", "tokens:\n  - text: a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{Paths: []string{path}})
	require.ErrorIs(t, err, context.Canceled)
}
