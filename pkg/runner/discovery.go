package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	pathpkg "path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover expands opts.Paths into absolute token file paths. Files named
// directly keep their argument order; each directory contributes its
// matching files in sorted order at the directory's position. Duplicates
// are dropped after their first occurrence.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]bool)
	var files []string

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		found := []string{path}
		if info.IsDir() {
			w := newWalker(workDir, opts)
			if err := w.walk(ctx, path); err != nil {
				return nil, fmt.Errorf("walk directory %s: %w", path, err)
			}
			found = w.files
			slices.Sort(found)
		}

		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// walker collects token files below one directory argument. Hidden entries
// and excluded paths are skipped. Directory symlinks are followed only when
// enabled, and each real directory is walked at most once.
type walker struct {
	workDir        string
	extensions     []string
	exclude        []string
	followSymlinks bool
	visited        map[string]bool
	files          []string
}

func newWalker(workDir string, opts Options) *walker {
	return &walker{
		workDir:        workDir,
		extensions:     opts.effectiveExtensions(),
		exclude:        opts.ExcludeGlobs,
		followSymlinks: opts.FollowSymlinks,
		visited:        make(map[string]bool),
	}
}

func (w *walker) walk(ctx context.Context, root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if w.visited[real] {
			return nil
		}
		w.visited[real] = true
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch {
		case walkErr != nil:
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		case path != root && strings.HasPrefix(entry.Name(), "."):
			return skipEntry(entry)
		case matchesAny(relativeTo(w.workDir, path), w.exclude):
			return skipEntry(entry)
		case entry.IsDir():
			return nil
		case entry.Type()&fs.ModeSymlink != 0:
			return w.symlink(ctx, path)
		case hasMatchingExtension(path, w.extensions):
			w.files = append(w.files, path)
		}
		return nil
	})
}

// symlink handles a link met during a walk. Broken links are ignored.
func (w *walker) symlink(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}
	if !info.IsDir() {
		if hasMatchingExtension(path, w.extensions) {
			w.files = append(w.files, path)
		}
		return nil
	}
	if !w.followSymlinks {
		return nil
	}

	// WalkDir does not descend through symlinks, so walk the target.
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // unresolvable symlinks are skipped
	}
	return w.walk(ctx, target)
}

func skipEntry(entry fs.DirEntry) error {
	if entry.IsDir() {
		return filepath.SkipDir
	}
	return nil
}

func relativeTo(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated relative path against a glob.
// Besides path.Match syntax it understands a leading "**/" (any depth)
// and a trailing "/**" (everything below a directory). Patterns without
// a slash also match the base name.
func matchGlob(relPath, pattern string) bool {
	relPath = filepath.ToSlash(relPath)
	pattern = filepath.ToSlash(pattern)

	if pattern == "**" {
		return true
	}

	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if !strings.Contains(prefix, "*") {
			return relPath == prefix || strings.HasPrefix(relPath, prefix+"/")
		}
		parts := strings.Split(relPath, "/")
		for i := 1; i <= len(parts); i++ {
			if matchGlob(strings.Join(parts[:i], "/"), prefix) {
				return true
			}
		}
		return false
	}

	if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
		parts := strings.Split(relPath, "/")
		for i := range parts {
			if matchGlob(strings.Join(parts[i:], "/"), suffix) {
				return true
			}
		}
		return false
	}

	if matched, err := pathpkg.Match(pattern, relPath); err == nil && matched {
		return true
	}
	if strings.Contains(pattern, "/") {
		return false
	}
	matched, err := pathpkg.Match(pattern, pathpkg.Base(relPath))
	return err == nil && matched
}
