// Package runner loads and assembles many token documents concurrently.
package runner

import "github.com/yaklabco/brackettree/pkg/bracketast"

// Options controls multi-document loading.
type Options struct {
	// Paths are the user-specified token files or directories, in region order.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up when walking a directory. Defaults to DefaultExtensions().
	// Files named explicitly in Paths are always loaded.
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories
	// found while walking.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Assemble is passed to every document's Assemble call.
	Assemble bracketast.AssembleOptions
}

// DefaultExtensions returns the extensions of token documents.
func DefaultExtensions() []string {
	return []string{".yml", ".yaml", ".json"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
