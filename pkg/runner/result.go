package runner

import (
	"github.com/yaklabco/brackettree/pkg/bracketast"
	"github.com/yaklabco/brackettree/pkg/tokenfile"
)

// FileOutcome is the loaded document and its assembled tree.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Document is the decoded token document. Nil when Error is set.
	Document *tokenfile.Document

	// Assembly is the tree built from Document. Nil when Error is set.
	Assembly *bracketast.Assembly

	// Error is set if the file could not be loaded or assembled.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesLoaded is the number of files assembled successfully.
	FilesLoaded int

	// FilesErrored is the number of files that failed.
	FilesErrored int

	// Tokens is the total token count across loaded files.
	Tokens int

	// UnmatchedOpen sums the unmatched opening brackets of all trees.
	UnmatchedOpen int

	// UnmatchedClose sums the invalid closing brackets of all trees.
	UnmatchedClose int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Err returns the error of the first failed file in discovery order.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			return outcome.Error
		}
	}
	return nil
}

// IsWellFormed reports whether every loaded tree is free of unmatched brackets.
func (r *Result) IsWellFormed() bool {
	if r == nil {
		return true
	}
	return r.Stats.UnmatchedOpen == 0 && r.Stats.UnmatchedClose == 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Assembly == nil {
		return
	}

	r.Stats.FilesLoaded++
	r.Stats.Tokens += len(outcome.Document.Tokens)
	r.Stats.UnmatchedOpen += outcome.Assembly.UnmatchedOpen
	r.Stats.UnmatchedClose += outcome.Assembly.UnmatchedClose
}
