package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/brackettree/internal/configloader"
	"github.com/yaklabco/brackettree/pkg/bracketast"
	"github.com/yaklabco/brackettree/pkg/fsutil"
	"github.com/yaklabco/brackettree/pkg/tokenfile"
)

// Exit codes for brackettree.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitMalformedTree indicates --strict found unmatched brackets.
	ExitMalformedTree = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates a bad token document or a failed merge.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

// exitCodeDescriptions is the exit code table shown in the root help.
//
//nolint:gochecknoglobals // Read-only lookup table.
var exitCodeDescriptions = []struct {
	code        int
	description string
}{
	{ExitSuccess, "success"},
	{ExitMalformedTree, "unmatched brackets under --strict"},
	{ExitInvalidUsage, "invalid flags or arguments"},
	{ExitDataError, "invalid token, empty document or non-contiguous merge"},
	{ExitInternalError, "internal error"},
	{ExitIOError, "token file missing, unreadable or a directory"},
	{ExitConfigError, "invalid or unreadable configuration"},
}

// ErrMalformedTree is returned by --strict commands when the tree contains
// unmatched brackets. It only signals the exit code.
var ErrMalformedTree = errors.New("tree contains unmatched brackets")

// ErrInvalidUsage marks errors caused by bad flags or arguments.
var ErrInvalidUsage = errors.New("invalid usage")

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMalformedTree):
		return ExitMalformedTree
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr), errors.Is(err, errConfigLoad):
		return ExitConfigError
	case errors.Is(err, bracketast.ErrContiguityViolation),
		errors.Is(err, bracketast.ErrInvalidToken),
		errors.Is(err, bracketast.ErrNilTree),
		errors.Is(err, tokenfile.ErrEmptyDocument):
		return ExitDataError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
