package bracketast

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrContiguityViolation is matched by every *ContiguityError.
	ErrContiguityViolation = errors.New("regions are not contiguous")

	// ErrNilTree is returned when a region to merge has no tree.
	ErrNilTree = errors.New("nil tree")

	// ErrInvalidToken is returned for tokens that cannot be assembled.
	ErrInvalidToken = errors.New("invalid token")
)

// ContiguityError reports the first region whose start does not equal the
// end of the region before it.
type ContiguityError struct {
	// Index is the position of the offending region.
	Index int

	// Expected is the end offset of the previous region.
	Expected uint64

	// Actual is the start offset of the offending region.
	Actual uint64
}

func (e *ContiguityError) Error() string {
	kind := "gap"
	if e.Actual < e.Expected {
		kind = "overlap"
	}
	return fmt.Sprintf("region %d starts at %d, expected %d (%s of %d)",
		e.Index, e.Actual, e.Expected, kind, absDiff(e.Actual, e.Expected))
}

// Is makes errors.Is(err, ErrContiguityViolation) succeed.
func (e *ContiguityError) Is(target error) bool {
	return target == ErrContiguityViolation
}

// TokenError reports a token that failed validation.
type TokenError struct {
	Index  int
	Reason string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token %d: %s", e.Index, e.Reason)
}

func (e *TokenError) Unwrap() error {
	return ErrInvalidToken
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
