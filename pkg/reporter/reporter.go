// Package reporter renders bracket trees and scope chains.
package reporter

import (
	"context"
	"fmt"
)

// Reporter formats and writes trees and scope chains.
type Reporter interface {
	// ReportTree writes a whole tree.
	ReportTree(ctx context.Context, report *TreeReport) error

	// ReportScopes writes the scopes enclosing an offset.
	ReportScopes(ctx context.Context, report *ScopeReport) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
