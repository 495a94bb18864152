package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints the source line under each scope when the
	// document carries source text.
	ShowContext bool

	// ShowSummary prints aggregate tree statistics after the tree.
	ShowSummary bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// MaxDepth limits how deep the text tree is printed. Zero prints everything.
	MaxDepth int

	// Width truncates text lines. Zero detects the terminal width, negative disables.
	Width int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
	}
}
