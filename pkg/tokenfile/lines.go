package tokenfile

import "sort"

// LineInfo holds metadata for a single line of reconstructed text.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of text).
	EndOffset int
}

// BuildLines constructs line metadata from text.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineAt converts an absolute offset to 1-based line and column numbers.
// Offsets are relative to the source file, so Start is subtracted first.
// Column counts bytes, not runes. Returns (0, 0) when the document has no
// text or the offset falls outside it.
func (d *Document) LineAt(offset uint64) (int, int) {
	if len(d.lines) == 0 || offset < d.Start {
		return 0, 0
	}

	rel := offset - d.Start
	if rel > uint64(len(d.Text)) {
		return 0, 0
	}
	pos := int(rel)

	lineIdx := sort.Search(len(d.lines), func(i int) bool {
		return d.lines[i].EndOffset > pos
	})
	if lineIdx >= len(d.lines) {
		lineIdx = len(d.lines) - 1
	}

	return lineIdx + 1, pos - d.lines[lineIdx].StartOffset + 1
}

// LineContent returns a 1-based line of the reconstructed text without its newline.
// Returns nil if the line number is out of range.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.lines) {
		return nil
	}

	info := d.lines[line-1]
	return d.Text[info.StartOffset:info.NewlineStart]
}

// LineCount returns the number of lines in the reconstructed text.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Offset converts 1-based line and column numbers to an absolute offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (d *Document) Offset(line, col int) (uint64, bool) {
	if line < 1 || line > len(d.lines) || col < 1 {
		return 0, false
	}

	info := d.lines[line-1]
	pos := info.StartOffset + col - 1

	// Allow the column just past the last byte for cursor positioning.
	if pos > info.EndOffset {
		return 0, false
	}

	return d.Start + uint64(pos), true
}
