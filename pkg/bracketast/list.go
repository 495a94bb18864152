package bracketast

import "sort"

// List is an ordered run of sibling subtrees with no enclosing bracket of
// its own, such as top-level file content or several items inside a Pair.
// Children abut: each starts where the previous one ends.
type List struct {
	length   uint64
	height   int
	children []Node

	// starts[i] is the offset of children[i] relative to the list start.
	starts []uint64
}

// NewList creates a list that owns the given children. The slice is copied
// and nil entries are skipped.
func NewList(children ...Node) *List {
	owned := make([]Node, 0, len(children))
	starts := make([]uint64, 0, len(children))

	var length uint64
	maxChild := -1
	for _, child := range children {
		if child == nil {
			continue
		}
		owned = append(owned, child)
		starts = append(starts, length)
		length += child.Length()
		maxChild = max(maxChild, child.Height())
	}

	return &List{
		length:   length,
		height:   1 + max(maxChild, 0),
		children: owned,
		starts:   starts,
	}
}

func (l *List) Kind() NodeKind  { return NodeList }
func (l *List) Length() uint64  { return l.length }
func (l *List) ChildCount() int { return len(l.children) }
func (l *List) Height() int     { return l.height }
func (l *List) ListHeight() int { return l.height }
func (l *List) node()           {}

// IsEmpty returns true for a list without children. Only an empty token
// stream produces one.
func (l *List) IsEmpty() bool { return len(l.children) == 0 }

func (l *List) Child(index int) (Node, bool) {
	if index < 0 || index >= len(l.children) {
		return nil, false
	}
	return l.children[index], true
}

func (l *List) Children() []Node {
	out := make([]Node, len(l.children))
	copy(out, l.children)
	return out
}

// ChildStart returns the offset of the child at index relative to the
// start of the list.
func (l *List) ChildStart(index int) (uint64, bool) {
	if index < 0 || index >= len(l.starts) {
		return 0, false
	}
	return l.starts[index], true
}

// ChildIndexAt returns the index of the child covering the relative offset,
// or -1 if the offset is outside the list. Zero-length children never cover
// an offset.
func (l *List) ChildIndexAt(offset uint64) int {
	if offset >= l.length {
		return -1
	}
	// First child whose end lies past the offset.
	idx := sort.Search(len(l.children), func(i int) bool {
		return l.starts[i]+l.children[i].Length() > offset
	})
	if idx >= len(l.children) {
		return -1
	}
	return idx
}

func (l *List) Clone() Node {
	children := make([]Node, len(l.children))
	for i, child := range l.children {
		children[i] = child.Clone()
	}
	starts := make([]uint64, len(l.starts))
	copy(starts, l.starts)

	return &List{
		length:   l.length,
		height:   l.height,
		children: children,
		starts:   starts,
	}
}
