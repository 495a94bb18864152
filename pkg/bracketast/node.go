// Package bracketast provides an immutable tree of a document's bracket structure.
// It defines:
// - Leaves: Text spans, Bracket tokens and InvalidClosingBracket error nodes
// - Pair: a matched opening and closing bracket around at most one child
// - List: an ordered run of sibling subtrees with no enclosing bracket
//
// Nodes carry only span lengths; absolute offsets are derived while walking
// down from a root. Once built a tree is never modified, so it can be shared
// between goroutines without locking.
package bracketast

// Node is one of *Text, *Bracket, *Pair, *InvalidClosingBracket or *List.
// The set of implementations is closed.
type Node interface {
	// Kind returns the variant discriminant.
	Kind() NodeKind

	// Length returns the span length covered by the node.
	Length() uint64

	// ChildCount returns the number of structural children. A Pair counts its
	// brackets, so it reports 2 without a child and 3 with one.
	ChildCount() int

	// Child returns the child in the given slot. Leaves have no slots. Pair
	// slots are fixed: PairOpeningSlot, PairChildSlot, PairClosingSlot. A
	// Pair without an inner subtree reports ChildCount 2 yet keeps its
	// closing bracket at PairClosingSlot, so Child(PairChildSlot) is absent
	// and Child(ChildCount()-1) is not the closing bracket.
	Child(index int) (Node, bool)

	// Children returns the present children in source order. Its indices
	// match Child slots for every node except a Pair without an inner
	// subtree, where Children()[1] is the closing bracket.
	Children() []Node

	// Height is 0 for leaves and one more than the tallest child otherwise.
	Height() int

	// ListHeight is Height for a List and 0 for every other kind.
	ListHeight() int

	// Clone returns a copy that shares no storage with the receiver.
	Clone() Node

	node()
}

// Pair child slots.
const (
	PairOpeningSlot = 0
	PairChildSlot   = 1
	PairClosingSlot = 2
)

// CloneTree returns a deep copy of n, or nil if n is nil.
func CloneTree(n Node) Node {
	if n == nil {
		return nil
	}
	return n.Clone()
}

// Equal reports whether two trees have the same shape, kinds, bracket kinds
// and lengths. Node identity is not considered.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.Length() != b.Length() {
		return false
	}

	switch x := a.(type) {
	case *Bracket:
		return x.bracket == b.(*Bracket).bracket
	case *InvalidClosingBracket:
		return x.bracket == b.(*InvalidClosingBracket).bracket
	case *Pair:
		y := b.(*Pair)
		return Equal(x.opening, y.opening) &&
			Equal(x.closing, y.closing) &&
			Equal(x.child, y.child)
	case *List:
		y := b.(*List)
		if len(x.children) != len(y.children) {
			return false
		}
		for i := range x.children {
			if !Equal(x.children[i], y.children[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
