package bracketast

// Scope is a Pair or List that encloses a queried offset.
type Scope struct {
	// Node is the enclosing Pair or List.
	Node Node

	// Start is the absolute offset where the node begins (inclusive).
	Start uint64

	// End is the absolute offset where the node ends (exclusive).
	End uint64

	// Depth is the position in the chain; the root scope has depth 0.
	Depth int
}

// Contains returns true if offset lies within [Start, End).
func (s Scope) Contains(offset uint64) bool {
	return offset >= s.Start && offset < s.End
}

// IsPair returns true if the scope is a bracket pair.
func (s Scope) IsPair() bool {
	return s.Node != nil && s.Node.Kind() == NodePair
}

// NodeAt returns the deepest node covering offset, with root starting at
// offset 0. The second result is false when offset is past the end of the
// tree. Descending through a List is a binary search, so the cost grows
// with depth and the log of fan-out.
func NodeAt(root Node, offset uint64) (Located, bool) {
	var found Located
	ok := descend(root, offset, func(n Node, start uint64) {
		found = Located{Node: n, Start: start}
	})
	return found, ok
}

// EnclosingScopes returns the chain of Pair and List nodes containing
// offset, outermost first.
func EnclosingScopes(root Node, offset uint64) []Scope {
	var scopes []Scope
	descend(root, offset, func(n Node, start uint64) {
		if n.Kind() != NodePair && n.Kind() != NodeList {
			return
		}
		scopes = append(scopes, Scope{
			Node:  n,
			Start: start,
			End:   start + n.Length(),
			Depth: len(scopes),
		})
	})
	return scopes
}

// EnclosingPairs is EnclosingScopes restricted to bracket pairs. Depth is
// renumbered so the outermost pair has depth 0.
func EnclosingPairs(root Node, offset uint64) []Scope {
	var pairs []Scope
	for _, scope := range EnclosingScopes(root, offset) {
		if !scope.IsPair() {
			continue
		}
		scope.Depth = len(pairs)
		pairs = append(pairs, scope)
	}
	return pairs
}

// TrimScopes keeps the innermost limit scopes. A limit of zero or less keeps
// them all. The input slice is not modified.
func TrimScopes(scopes []Scope, limit int) []Scope {
	if limit <= 0 || len(scopes) <= limit {
		return scopes
	}
	trimmed := make([]Scope, limit)
	copy(trimmed, scopes[len(scopes)-limit:])
	return trimmed
}

// descend visits every node on the path from root to the deepest node
// covering offset and reports whether offset was inside root.
func descend(root Node, offset uint64, visit func(n Node, start uint64)) bool {
	if root == nil || offset >= root.Length() {
		return false
	}

	node := root
	var start uint64
	for node != nil {
		visit(node, start)

		switch n := node.(type) {
		case *List:
			idx := n.ChildIndexAt(offset - start)
			if idx < 0 {
				return true
			}
			start += n.starts[idx]
			node = n.children[idx]
		case *Pair:
			node = nil
			childStart := start
			for _, child := range n.Children() {
				if offset < childStart+child.Length() {
					start = childStart
					node = child
					break
				}
				childStart += child.Length()
			}
		default:
			node = nil
		}
	}

	return true
}
