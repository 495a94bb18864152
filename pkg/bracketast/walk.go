package bracketast

// WalkFunc is the function signature for Walk callbacks.
// start is the absolute offset of n given the start passed to Walk.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node, start uint64) error

// Walk performs a pre-order traversal of the tree rooted at root, which
// begins at offset start. If walkFunc returns a non-nil error the walk
// stops immediately and returns that error.
func Walk(root Node, start uint64, walkFunc WalkFunc) error {
	return WalkWithContext(root, start, walkFunc, nil)
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(root Node, start uint64, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root, start); err != nil {
			return err
		}
	}

	offset := start
	for _, child := range root.Children() {
		if err := WalkWithContext(child, offset, enter, leave); err != nil {
			return err
		}
		offset += child.Length()
	}

	if leave != nil {
		if err := leave(root, start); err != nil {
			return err
		}
	}

	return nil
}

// Located is a node together with its absolute start offset.
type Located struct {
	Node  Node
	Start uint64
}

// End returns the offset just past the node.
func (l Located) End() uint64 {
	return l.Start + l.Node.Length()
}

// FindAll returns all nodes matching the predicate, in pre-order.
func FindAll(root Node, predicate func(n Node) bool) []Located {
	var result []Located

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, 0, func(n Node, start uint64) error {
		if predicate(n) {
			result = append(result, Located{Node: n, Start: start})
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate in pre-order.
// The second result is false if nothing matched.
func FindFirst(root Node, predicate func(n Node) bool) (Located, bool) {
	var found Located
	var ok bool

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, 0, func(n Node, start uint64) error {
		if predicate(n) {
			found = Located{Node: n, Start: start}
			ok = true
			return errStopWalk
		}
		return nil
	})

	return found, ok
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root Node, kind NodeKind) []Located {
	return FindAll(root, func(n Node) bool {
		return n.Kind() == kind
	})
}

// IsWellFormed returns true if every bracket in the tree is part of a Pair:
// there is no InvalidClosingBracket and no standalone Bracket leaf left by
// an unmatched opener.
func IsWellFormed(root Node) bool {
	if root == nil {
		return true
	}

	switch n := root.(type) {
	case *Bracket, *InvalidClosingBracket:
		return false
	case *Pair:
		return IsWellFormed(n.child)
	case *List:
		for _, child := range n.children {
			if !IsWellFormed(child) {
				return false
			}
		}
	}

	return true
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
