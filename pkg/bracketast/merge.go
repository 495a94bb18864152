package bracketast

import "fmt"

// Region places an independently built tree at an absolute start offset.
type Region struct {
	Start uint64
	Tree  Node
}

// End returns the offset just past the region.
func (r Region) End() uint64 {
	if r.Tree == nil {
		return r.Start
	}
	return r.Start + r.Tree.Length()
}

// MergeTrees combines regions laid out left to right into one tree.
//
//   - No regions: returns nil and no error; "no tree" differs from an empty List.
//   - One region: returns a clone of its tree.
//   - Two or more: returns a new List of clones in the given order.
//
// Every region after the first must start exactly where the previous one
// ends; otherwise a *ContiguityError is returned and no tree is built.
// The inputs are never shared with the result.
func MergeTrees(regions []Region) (Node, error) {
	if len(regions) == 0 {
		return nil, nil
	}

	for i, region := range regions {
		if region.Tree == nil {
			return nil, fmt.Errorf("region %d: %w", i, ErrNilTree)
		}
		if i == 0 {
			continue
		}
		if expected := regions[i-1].End(); region.Start != expected {
			return nil, &ContiguityError{Index: i, Expected: expected, Actual: region.Start}
		}
	}

	if len(regions) == 1 {
		return regions[0].Tree.Clone(), nil
	}

	children := make([]Node, len(regions))
	for i, region := range regions {
		children[i] = region.Tree.Clone()
	}
	return NewList(children...), nil
}

// Concat lays trees end to end starting at start and merges them. The
// regions are contiguous by construction.
func Concat(start uint64, trees ...Node) (Node, error) {
	regions := make([]Region, len(trees))
	offset := start
	for i, tree := range trees {
		regions[i] = Region{Start: offset, Tree: tree}
		if tree != nil {
			offset += tree.Length()
		}
	}
	return MergeTrees(regions)
}
