package bracketast

// Pair is a matched opening and closing bracket wrapping at most one child.
// Several enclosed items are grouped in a List before becoming the child.
type Pair struct {
	length  uint64
	height  int
	opening *Bracket
	closing *Bracket
	child   Node
}

// NewPair creates a pair from already matched brackets and an optional child.
// The caller decides the brackets match; NewPair does not check families.
// An unmatched closing bracket belongs in an InvalidClosingBracket instead.
// Both brackets are required; NewPair panics if either is nil.
func NewPair(opening, closing *Bracket, child Node) *Pair {
	if opening == nil || closing == nil {
		panic("bracketast: NewPair requires both an opening and a closing bracket")
	}
	length := opening.length + closing.length
	height := 1
	if child != nil {
		length += child.Length()
		height += child.Height()
	}

	return &Pair{
		length:  length,
		height:  height,
		opening: opening,
		closing: closing,
		child:   child,
	}
}

// Opening returns the opening bracket.
func (p *Pair) Opening() *Bracket { return p.opening }

// Closing returns the closing bracket.
func (p *Pair) Closing() *Bracket { return p.closing }

// Inner returns the enclosed subtree, or nil for an empty pair.
func (p *Pair) Inner() Node { return p.child }

// HasInner returns true if the pair encloses a subtree.
func (p *Pair) HasInner() bool { return p.child != nil }

func (p *Pair) Kind() NodeKind  { return NodePair }
func (p *Pair) Length() uint64  { return p.length }
func (p *Pair) Height() int     { return p.height }
func (p *Pair) ListHeight() int { return 0 }
func (p *Pair) node()           {}

// ChildCount reports 3 when the pair has an inner subtree and 2 otherwise.
func (p *Pair) ChildCount() int {
	if p.child != nil {
		return 3
	}
	return 2
}

// Child uses fixed slots so the closing bracket is always at PairClosingSlot,
// whether or not an inner subtree is present.
func (p *Pair) Child(index int) (Node, bool) {
	switch index {
	case PairOpeningSlot:
		return p.opening, true
	case PairChildSlot:
		if p.child == nil {
			return nil, false
		}
		return p.child, true
	case PairClosingSlot:
		return p.closing, true
	default:
		return nil, false
	}
}

func (p *Pair) Children() []Node {
	if p.child != nil {
		return []Node{p.opening, p.child, p.closing}
	}
	return []Node{p.opening, p.closing}
}

func (p *Pair) Clone() Node {
	return &Pair{
		length:  p.length,
		height:  p.height,
		opening: p.opening.clone(),
		closing: p.closing.clone(),
		child:   CloneTree(p.child),
	}
}
