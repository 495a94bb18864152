package bracketast

// Text is an opaque run of source text with no sub-structure.
type Text struct {
	length uint64
}

// NewText creates a text leaf.
func NewText(length uint64) *Text {
	return &Text{length: length}
}

func (t *Text) Kind() NodeKind         { return NodeText }
func (t *Text) Length() uint64         { return t.length }
func (t *Text) ChildCount() int        { return 0 }
func (t *Text) Child(int) (Node, bool) { return nil, false }
func (t *Text) Children() []Node       { return nil }
func (t *Text) Height() int            { return 0 }
func (t *Text) ListHeight() int        { return 0 }
func (t *Text) Clone() Node            { return t.clone() }
func (t *Text) clone() *Text           { return &Text{length: t.length} }
func (t *Text) node()                  {}

// Bracket is a single bracket token. Inside a Pair it is the opening or
// closing half; standing alone it is an opening bracket that never found
// its partner.
type Bracket struct {
	length  uint64
	bracket BracketKind
}

// NewBracket creates a bracket leaf.
func NewBracket(kind BracketKind, length uint64) *Bracket {
	return &Bracket{length: length, bracket: kind}
}

// BracketKind returns the token classification.
func (b *Bracket) BracketKind() BracketKind { return b.bracket }

func (b *Bracket) Kind() NodeKind         { return NodeBracket }
func (b *Bracket) Length() uint64         { return b.length }
func (b *Bracket) ChildCount() int        { return 0 }
func (b *Bracket) Child(int) (Node, bool) { return nil, false }
func (b *Bracket) Children() []Node       { return nil }
func (b *Bracket) Height() int            { return 0 }
func (b *Bracket) ListHeight() int        { return 0 }
func (b *Bracket) Clone() Node            { return b.clone() }
func (b *Bracket) node()                  {}

func (b *Bracket) clone() *Bracket {
	return &Bracket{length: b.length, bracket: b.bracket}
}

// InvalidClosingBracket is a closing bracket with no opening bracket in
// scope. Malformed input yields this node instead of failing construction.
type InvalidClosingBracket struct {
	length  uint64
	bracket BracketKind
}

// NewInvalidClosingBracket creates an error leaf for an unmatched closing bracket.
func NewInvalidClosingBracket(kind BracketKind, length uint64) *InvalidClosingBracket {
	return &InvalidClosingBracket{length: length, bracket: kind}
}

// BracketKind returns the classification of the unmatched token.
func (n *InvalidClosingBracket) BracketKind() BracketKind { return n.bracket }

func (n *InvalidClosingBracket) Kind() NodeKind         { return NodeInvalidClosingBracket }
func (n *InvalidClosingBracket) Length() uint64         { return n.length }
func (n *InvalidClosingBracket) ChildCount() int        { return 0 }
func (n *InvalidClosingBracket) Child(int) (Node, bool) { return nil, false }
func (n *InvalidClosingBracket) Children() []Node       { return nil }
func (n *InvalidClosingBracket) Height() int            { return 0 }
func (n *InvalidClosingBracket) ListHeight() int        { return 0 }
func (n *InvalidClosingBracket) node()                  {}

func (n *InvalidClosingBracket) Clone() Node {
	return &InvalidClosingBracket{length: n.length, bracket: n.bracket}
}
