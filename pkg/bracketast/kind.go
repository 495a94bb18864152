package bracketast

import "fmt"

// NodeKind identifies which of the five node variants a Node is.
type NodeKind uint16

// Node kinds. The set is closed.
const (
	NodeText NodeKind = iota
	NodeBracket
	NodePair
	NodeInvalidClosingBracket
	NodeList
)

func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "Text"
	case NodeBracket:
		return "Bracket"
	case NodePair:
		return "Pair"
	case NodeInvalidClosingBracket:
		return "InvalidClosingBracket"
	case NodeList:
		return "List"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint16(k))
	}
}

// IsLeaf returns true for kinds that never have structural children.
func (k NodeKind) IsLeaf() bool {
	return k == NodeText || k == NodeBracket || k == NodeInvalidClosingBracket
}

// BracketFamily groups opening and closing brackets that can pair with each other.
type BracketFamily uint8

// Bracket families.
const (
	FamilyParen BracketFamily = iota
	FamilyBrace
	FamilySquare
	FamilyAngle
)

func (f BracketFamily) String() string {
	switch f {
	case FamilyParen:
		return "paren"
	case FamilyBrace:
		return "brace"
	case FamilySquare:
		return "square"
	case FamilyAngle:
		return "angle"
	default:
		return fmt.Sprintf("BracketFamily(%d)", uint8(f))
	}
}

// BracketKind classifies a bracket token by family and role.
// The low bit is the role (0 open, 1 close); the remaining bits are the family.
// Values are supplied by an external tokenizer and are opaque to the tree.
type BracketKind uint8

// Bracket kinds.
const (
	OpenParen BracketKind = iota
	CloseParen
	OpenBrace
	CloseBrace
	OpenSquare
	CloseSquare
	OpenAngle
	CloseAngle
)

// bracketGlyphs maps each kind to its conventional source glyph.
//
//nolint:gochecknoglobals // Read-only lookup table.
var bracketGlyphs = [...]string{
	OpenParen:   "(",
	CloseParen:  ")",
	OpenBrace:   "{",
	CloseBrace:  "}",
	OpenSquare:  "[",
	CloseSquare: "]",
	OpenAngle:   "<",
	CloseAngle:  ">",
}

// bracketNames maps each kind to its long name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var bracketNames = [...]string{
	OpenParen:   "open_paren",
	CloseParen:  "close_paren",
	OpenBrace:   "open_brace",
	CloseBrace:  "close_brace",
	OpenSquare:  "open_square",
	CloseSquare: "close_square",
	OpenAngle:   "open_angle",
	CloseAngle:  "close_angle",
}

// NewBracketKind builds a kind from a family and role.
func NewBracketKind(family BracketFamily, closing bool) BracketKind {
	kind := BracketKind(family) << 1
	if closing {
		kind |= 1
	}
	return kind
}

// Valid returns true if k is one of the defined bracket kinds.
func (k BracketKind) Valid() bool {
	return int(k) < len(bracketGlyphs)
}

// Family returns the bracket family.
func (k BracketKind) Family() BracketFamily {
	return BracketFamily(k >> 1)
}

// IsOpening returns true for opening brackets.
func (k BracketKind) IsOpening() bool {
	return k&1 == 0
}

// IsClosing returns true for closing brackets.
func (k BracketKind) IsClosing() bool {
	return k&1 == 1
}

// Matches reports whether k and other are the opening and closing halves
// of the same family, in either order.
func (k BracketKind) Matches(other BracketKind) bool {
	return k.Family() == other.Family() && k.IsOpening() != other.IsOpening()
}

// Glyph returns the conventional source text for the bracket.
func (k BracketKind) Glyph() string {
	if !k.Valid() {
		return "?"
	}
	return bracketGlyphs[k]
}

func (k BracketKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("BracketKind(%d)", uint8(k))
	}
	return bracketNames[k]
}

// ParseBracketKind accepts either a glyph ("{") or a long name ("open_brace").
func ParseBracketKind(s string) (BracketKind, error) {
	for i := range bracketGlyphs {
		if bracketGlyphs[i] == s || bracketNames[i] == s {
			return BracketKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown bracket %q", ErrInvalidToken, s)
}
