package bracketast

// TokenKind classifies a token produced by an external lexer.
type TokenKind uint8

// Token kinds.
const (
	TokText TokenKind = iota
	TokBracket
)

func (k TokenKind) String() string {
	switch k {
	case TokText:
		return "text"
	case TokBracket:
		return "bracket"
	default:
		return "unknown"
	}
}

// Token is a classified span of source text. Tokens are laid out back to
// back; their positions are implied by the running sum of lengths.
type Token struct {
	// Kind classifies the token.
	Kind TokenKind

	// Bracket is the bracket classification. Only meaningful for TokBracket.
	Bracket BracketKind

	// Length is the span length in the document's offset unit.
	Length uint64
}

// TextToken creates a text token.
func TextToken(length uint64) Token {
	return Token{Kind: TokText, Length: length}
}

// BracketToken creates a bracket token.
func BracketToken(kind BracketKind, length uint64) Token {
	return Token{Kind: TokBracket, Bracket: kind, Length: length}
}

// TotalLength returns the sum of token lengths.
func TotalLength(tokens []Token) uint64 {
	var total uint64
	for _, tok := range tokens {
		total += tok.Length
	}
	return total
}

// ValidateTokens checks that every token can be assembled:
// - Kind is TokText or TokBracket.
// - Bracket tokens carry a defined BracketKind and a non-zero length.
// Returns the first problem as a *TokenError.
func ValidateTokens(tokens []Token) error {
	for i, tok := range tokens {
		switch tok.Kind {
		case TokText:
		case TokBracket:
			if !tok.Bracket.Valid() {
				return &TokenError{Index: i, Reason: "undefined bracket kind " + tok.Bracket.String()}
			}
			if tok.Length == 0 {
				return &TokenError{Index: i, Reason: "zero-length bracket"}
			}
		default:
			return &TokenError{Index: i, Reason: "unknown token kind " + tok.Kind.String()}
		}
	}
	return nil
}
