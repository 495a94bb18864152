package bracketast

// OpenPolicy decides what an opening bracket that never finds its closing
// partner becomes.
type OpenPolicy uint8

const (
	// OpenAsBracket keeps the unmatched opener as a standalone Bracket leaf.
	// The content it would have enclosed follows it as siblings.
	OpenAsBracket OpenPolicy = iota

	// OpenAsText turns the unmatched opener into plain text.
	OpenAsText
)

func (p OpenPolicy) String() string {
	switch p {
	case OpenAsBracket:
		return "bracket"
	case OpenAsText:
		return "text"
	default:
		return "unknown"
	}
}

// AssembleOptions controls how tokens are turned into a tree.
type AssembleOptions struct {
	// OpenPolicy handles opening brackets left without a partner.
	OpenPolicy OpenPolicy

	// CoalesceText merges adjacent text into a single Text leaf.
	CoalesceText bool
}

// Assembly is the result of Assemble.
type Assembly struct {
	// Root spans every token. It is always a List.
	Root *List

	// UnmatchedOpen counts opening brackets resolved by OpenPolicy.
	UnmatchedOpen int

	// UnmatchedClose counts InvalidClosingBracket leaves.
	UnmatchedClose int
}

// frame is an opening bracket still waiting for its partner, together with
// everything seen since it opened. The bottom frame has no bracket.
type frame struct {
	open  *Bracket
	items []Node
}

// add appends n, folding it into a preceding Text leaf when coalescing.
func (f *frame) add(n Node, coalesce bool) {
	if text, ok := n.(*Text); ok {
		if text.length == 0 {
			return
		}
		if coalesce && len(f.items) > 0 {
			if prev, ok := f.items[len(f.items)-1].(*Text); ok {
				f.items[len(f.items)-1] = NewText(prev.length + text.length)
				return
			}
		}
	}
	f.items = append(f.items, n)
}

// inner returns what a Pair encloses for the frame's items.
func (f *frame) inner() Node {
	switch len(f.items) {
	case 0:
		return nil
	case 1:
		return f.items[0]
	default:
		return NewList(f.items...)
	}
}

type assembler struct {
	opts   AssembleOptions
	stack  []*frame
	result Assembly
}

// Assemble builds a tree from a stream of classified tokens.
//
// A closing bracket pairs with the innermost open bracket of the same family.
// Open brackets of other families passed over on the way are unmatched and
// resolved by opts.OpenPolicy, as are any still open at the end of the
// stream. A closing bracket with no open partner becomes an
// InvalidClosingBracket. Zero-length text tokens are dropped.
//
// The root length always equals TotalLength(tokens).
func Assemble(tokens []Token, opts AssembleOptions) (*Assembly, error) {
	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	asm := &assembler{
		opts:  opts,
		stack: []*frame{{}},
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokText:
			asm.top().add(NewText(tok.Length), opts.CoalesceText)
		case TokBracket:
			if tok.Bracket.IsOpening() {
				asm.stack = append(asm.stack, &frame{open: NewBracket(tok.Bracket, tok.Length)})
				continue
			}
			asm.close(tok)
		}
	}

	for len(asm.stack) > 1 {
		asm.unwind()
	}

	asm.result.Root = NewList(asm.stack[0].items...)
	return &asm.result, nil
}

func (a *assembler) top() *frame {
	return a.stack[len(a.stack)-1]
}

func (a *assembler) close(tok Token) {
	match := -1
	for i := len(a.stack) - 1; i > 0; i-- {
		if a.stack[i].open.bracket.Matches(tok.Bracket) {
			match = i
			break
		}
	}

	if match < 0 {
		a.top().add(NewInvalidClosingBracket(tok.Bracket, tok.Length), a.opts.CoalesceText)
		a.result.UnmatchedClose++
		return
	}

	for len(a.stack)-1 > match {
		a.unwind()
	}

	f := a.pop()
	pair := NewPair(f.open, NewBracket(tok.Bracket, tok.Length), f.inner())
	a.top().add(pair, a.opts.CoalesceText)
}

// unwind resolves the top frame as unmatched and hands its items to the
// frame below.
func (a *assembler) unwind() {
	f := a.pop()
	parent := a.top()

	switch a.opts.OpenPolicy {
	case OpenAsText:
		parent.add(NewText(f.open.length), a.opts.CoalesceText)
	default:
		parent.add(f.open, a.opts.CoalesceText)
	}
	for _, item := range f.items {
		parent.add(item, a.opts.CoalesceText)
	}
	a.result.UnmatchedOpen++
}

func (a *assembler) pop() *frame {
	f := a.top()
	a.stack = a.stack[:len(a.stack)-1]
	return f
}
