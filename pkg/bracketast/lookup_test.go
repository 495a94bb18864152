package bracketast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/brackettree/pkg/bracketast"
)

// buildScopeTree returns the tree for
//
//	ab{cd(ef)g}h
//	0123456789AB
func buildScopeTree(t *testing.T) bracketast.Node {
	t.Helper()

	tokens := []bracketast.Token{
		txt(2), br(bracketast.OpenBrace), txt(2),
		br(bracketast.OpenParen), txt(2), br(bracketast.CloseParen),
		txt(1), br(bracketast.CloseBrace), txt(1),
	}
	asm, err := bracketast.Assemble(tokens, bracketast.AssembleOptions{})
	require.NoError(t, err)
	require.Equal(t, uint64(12), asm.Root.Length())
	return asm.Root
}

func TestNodeAt(t *testing.T) {
	t.Parallel()

	root := buildScopeTree(t)

	tests := []struct {
		offset    uint64
		wantKind  bracketast.NodeKind
		wantStart uint64
	}{
		{0, bracketast.NodeText, 0},
		{2, bracketast.NodeBracket, 2},
		{4, bracketast.NodeText, 3},
		{5, bracketast.NodeBracket, 5},
		{7, bracketast.NodeText, 6},
		{8, bracketast.NodeBracket, 8},
		{10, bracketast.NodeBracket, 10},
		{11, bracketast.NodeText, 11},
	}

	for _, tc := range tests {
		located, ok := bracketast.NodeAt(root, tc.offset)
		require.True(t, ok, "offset %d", tc.offset)
		assert.Equal(t, tc.wantKind, located.Node.Kind(), "offset %d", tc.offset)
		assert.Equal(t, tc.wantStart, located.Start, "offset %d", tc.offset)
		assert.True(t, located.Start <= tc.offset && tc.offset < located.End(), "offset %d", tc.offset)
	}

	_, ok := bracketast.NodeAt(root, 12)
	assert.False(t, ok)
	_, ok = bracketast.NodeAt(nil, 0)
	assert.False(t, ok)
}

func TestEnclosingScopes(t *testing.T) {
	t.Parallel()

	root := buildScopeTree(t)

	scopes := bracketast.EnclosingScopes(root, 6)
	kinds := make([]bracketast.NodeKind, len(scopes))
	for i, scope := range scopes {
		kinds[i] = scope.Node.Kind()
		assert.Equal(t, i, scope.Depth)
		assert.True(t, scope.Contains(6))
	}

	// root list, brace pair, its inner list, paren pair
	assert.Equal(t, []bracketast.NodeKind{
		bracketast.NodeList, bracketast.NodePair, bracketast.NodeList, bracketast.NodePair,
	}, kinds)

	assert.Equal(t, uint64(2), scopes[1].Start)
	assert.Equal(t, uint64(11), scopes[1].End)
	assert.Equal(t, uint64(5), scopes[3].Start)
	assert.Equal(t, uint64(9), scopes[3].End)

	outside := bracketast.EnclosingScopes(root, 11)
	require.Len(t, outside, 1)
	assert.Equal(t, bracketast.NodeList, outside[0].Node.Kind())

	assert.Empty(t, bracketast.EnclosingScopes(root, 40))
}

func TestEnclosingPairs(t *testing.T) {
	t.Parallel()

	root := buildScopeTree(t)

	pairs := bracketast.EnclosingPairs(root, 5)
	require.Len(t, pairs, 2)
	assert.Equal(t, 0, pairs[0].Depth)
	assert.Equal(t, 1, pairs[1].Depth)
	assert.Equal(t, bracketast.OpenBrace, pairs[0].Node.(*bracketast.Pair).Opening().BracketKind())
	assert.Equal(t, bracketast.OpenParen, pairs[1].Node.(*bracketast.Pair).Opening().BracketKind())
}

func TestTrimScopes(t *testing.T) {
	t.Parallel()

	root := buildScopeTree(t)
	scopes := bracketast.EnclosingScopes(root, 6)
	require.Len(t, scopes, 4)

	trimmed := bracketast.TrimScopes(scopes, 2)
	require.Len(t, trimmed, 2)
	assert.Equal(t, scopes[2], trimmed[0])
	assert.Equal(t, scopes[3], trimmed[1])

	assert.Len(t, bracketast.TrimScopes(scopes, 0), 4)
	assert.Len(t, bracketast.TrimScopes(scopes, 10), 4)
}
