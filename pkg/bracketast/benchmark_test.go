package bracketast_test

import (
	"testing"

	"github.com/yaklabco/brackettree/pkg/bracketast"
)

// nestedTokens produces depth levels of ( text { text } text ) repeated width times.
func nestedTokens(depth, width int) []bracketast.Token {
	var tokens []bracketast.Token
	for range width {
		for range depth {
			tokens = append(tokens, br(bracketast.OpenParen), txt(3), br(bracketast.OpenBrace))
		}
		tokens = append(tokens, txt(8))
		for range depth {
			tokens = append(tokens, br(bracketast.CloseBrace), txt(2), br(bracketast.CloseParen))
		}
	}
	return tokens
}

func BenchmarkAssemble(b *testing.B) {
	tokens := nestedTokens(8, 200)
	b.ReportAllocs()

	for b.Loop() {
		if _, err := bracketast.Assemble(tokens, bracketast.AssembleOptions{CoalesceText: true}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMergeTrees(b *testing.B) {
	var regions []bracketast.Region
	var next uint64
	for range 64 {
		asm, err := bracketast.Assemble(nestedTokens(4, 10), bracketast.AssembleOptions{})
		if err != nil {
			b.Fatal(err)
		}
		regions = append(regions, bracketast.Region{Start: next, Tree: asm.Root})
		next += asm.Root.Length()
	}
	b.ReportAllocs()

	for b.Loop() {
		if _, err := bracketast.MergeTrees(regions); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNodeAt(b *testing.B) {
	asm, err := bracketast.Assemble(nestedTokens(8, 200), bracketast.AssembleOptions{})
	if err != nil {
		b.Fatal(err)
	}
	length := asm.Root.Length()
	b.ReportAllocs()

	var offset uint64
	for b.Loop() {
		bracketast.NodeAt(asm.Root, offset%length)
		offset += 97
	}
}
