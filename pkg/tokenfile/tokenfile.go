// Package tokenfile decodes pre-classified token documents.
//
// A token document is produced by an external lexer and lists the text and
// bracket tokens of one region of a source file:
//
//	source: main.go
//	start: 0
//	tokens:
//	  - text: "func f"
//	  - bracket: "("
//	  - {text: "x", length: 1}
//	  - bracket: close_paren
//
// JSON documents with the same field names are accepted as well.
package tokenfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/brackettree/pkg/bracketast"
	"github.com/yaklabco/brackettree/pkg/fsutil"
	"github.com/yaklabco/brackettree/pkg/langdetect"
)

// ErrEmptyDocument is returned when a document has no token entries, either
// because the input is blank or because the tokens list is missing or empty.
var ErrEmptyDocument = errors.New("empty token document")

// Format identifies the syntax a document was written in.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Document is a decoded token document.
type Document struct {
	// Path is the file the document was read from, if any.
	Path string

	// Source names the file the tokens describe.
	Source string

	// Start is the absolute offset of the first token within Source.
	Start uint64

	// Format is the syntax the document was written in.
	Format Format

	// Tokens is the classified token stream.
	Tokens []bracketast.Token

	// Text is the reconstructed source text, or nil when some token does
	// not carry enough information to rebuild it.
	Text []byte

	// Language is a language label for Source, empty when unknown.
	Language string

	lines []LineInfo
}

// rawDocument mirrors the on-disk layout.
type rawDocument struct {
	Source string     `yaml:"source"`
	Start  uint64     `yaml:"start"`
	Tokens []rawToken `yaml:"tokens"`
}

// rawToken is one entry of the tokens list. Exactly one of Text and Bracket is set.
type rawToken struct {
	Text    *string `yaml:"text"`
	Bracket string  `yaml:"bracket"`
	Length  *uint64 `yaml:"length"`
}

// Load reads and decodes the token document at path.
func Load(ctx context.Context, path string) (*Document, error) {
	data, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	doc, err := Decode(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path

	return doc, nil
}

// Decode parses a token document. The name is used only to choose between
// JSON and YAML and may be empty.
func Decode(data []byte, name string) (*Document, error) {
	format := DetectFormat(name, data)

	var raw rawDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	if len(raw.Tokens) == 0 {
		return nil, ErrEmptyDocument
	}

	doc := &Document{
		Source: raw.Source,
		Start:  raw.Start,
		Format: format,
		Tokens: make([]bracketast.Token, 0, len(raw.Tokens)),
	}

	var text bytes.Buffer
	complete := true

	for i, entry := range raw.Tokens {
		token, fragment, err := entry.convert(i)
		if err != nil {
			return nil, err
		}
		doc.Tokens = append(doc.Tokens, token)

		if fragment == nil {
			complete = false
			continue
		}
		text.WriteString(*fragment)
	}

	if err := bracketast.ValidateTokens(doc.Tokens); err != nil {
		return nil, err
	}

	if complete {
		doc.Text = text.Bytes()
		doc.lines = BuildLines(doc.Text)
	}
	if doc.Source != "" {
		doc.Language = langdetect.Detect(doc.Source, doc.Text)
	}

	return doc, nil
}

// convert turns a raw entry into a token. The returned fragment is the
// literal text the token covers, or nil when it cannot be known.
func (r rawToken) convert(index int) (bracketast.Token, *string, error) {
	switch {
	case r.Text != nil && r.Bracket != "":
		return bracketast.Token{}, nil, &bracketast.TokenError{Index: index, Reason: "both text and bracket set"}

	case r.Text != nil:
		length := uint64(len(*r.Text))
		if r.Length == nil {
			return bracketast.TextToken(length), r.Text, nil
		}
		if *r.Length != length {
			// Explicit length wins; the text is only a sample.
			return bracketast.TextToken(*r.Length), nil, nil
		}
		return bracketast.TextToken(length), r.Text, nil

	case r.Bracket != "":
		kind, err := bracketast.ParseBracketKind(r.Bracket)
		if err != nil {
			return bracketast.Token{}, nil, &bracketast.TokenError{Index: index, Reason: err.Error()}
		}
		glyph := kind.Glyph()
		length := uint64(len(glyph))
		if r.Length != nil {
			length = *r.Length
		}
		if length != uint64(len(glyph)) {
			return bracketast.BracketToken(kind, length), nil, nil
		}
		return bracketast.BracketToken(kind, length), &glyph, nil

	case r.Length != nil:
		// Length-only entries are opaque text.
		return bracketast.TextToken(*r.Length), nil, nil

	default:
		return bracketast.Token{}, nil, &bracketast.TokenError{Index: index, Reason: "entry has neither text nor bracket"}
	}
}

// DetectFormat guesses the document syntax from the file name, falling back
// to sniffing the first non-space byte.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yml", ".yaml":
		return FormatYAML
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Length returns the total length of the document's tokens.
func (d *Document) Length() uint64 {
	return bracketast.TotalLength(d.Tokens)
}

// End returns the absolute offset just past the document's last token.
func (d *Document) End() uint64 {
	return d.Start + d.Length()
}

// HasText reports whether the source text could be reconstructed.
func (d *Document) HasText() bool {
	return d.Text != nil
}

// Assemble builds the tree for the document's tokens.
func (d *Document) Assemble(opts bracketast.AssembleOptions) (*bracketast.Assembly, error) {
	asm, err := bracketast.Assemble(d.Tokens, opts)
	if err != nil {
		return nil, fmt.Errorf("assemble %s: %w", d.Name(), err)
	}
	return asm, nil
}

// Name returns the most descriptive name available for the document.
func (d *Document) Name() string {
	switch {
	case d.Source != "":
		return d.Source
	case d.Path != "":
		return d.Path
	default:
		return "<tokens>"
	}
}
