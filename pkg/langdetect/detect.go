// Package langdetect labels the language of the file a token stream came from.
// It uses go-enry, preferring the file name and falling back to content
// heuristics when the name is ambiguous.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined.
const Unknown = ""

// classifierCandidates bounds the content classifier to languages whose
// syntax is bracket-heavy.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "C#", "JSON",
	"YAML", "HTML", "CSS", "Lua", "Kotlin", "Swift",
}

// Detect returns a lower-case language label for path, using content to
// disambiguate. Returns Unknown when detection fails.
func Detect(path string, content []byte) string {
	name := filepath.Base(path)

	// Strategy 1: exact file names (Makefile, Dockerfile) and extensions.
	if lang, safe := enry.GetLanguageByFilename(name); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByExtension(name); safe {
		return normalize(lang)
	}

	if len(content) == 0 {
		return Unknown
	}

	// Strategy 2: shebang lines.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	// Strategy 3: enry's full pipeline, accepting only unambiguous answers.
	if langs := enry.GetLanguages(name, content); len(langs) == 1 {
		return normalize(langs[0])
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Unknown
}

// normalize converts go-enry language names to short labels.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	case "C#":
		return "csharp"
	}
	return strings.ToLower(lang)
}
