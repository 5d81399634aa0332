package diffcore

import "io"

// DiffParser parses diff content into domain types.
type DiffParser interface {
	// Parse reads diff content and returns the parsed result. Malformed
	// content degrades to a partial result; only read failures are errors.
	Parse(r io.Reader) (*Diff, error)
}

// Renderer writes a human-readable view of a diff.
type Renderer interface {
	Render(w io.Writer, diff *Diff) error
}

// Token is a run of source text sharing one style.
type Token struct {
	Text  string
	Style Style
}

// Style describes how a token is drawn. Empty fields mean terminal default.
type Style struct {
	Foreground string // Hex color, e.g. "#c678dd"
	Bold       bool
}

// Tokenizer splits source code into styled tokens.
type Tokenizer interface {
	// Tokenize returns nil when the language is unknown.
	Tokenize(language, source string) []Token
}

// LanguageDetector maps a file path to a language name a Tokenizer accepts.
type LanguageDetector interface {
	// DetectFromPath returns "" when no language matches.
	DetectFromPath(path string) string
}
