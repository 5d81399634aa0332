// Package chroma provides syntax highlighting of diff line content using
// the chroma library.
package chroma

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffcore"
)

// Compile-time interface verification.
var (
	_ diffcore.Tokenizer        = (*Tokenizer)(nil)
	_ diffcore.LanguageDetector = (*Detector)(nil)
)

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct{}

// NewTokenizer creates a new chroma-based tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits source code into syntax-highlighted tokens for the given language.
// Returns nil if the language is not supported or an error occurs.
// Returns an empty slice for empty source (valid input, no tokens).
func (t *Tokenizer) Tokenize(language, source string) []diffcore.Token {
	if source == "" {
		return []diffcore.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []diffcore.Token
	for token := iterator(); token != chroma.EOF; token = iterator() {
		tokens = append(tokens, diffcore.Token{
			Text:  token.Value,
			Style: tokenStyle(token.Type),
		})
	}
	return tokens
}

// tokenStyle returns the visual style for a chroma token type, loosely
// based on the One Dark theme.
func tokenStyle(tt chroma.TokenType) diffcore.Style {
	switch {
	case tt.InCategory(chroma.Keyword):
		return diffcore.Style{Foreground: "#c678dd", Bold: true}
	case tt.InCategory(chroma.Comment):
		return diffcore.Style{Foreground: "#5c6370"}
	case tt.InSubCategory(chroma.LiteralString):
		return diffcore.Style{Foreground: "#98c379"}
	case tt.InSubCategory(chroma.LiteralNumber):
		return diffcore.Style{Foreground: "#d19a66"}
	case tt.InCategory(chroma.Operator):
		return diffcore.Style{Foreground: "#56b6c2"}
	case tt == chroma.NameBuiltin, tt == chroma.NameBuiltinPseudo:
		return diffcore.Style{Foreground: "#e5c07b"}
	case tt == chroma.NameFunction, tt == chroma.NameFunctionMagic:
		return diffcore.Style{Foreground: "#61afef"}
	case tt.InCategory(chroma.Name):
		return diffcore.Style{Foreground: "#e06c75"}
	default:
		return diffcore.Style{}
	}
}

// Detector maps file paths to chroma lexer names.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the name of the lexer matching the file name, or
// "" when none does.
func (d *Detector) DetectFromPath(path string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
