// Package mock provides function-field implementations of the diffcore
// interfaces for tests.
package mock

import (
	"io"

	"github.com/fwojciec/diffcore"
)

var (
	_ diffcore.DiffParser       = (*DiffParser)(nil)
	_ diffcore.Renderer         = (*Renderer)(nil)
	_ diffcore.Tokenizer        = (*Tokenizer)(nil)
	_ diffcore.LanguageDetector = (*LanguageDetector)(nil)
)

// DiffParser is a mock implementation of diffcore.DiffParser.
type DiffParser struct {
	ParseFn func(r io.Reader) (*diffcore.Diff, error)
}

func (m *DiffParser) Parse(r io.Reader) (*diffcore.Diff, error) {
	return m.ParseFn(r)
}

// Renderer is a mock implementation of diffcore.Renderer.
type Renderer struct {
	RenderFn func(w io.Writer, diff *diffcore.Diff) error
}

func (m *Renderer) Render(w io.Writer, diff *diffcore.Diff) error {
	return m.RenderFn(w, diff)
}

// Tokenizer is a mock implementation of diffcore.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(language, source string) []diffcore.Token
}

func (m *Tokenizer) Tokenize(language, source string) []diffcore.Token {
	return m.TokenizeFn(language, source)
}

// LanguageDetector is a mock implementation of diffcore.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (m *LanguageDetector) DetectFromPath(path string) string {
	return m.DetectFromPathFn(path)
}
