package chroma_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/diffcore"
	"github.com/fwojciec/diffcore/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	t.Run("tokenizes Go code", func(t *testing.T) {
		t.Parallel()

		tokens := chroma.NewTokenizer().Tokenize("go", `package main`)

		require.NotEmpty(t, tokens, "expected tokens for valid Go code")

		var reconstructed strings.Builder
		for _, tok := range tokens {
			reconstructed.WriteString(tok.Text)
		}
		assert.Equal(t, "package main", reconstructed.String())

		var foundPackageKeyword bool
		for _, tok := range tokens {
			if tok.Text == "package" {
				foundPackageKeyword = true
				assert.NotEmpty(t, tok.Style.Foreground, "keyword should have foreground color")
				assert.True(t, tok.Style.Bold)
			}
		}
		assert.True(t, foundPackageKeyword, "should find 'package' keyword token")
	})

	t.Run("returns nil for unsupported language", func(t *testing.T) {
		t.Parallel()

		tokens := chroma.NewTokenizer().Tokenize("nonexistent-language-xyz", "some code")

		assert.Nil(t, tokens)
	})

	t.Run("handles empty source", func(t *testing.T) {
		t.Parallel()

		tokens := chroma.NewTokenizer().Tokenize("go", "")

		assert.NotNil(t, tokens)
		assert.Empty(t, tokens)
	})

	t.Run("styles string literals", func(t *testing.T) {
		t.Parallel()

		tokens := chroma.NewTokenizer().Tokenize("go", `x := "hi"`)

		var str diffcore.Style
		for _, tok := range tokens {
			if tok.Text == `"hi"` {
				str = tok.Style
			}
		}
		assert.Equal(t, "#98c379", str.Foreground)
	})
}

func TestDetector_DetectFromPath(t *testing.T) {
	t.Parallel()

	d := chroma.NewDetector()

	assert.Equal(t, "Go", d.DetectFromPath("pkg/main.go"))
	assert.Equal(t, "Python", d.DetectFromPath("script.py"))
	assert.Equal(t, "", d.DetectFromPath("no-such-extension.zzqq"))
}
