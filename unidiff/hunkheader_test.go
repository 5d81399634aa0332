package unidiff_test

import (
	"testing"

	"github.com/fwojciec/diffcore/unidiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHunkHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want unidiff.HunkHeader
	}{
		{"@@ -1 +1 @@", unidiff.HunkHeader{OldStart: 1, OldCount: 1, NewStart: 1, NewCount: 1}},
		{"@@ -1,3 +1,4 @@", unidiff.HunkHeader{OldStart: 1, OldCount: 3, NewStart: 1, NewCount: 4}},
		{"@@ -10,5 +15,7 @@ func example()", unidiff.HunkHeader{OldStart: 10, OldCount: 5, NewStart: 15, NewCount: 7, Comment: "func example()"}},
		{"@@ -0,0 +1,2 @@", unidiff.HunkHeader{OldStart: 0, OldCount: 0, NewStart: 1, NewCount: 2}},
		{"@@ -3,2 +0,0 @@", unidiff.HunkHeader{OldStart: 3, OldCount: 2, NewStart: 0, NewCount: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got, ok := unidiff.ParseHunkHeader(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHunkHeader_NoMatch(t *testing.T) {
	t.Parallel()

	for _, line := range []string{
		"",
		"@@",
		"@@ -1 +1",
		"@@ -a,b +c,d @@",
		" @@ -1 +1 @@",
		"@@@ -1,2 -1,2 +1,3 @@@",
		"@@ -99999999999999999999 +1 @@",
	} {
		_, ok := unidiff.ParseHunkHeader(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestHunkHeader_String(t *testing.T) {
	t.Parallel()

	t.Run("omits count of one", func(t *testing.T) {
		t.Parallel()

		h := unidiff.HunkHeader{OldStart: 1, OldCount: 1, NewStart: 1, NewCount: 1}
		assert.Equal(t, "@@ -1 +1 @@", h.String())
	})

	t.Run("keeps zero counts", func(t *testing.T) {
		t.Parallel()

		h := unidiff.HunkHeader{OldStart: 0, OldCount: 0, NewStart: 1, NewCount: 2}
		assert.Equal(t, "@@ -0,0 +1,2 @@", h.String())
	})

	t.Run("round trips through the parser", func(t *testing.T) {
		t.Parallel()

		for _, line := range []string{
			"@@ -1 +1 @@",
			"@@ -1,3 +1,4 @@",
			"@@ -10,5 +15,7 @@ func example()",
		} {
			h, ok := unidiff.ParseHunkHeader(line)
			require.True(t, ok)
			assert.Equal(t, line, h.String())
		}
	})
}
