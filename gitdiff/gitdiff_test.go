package gitdiff_test

import (
	"os"
	"strings"
	"testing"

	"github.com/fwojciec/diffcore"
	"github.com/fwojciec/diffcore/gitdiff"
	"github.com/fwojciec/diffcore/unidiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile("../unidiff/testdata/mixed.diff")
	require.NoError(t, err)
	return string(raw)
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses new file", func(t *testing.T) {
		t.Parallel()

		input := `diff --git a/hello.go b/hello.go
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/hello.go
@@ -0,0 +1,3 @@
+package main
+
+func hello() {}
`
		diff, err := gitdiff.NewParser().Parse(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, diff.Files, 1)
		f := diff.Files[0]
		assert.Equal(t, "hello.go", f.Path)
		assert.Equal(t, diffcore.ChangeAdded, f.Change)
		require.Len(t, f.Hunks, 1)
		assert.Equal(t, "@@ -0,0 +1,3 @@", f.Hunks[0].Header)
		assert.Equal(t, 3, f.Additions())
		assert.Equal(t, "package main", f.Hunks[0].Lines[0].Content)
		assert.Equal(t, "+package main", f.Hunks[0].Lines[0].Raw)
	})

	t.Run("agrees with unidiff on the fixture", func(t *testing.T) {
		t.Parallel()

		raw := readFixture(t)
		strict, err := gitdiff.NewParser().Parse(strings.NewReader(raw))
		require.NoError(t, err)
		lenient := unidiff.ParseString(raw)

		require.Len(t, strict.Files, len(lenient))
		for i, want := range lenient {
			got := strict.Files[i]
			assert.Equal(t, want.Path, got.Path)
			assert.Equal(t, want.OldPath, got.OldPath, want.Path)
			assert.Equal(t, want.Change, got.Change, want.Path)
			assert.Equal(t, want.IsBinary, got.IsBinary, want.Path)
			require.Len(t, got.Hunks, len(want.Hunks), want.Path)
			for j := range want.Hunks {
				wl, gl := want.Hunks[j].Lines, got.Hunks[j].Lines
				require.Len(t, gl, len(wl))
				for k := range wl {
					assert.Equal(t, wl[k].Type, gl[k].Type)
					assert.Equal(t, wl[k].Content, gl[k].Content)
					assert.Equal(t, wl[k].OldLineNum, gl[k].OldLineNum)
					assert.Equal(t, wl[k].NewLineNum, gl[k].NewLineNum)
					assert.Equal(t, wl[k].NoNewline, gl[k].NoNewline)
				}
			}
		}
	})
}

func TestApplyHunk(t *testing.T) {
	t.Parallel()

	const before = "package main\nvar x = 1\nfunc main() {}\n"
	const after = "package main\nvar x = 2\nvar y = 3\nfunc main() {}\n"

	hunk := func(t *testing.T) diffcore.Hunk {
		t.Helper()
		files := unidiff.ParseString(readFixture(t))
		return files[0].Hunks[0]
	}

	t.Run("stages a hunk", func(t *testing.T) {
		t.Parallel()

		got, err := gitdiff.ApplyHunk([]byte(before), "main.go", hunk(t), false)

		require.NoError(t, err)
		assert.Equal(t, after, string(got))
	})

	t.Run("unstages a hunk", func(t *testing.T) {
		t.Parallel()

		got, err := gitdiff.ApplyHunk([]byte(after), "main.go", hunk(t), true)

		require.NoError(t, err)
		assert.Equal(t, before, string(got))
	})

	t.Run("applies one hunk of several", func(t *testing.T) {
		t.Parallel()

		raw := `diff --git a/f.txt b/f.txt
--- a/f.txt
+++ b/f.txt
@@ -1,2 +1,2 @@
-one
+ONE
 two
@@ -5,2 +5,2 @@
 five
-six
+SIX
`
		src := "one\ntwo\nthree\nfour\nfive\nsix\n"
		hunks := unidiff.ParseString(raw)[0].Hunks

		got, err := gitdiff.ApplyHunk([]byte(src), "f.txt", hunks[1], false)

		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\nthree\nfour\nfive\nSIX\n", string(got))
	})

	t.Run("keeps missing trailing newline", func(t *testing.T) {
		t.Parallel()

		h := unidiff.ParseString(readFixture(t))[6].Hunks[0]

		got, err := gitdiff.ApplyHunk([]byte("old"), "README", h, false)

		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("conflicting source", func(t *testing.T) {
		t.Parallel()

		_, err := gitdiff.ApplyHunk([]byte("something else\nentirely\nhere\n"), "main.go", hunk(t), false)

		assert.Error(t, err)
	})
}

func TestApply_NotSingleFile(t *testing.T) {
	t.Parallel()

	_, err := gitdiff.Apply(nil, "")

	assert.ErrorIs(t, err, gitdiff.ErrNotSingleFile)
}
