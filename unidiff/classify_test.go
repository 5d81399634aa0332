package unidiff_test

import (
	"testing"

	"github.com/fwojciec/diffcore/unidiff"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	closed := unidiff.HunkState{}
	open := unidiff.HunkState{Open: true, OldRemaining: 2, NewRemaining: 2}
	exhausted := unidiff.HunkState{Open: true}

	tests := []struct {
		name  string
		line  string
		st    unidiff.HunkState
		kind  unidiff.LineKind
		value string
	}{
		{"file header", "diff --git a/x b/x", closed, unidiff.KindFileHeader, "a/x b/x"},
		{"file header inside hunk", "diff --git a/x b/x", open, unidiff.KindFileHeader, "a/x b/x"},
		{"old mode", "old mode 100644", closed, unidiff.KindOldMode, "100644"},
		{"new mode", "new mode 100755", closed, unidiff.KindNewMode, "100755"},
		{"deleted file mode", "deleted file mode 100644", closed, unidiff.KindDeletedFileMode, "100644"},
		{"new file mode", "new file mode 100644", closed, unidiff.KindNewFileMode, "100644"},
		{"similarity", "similarity index 87%", closed, unidiff.KindSimilarity, "87%"},
		{"dissimilarity", "dissimilarity index 60%", closed, unidiff.KindDissimilarity, "60%"},
		{"rename from", "rename from a.go", closed, unidiff.KindRenameFrom, "a.go"},
		{"rename to", "rename to b.go", closed, unidiff.KindRenameTo, "b.go"},
		{"copy from", "copy from a.go", closed, unidiff.KindCopyFrom, "a.go"},
		{"copy to", "copy to b.go", closed, unidiff.KindCopyTo, "b.go"},
		{"index", "index 1234567..89abcde 100644", closed, unidiff.KindIndex, "1234567..89abcde 100644"},
		{"binary", "Binary files a/x and b/x differ", closed, unidiff.KindBinary, "Binary files a/x and b/x differ"},
		{"old path", "--- a/x", closed, unidiff.KindOldPath, "a/x"},
		{"new path", "+++ b/x", closed, unidiff.KindNewPath, "b/x"},
		{"old path after exhausted hunk", "--- a/y", exhausted, unidiff.KindOldPath, "a/y"},
		{"deleted line resembling old path", "--- comment", open, unidiff.KindDeletion, "-- comment"},
		{"added line resembling new path", "+++ counter", open, unidiff.KindAddition, "++ counter"},
		{"hunk header", "@@ -1 +1 @@", closed, unidiff.KindHunkHeader, "@@ -1 +1 @@"},
		{"malformed hunk header outside hunk", "@@ nope @@", closed, unidiff.KindUnrecognized, "@@ nope @@"},
		{"addition", "+x", open, unidiff.KindAddition, "x"},
		{"deletion", "-x", open, unidiff.KindDeletion, "x"},
		{"context", " x", open, unidiff.KindContext, "x"},
		{"empty line as context", "", open, unidiff.KindContext, ""},
		{"empty line after exhausted hunk", "", exhausted, unidiff.KindContext, ""},
		{"empty line outside hunk", "", closed, unidiff.KindUnrecognized, ""},
		{"addition in exhausted hunk", "+late", exhausted, unidiff.KindAddition, "late"},
		{"no newline marker", `\ No newline at end of file`, open, unidiff.KindNoNewline, ""},
		{"other backslash line", `\ something else`, open, unidiff.KindUnrecognized, `\ something else`},
		{"content outside hunk", "+x", closed, unidiff.KindUnrecognized, "+x"},
		{"garbage", "hello", open, unidiff.KindUnrecognized, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := unidiff.Classify(tt.line, tt.st)
			assert.Equal(t, tt.kind, got.Kind, "kind = %v", got.Kind)
			assert.Equal(t, tt.value, got.Value)
		})
	}
}

func TestClassify_HunkHeaderCarriesFields(t *testing.T) {
	t.Parallel()

	got := unidiff.Classify("@@ -10,5 +15,7 @@ func example()", unidiff.HunkState{})

	assert.Equal(t, unidiff.KindHunkHeader, got.Kind)
	assert.Equal(t, unidiff.HunkHeader{OldStart: 10, OldCount: 5, NewStart: 15, NewCount: 7, Comment: "func example()"}, got.Header)
}

func TestLineKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hunk header", unidiff.KindHunkHeader.String())
	assert.Equal(t, "no newline", unidiff.KindNoNewline.String())
	assert.Equal(t, "unknown", unidiff.LineKind(99).String())
}
