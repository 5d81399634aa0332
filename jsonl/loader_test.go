package jsonl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/diffcore"
	"github.com/fwojciec/diffcore/jsonl"
	"github.com/fwojciec/diffcore/unidiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads valid JSONL file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "diffs.jsonl")
		content := `{"path":"a.go","change":"added","is_binary":false,"hunks":[]}
{"path":"b.go","old_path":"c.go","change":"renamed","is_binary":false,"similarity":90,"hunks":[]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		files, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "a.go", files[0].Path)
		assert.Equal(t, diffcore.ChangeAdded, files[0].Change)
		assert.Equal(t, "b.go", files[1].Path)
		assert.Equal(t, diffcore.ChangeRenamed, files[1].Change)
		require.NotNil(t, files[1].OldPath)
		assert.Equal(t, "c.go", *files[1].OldPath)
		require.NotNil(t, files[1].Similarity)
		assert.Equal(t, 90, *files[1].Similarity)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		t.Parallel()

		_, err := jsonl.NewLoader().Load("/nonexistent/path.jsonl")

		assert.Error(t, err)
	})

	t.Run("returns error for malformed JSON line", func(t *testing.T) {
		t.Parallel()

		content := `{"path":"a.go","change":"modified","hunks":[]}
not valid json
{"path":"b.go","change":"modified","hunks":[]}`

		_, err := jsonl.NewLoader().Read(strings.NewReader(content))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("returns error for unknown change type", func(t *testing.T) {
		t.Parallel()

		_, err := jsonl.NewLoader().Read(strings.NewReader(`{"path":"a.go","change":"exploded"}`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("handles empty file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "empty.jsonl")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

		files, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("skips empty lines", func(t *testing.T) {
		t.Parallel()

		content := `{"path":"a.go","change":"modified","hunks":[]}

{"path":"b.go","change":"modified"}
`
		files, err := jsonl.NewLoader().Read(strings.NewReader(content))

		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.NotNil(t, files[1].Hunks)
	})

	t.Run("handles large lines exceeding default buffer", func(t *testing.T) {
		t.Parallel()

		large := strings.Repeat("x", 100*1024)
		content := `{"path":"big.txt","change":"added","hunks":[{"old_start":0,"old_count":0,"new_start":1,"new_count":1,"header":"@@ -0,0 +1 @@","lines":[{"id":1,"type":"added","content":"` + large + `","new_line":1}]}]}`

		files, err := jsonl.NewLoader().Read(strings.NewReader(content))

		require.NoError(t, err)
		require.Len(t, files, 1)
		require.Len(t, files[0].Hunks, 1)
		assert.Len(t, files[0].Hunks[0].Lines[0].Content, 100*1024)
	})
}

func TestWriter_WriteDiff(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile(filepath.Join("..", "unidiff", "testdata", "mixed.diff"))
	require.NoError(t, err)
	files := unidiff.ParseString(string(raw))

	var buf bytes.Buffer
	require.NoError(t, jsonl.NewWriter(&buf).WriteDiff(&diffcore.Diff{Files: files}))

	assert.Equal(t, len(files), strings.Count(buf.String(), "\n"))

	loaded, err := jsonl.NewLoader().Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, files, loaded)
}
