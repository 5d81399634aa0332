package diffcore_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/diffcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDiff_AdditionsDeletions(t *testing.T) {
	t.Parallel()

	f := diffcore.FileDiff{Hunks: []diffcore.Hunk{
		{Lines: []diffcore.Line{
			{Type: diffcore.LineContext},
			{Type: diffcore.LineAdded},
			{Type: diffcore.LineAdded},
			{Type: diffcore.LineDeleted},
		}},
		{Lines: []diffcore.Line{
			{Type: diffcore.LineDeleted},
			{Type: diffcore.LineAdded},
		}},
	}}

	assert.Equal(t, 3, f.Additions())
	assert.Equal(t, 2, f.Deletions())
	assert.Zero(t, diffcore.FileDiff{}.Additions())
}

func TestLineType_Marker(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte(' '), diffcore.LineContext.Marker())
	assert.Equal(t, byte('+'), diffcore.LineAdded.Marker())
	assert.Equal(t, byte('-'), diffcore.LineDeleted.Marker())
}

func TestChangeType_Text(t *testing.T) {
	t.Parallel()

	t.Run("round trips every change type", func(t *testing.T) {
		t.Parallel()

		for ct := diffcore.ChangeModified; ct <= diffcore.ChangeIgnored; ct++ {
			b, err := ct.MarshalText()
			require.NoError(t, err)

			var got diffcore.ChangeType
			require.NoError(t, got.UnmarshalText(b))
			assert.Equal(t, ct, got, string(b))
		}
	})

	t.Run("zero value is modified", func(t *testing.T) {
		t.Parallel()

		var ct diffcore.ChangeType
		assert.Equal(t, "modified", ct.String())
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()

		var ct diffcore.ChangeType
		err := ct.UnmarshalText([]byte("exploded"))

		var perr *diffcore.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "exploded", perr.Raw)
		assert.ErrorIs(t, err, diffcore.ErrInvalidHeader)
	})
}

func TestLine_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(diffcore.Line{ID: 7, Type: diffcore.LineAdded, Content: "x", NewLineNum: 3, Raw: "+x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"type":"added","content":"x","new_line":3,"raw":"+x"}`, string(b))

	var l diffcore.Line
	require.NoError(t, json.Unmarshal([]byte(`{"type":"deleted"}`), &l))
	assert.Equal(t, diffcore.LineDeleted, l.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"moved"}`), &l))
}

func TestFileStatus_Staging(t *testing.T) {
	t.Parallel()

	modified := diffcore.Ptr(diffcore.ChangeModified)
	untracked := diffcore.Ptr(diffcore.ChangeUntracked)
	ignored := diffcore.Ptr(diffcore.ChangeIgnored)

	tests := []struct {
		name   string
		status diffcore.FileStatus
		want   diffcore.Staging
	}{
		{name: "staged only", status: diffcore.FileStatus{IndexChange: modified}, want: diffcore.StagingIndex},
		{name: "unstaged only", status: diffcore.FileStatus{WorkTreeChange: modified}, want: diffcore.StagingWorkTree},
		{name: "both", status: diffcore.FileStatus{IndexChange: modified, WorkTreeChange: modified}, want: diffcore.StagingBoth},
		{name: "untracked", status: diffcore.FileStatus{IndexChange: untracked, WorkTreeChange: untracked}, want: diffcore.StagingNone},
		{name: "ignored", status: diffcore.FileStatus{IndexChange: ignored, WorkTreeChange: ignored}, want: diffcore.StagingNone},
		{name: "nothing", status: diffcore.FileStatus{}, want: diffcore.StagingNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.status.Staging())
		})
	}

	assert.True(t, diffcore.FileStatus{IndexChange: untracked, WorkTreeChange: untracked}.IsUntracked())
	assert.True(t, diffcore.FileStatus{IndexChange: ignored, WorkTreeChange: ignored}.IsIgnored())
	assert.Equal(t, "both", diffcore.StagingBoth.String())
}

func TestCommit_IsMerge(t *testing.T) {
	t.Parallel()

	assert.False(t, diffcore.Commit{Parents: []string{"a"}}.IsMerge())
	assert.True(t, diffcore.Commit{Parents: []string{"a", "b"}}.IsMerge())
}

func TestParseError(t *testing.T) {
	t.Parallel()

	err := error(&diffcore.ParseError{Kind: "commit", Raw: "x", Err: diffcore.ErrMissingFields})

	assert.Equal(t, `parse commit: missing fields: "x"`, err.Error())
	assert.True(t, errors.Is(err, diffcore.ErrMissingFields))
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, diffcore.DefaultConfig().Validate())

	bad := diffcore.DefaultConfig()
	bad.Color = "rainbow"
	assert.Error(t, bad.Validate())

	bad = diffcore.DefaultConfig()
	bad.TabWidth = 0
	assert.Error(t, bad.Validate())

	bad = diffcore.DefaultConfig()
	bad.LogLevel = "loud"
	assert.Error(t, bad.Validate())
}
