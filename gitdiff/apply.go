package gitdiff

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/diffcore"
	"github.com/fwojciec/diffcore/unidiff"
)

// ErrNotSingleFile is returned by Apply when the patch does not describe
// exactly one file.
var ErrNotSingleFile = errors.New("patch must contain exactly one file")

// Apply applies a single-file patch to src and returns the result.
func Apply(src []byte, patch string) ([]byte, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(patch))
	if err != nil {
		return nil, fmt.Errorf("parsing patch: %w", err)
	}
	if len(files) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNotSingleFile, len(files))
	}

	var dst bytes.Buffer
	if err := gitdiff.Apply(&dst, bytes.NewReader(src), files[0]); err != nil {
		return nil, fmt.Errorf("applying patch to %s: %w", files[0].NewName, err)
	}
	return dst.Bytes(), nil
}

// ApplyHunk applies one hunk of path to src, the in-memory counterpart of
// piping unidiff.HunkPatch to git apply. With reverse set the hunk is
// undone instead, as when unstaging.
func ApplyHunk(src []byte, path string, h diffcore.Hunk, reverse bool) ([]byte, error) {
	if reverse {
		h = unidiff.Reverse(h)
	}
	return Apply(src, unidiff.HunkPatch(path, h))
}
