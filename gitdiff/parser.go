// Package gitdiff implements diff parsing and in-memory patch application
// using bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/diffcore"
	"github.com/fwojciec/diffcore/unidiff"
)

// Compile-time interface verification.
var _ diffcore.DiffParser = (*Parser)(nil)

// Parser parses unified diff content using go-gitdiff. Unlike
// unidiff.Parser it is strict: malformed fragments are errors.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads diff content and returns the parsed result.
func (p *Parser) Parse(r io.Reader) (*diffcore.Diff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, err
	}

	result := &diffcore.Diff{
		Files: make([]diffcore.FileDiff, 0, len(files)),
	}

	for _, f := range files {
		result.Files = append(result.Files, convertFile(f))
	}

	return result, nil
}

func convertFile(f *gitdiff.File) diffcore.FileDiff {
	fd := diffcore.FileDiff{
		Path:     f.NewName,
		IsBinary: f.IsBinary,
		OldMode:  mode(f.OldMode),
		NewMode:  mode(f.NewMode),
		OldHash:  optional(f.OldOIDPrefix),
		NewHash:  optional(f.NewOIDPrefix),
	}
	if fd.Path == "" {
		fd.Path = f.OldName
	}
	if f.OldName != "" && f.OldName != fd.Path {
		fd.OldPath = diffcore.Ptr(f.OldName)
	}

	switch {
	case f.IsNew:
		fd.Change = diffcore.ChangeAdded
	case f.IsDelete:
		fd.Change = diffcore.ChangeDeleted
	case f.IsRename:
		fd.Change = diffcore.ChangeRenamed
	case f.IsCopy:
		fd.Change = diffcore.ChangeCopied
	default:
		fd.Change = diffcore.ChangeModified
	}
	if (f.IsRename || f.IsCopy) && f.Score > 0 {
		fd.Similarity = diffcore.Ptr(f.Score)
	}

	fd.Hunks = make([]diffcore.Hunk, 0, len(f.TextFragments))
	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}

	return fd
}

func convertFragment(frag *gitdiff.TextFragment) diffcore.Hunk {
	hdr := unidiff.HunkHeader{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
		Comment:  frag.Comment,
	}
	hunk := diffcore.Hunk{
		OldStart: hdr.OldStart,
		OldCount: hdr.OldCount,
		NewStart: hdr.NewStart,
		NewCount: hdr.NewCount,
		Comment:  hdr.Comment,
		Header:   hdr.String(),
		Lines:    make([]diffcore.Line, 0, len(frag.Lines)),
	}

	// Track line numbers for old and new files
	oldLineNum := hdr.OldStart
	newLineNum := hdr.NewStart

	for _, l := range frag.Lines {
		line := diffcore.Line{
			Content:   strings.TrimSuffix(l.Line, "\n"),
			NoNewline: l.NoEOL(),
		}

		switch l.Op {
		case gitdiff.OpContext:
			line.Type = diffcore.LineContext
			line.OldLineNum = oldLineNum
			line.NewLineNum = newLineNum
			oldLineNum++
			newLineNum++
		case gitdiff.OpAdd:
			line.Type = diffcore.LineAdded
			line.NewLineNum = newLineNum
			newLineNum++
		case gitdiff.OpDelete:
			line.Type = diffcore.LineDeleted
			line.OldLineNum = oldLineNum
			oldLineNum++
		}
		line.Raw = string(line.Type.Marker()) + line.Content

		hunk.Lines = append(hunk.Lines, line)
	}

	return hunk
}

func mode(m os.FileMode) *string {
	if m == 0 {
		return nil
	}
	return diffcore.Ptr(fmt.Sprintf("%o", uint32(m)))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return diffcore.Ptr(s)
}
