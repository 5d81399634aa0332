// Package unidiff implements a line-oriented parser for git's unified diff
// output and the inverse serialization of hunks into applicable patches.
package unidiff

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/diffcore"
)

// Compile-time interface verification.
var _ diffcore.DiffParser = (*Parser)(nil)

// Parser parses unified diff content. It holds no state between calls and
// is safe for concurrent use.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads diff content and returns one FileDiff per file block, in
// input order. Malformed or truncated input yields a best-effort result;
// the only error returned is one from r.
func (p *Parser) Parse(r io.Reader) (*diffcore.Diff, error) {
	var st state
	br := bufio.NewReader(r)
	blank := false // an empty line held back until more input follows
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if blank {
				st.feed("")
				blank = false
			}
			if line == "\n" {
				blank = true
			} else {
				st.feed(strings.TrimSuffix(line, "\n"))
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return &diffcore.Diff{Files: st.finish()}, nil
}

// ParseString parses raw diff text. Empty input yields an empty slice.
func ParseString(raw string) []diffcore.FileDiff {
	var st state
	for raw != "" {
		line, rest, _ := strings.Cut(raw, "\n")
		if line == "" && rest == "" {
			break
		}
		st.feed(line)
		raw = rest
	}
	return st.finish()
}

// state is the parse loop's mutable state. Builders never escape a parse call.
type state struct {
	lineNo int
	files  []diffcore.FileDiff
	file   *fileBuilder
	hunk   *hunkBuilder
}

type fileBuilder struct {
	gitHeader  bool // opened by a "diff --git" line
	path       string
	oldPath    string
	hasOldPath bool
	oldDevNull bool
	change     diffcore.ChangeType
	explicit   bool // change was set by a new/deleted/rename/copy signal
	isBinary   bool
	oldMode    *string
	newMode    *string
	oldHash    *string
	newHash    *string
	similarity *int
	hunks      []diffcore.Hunk
}

type hunkBuilder struct {
	hunk         diffcore.Hunk
	oldLine      int
	newLine      int
	oldRemaining int
	newRemaining int
}

func (s *state) hunkState() HunkState {
	if s.hunk == nil {
		return HunkState{}
	}
	return HunkState{Open: true, OldRemaining: s.hunk.oldRemaining, NewRemaining: s.hunk.newRemaining}
}

func (s *state) feed(line string) {
	s.lineNo++
	c := Classify(line, s.hunkState())

	switch c.Kind {
	case KindFileHeader:
		s.flushFile()
		s.file = &fileBuilder{gitHeader: true}
		if oldPath, newPath, ok := splitGitHeader(c.Value); ok {
			s.file.path = newPath
			s.file.oldPath = oldPath
			s.file.hasOldPath = true
		}
		return
	case KindOldPath:
		// In a traditional (non-git) diff a "---" with no open file, or
		// after the open file's hunks, starts the next file. A git block
		// only ends at the next "diff --git".
		if s.file == nil || !s.file.gitHeader && (s.hunk != nil || len(s.file.hunks) > 0) {
			s.flushFile()
			s.file = &fileBuilder{}
		}
	case KindHunkHeader:
		if s.file == nil {
			return
		}
		s.flushHunk()
		h := c.Header
		s.hunk = &hunkBuilder{
			hunk: diffcore.Hunk{
				OldStart: h.OldStart,
				OldCount: h.OldCount,
				NewStart: h.NewStart,
				NewCount: h.NewCount,
				Comment:  h.Comment,
				Header:   line,
			},
			oldLine:      h.OldStart,
			newLine:      h.NewStart,
			oldRemaining: h.OldCount,
			newRemaining: h.NewCount,
		}
		return
	case KindAddition, KindDeletion, KindContext, KindNoNewline:
		s.hunk.add(c, line, s.lineNo)
		return
	case KindUnrecognized:
		return
	}

	if s.file != nil {
		s.file.apply(c)
	}
}

// apply records a file-level metadata line.
func (f *fileBuilder) apply(c Classified) {
	switch c.Kind {
	case KindOldMode:
		f.oldMode = diffcore.Ptr(c.Value)
	case KindNewMode:
		f.newMode = diffcore.Ptr(c.Value)
	case KindDeletedFileMode:
		f.oldMode = diffcore.Ptr(c.Value)
		f.setChange(diffcore.ChangeDeleted)
	case KindNewFileMode:
		f.newMode = diffcore.Ptr(c.Value)
		f.setChange(diffcore.ChangeAdded)
	case KindSimilarity:
		if n, ok := percent(c.Value); ok {
			f.similarity = &n
		}
	case KindDissimilarity:
		if n, ok := percent(c.Value); ok {
			f.similarity = diffcore.Ptr(100 - n)
		}
	case KindRenameFrom:
		f.setOldPath(UnquotePath(c.Value))
		f.setChange(diffcore.ChangeRenamed)
	case KindRenameTo:
		f.path = UnquotePath(c.Value)
	case KindCopyFrom:
		f.setOldPath(UnquotePath(c.Value))
		f.setChange(diffcore.ChangeCopied)
	case KindCopyTo:
		f.path = UnquotePath(c.Value)
	case KindIndex:
		f.applyIndex(c.Value)
	case KindBinary:
		f.isBinary = true
	case KindOldPath:
		p := headerPath(c.Value)
		if p == devNull {
			f.oldDevNull = true
			return
		}
		f.setOldPath(strings.TrimPrefix(p, "a/"))
	case KindNewPath:
		p := headerPath(c.Value)
		if p == devNull {
			f.setChange(diffcore.ChangeDeleted)
			return
		}
		f.path = strings.TrimPrefix(p, "b/")
	}
}

func (f *fileBuilder) setChange(ct diffcore.ChangeType) {
	f.change = ct
	f.explicit = true
}

func (f *fileBuilder) setOldPath(p string) {
	f.oldPath = p
	f.hasOldPath = true
}

// applyIndex records the hash pair of "<old>..<new>[ <mode>]". The
// trailing mode is not a mode line and is ignored.
func (f *fileBuilder) applyIndex(v string) {
	hashes, _, _ := strings.Cut(v, " ")
	oldHash, newHash, ok := strings.Cut(hashes, "..")
	if !ok {
		return
	}
	f.oldHash = diffcore.Ptr(oldHash)
	f.newHash = diffcore.Ptr(newHash)
}

func (h *hunkBuilder) add(c Classified, raw string, id int) {
	if c.Kind == KindNoNewline {
		if n := len(h.hunk.Lines); n > 0 {
			h.hunk.Lines[n-1].NoNewline = true
		}
		return
	}

	l := diffcore.Line{ID: id, Content: c.Value, Raw: raw}
	switch c.Kind {
	case KindAddition:
		l.Type = diffcore.LineAdded
		l.NewLineNum = h.newLine
		h.newLine++
		h.newRemaining--
	case KindDeletion:
		l.Type = diffcore.LineDeleted
		l.OldLineNum = h.oldLine
		h.oldLine++
		h.oldRemaining--
	default:
		l.Type = diffcore.LineContext
		l.OldLineNum = h.oldLine
		l.NewLineNum = h.newLine
		h.oldLine++
		h.newLine++
		h.oldRemaining--
		h.newRemaining--
	}
	h.hunk.Lines = append(h.hunk.Lines, l)
}

func (s *state) flushHunk() {
	if s.hunk == nil {
		return
	}
	if s.file != nil {
		s.file.hunks = append(s.file.hunks, s.hunk.hunk)
	}
	s.hunk = nil
}

func (s *state) flushFile() {
	s.flushHunk()
	if s.file == nil {
		return
	}
	s.files = append(s.files, s.file.build())
	s.file = nil
}

func (s *state) finish() []diffcore.FileDiff {
	s.flushFile()
	if s.files == nil {
		return []diffcore.FileDiff{}
	}
	return s.files
}

// build freezes the builder into a FileDiff, resolving the change type.
func (f *fileBuilder) build() diffcore.FileDiff {
	path := f.path
	if path == "" && f.hasOldPath {
		path = f.oldPath
	}

	change := f.change
	if !f.explicit {
		switch {
		case f.hasOldPath && f.oldPath != path:
			change = diffcore.ChangeRenamed
		case f.oldDevNull:
			change = diffcore.ChangeAdded
		}
	}

	fd := diffcore.FileDiff{
		Path:       path,
		Change:     change,
		IsBinary:   f.isBinary,
		OldMode:    f.oldMode,
		NewMode:    f.newMode,
		OldHash:    f.oldHash,
		NewHash:    f.newHash,
		Similarity: f.similarity,
		Hunks:      f.hunks,
	}
	if f.hasOldPath && f.oldPath != path {
		fd.OldPath = diffcore.Ptr(f.oldPath)
	}
	if fd.Hunks == nil {
		fd.Hunks = []diffcore.Hunk{}
	}
	return fd
}

func percent(v string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(v, "%"))
	if err != nil {
		return 0, false
	}
	return n, true
}
