package unidiff

import (
	"strconv"
	"strings"

	"github.com/fwojciec/diffcore"
)

// HunkPatch renders h as a standalone patch against path, suitable for
// "git apply --cached [--reverse] --unidiff-zero". The header is rebuilt
// from the hunk's start and count fields, so programmatically built hunks
// serialize correctly.
func HunkPatch(path string, h diffcore.Hunk) string {
	var b strings.Builder
	p := quote(path)
	b.WriteString("--- " + prefixPath("a/", p) + "\n")
	b.WriteString("+++ " + prefixPath("b/", p) + "\n")
	writeHunk(&b, h)
	return b.String()
}

// FilePatch renders a whole file diff, extended headers included, in the
// form git diff emits it.
func FilePatch(f diffcore.FileDiff) string {
	var b strings.Builder
	oldPath := f.Path
	if f.OldPath != nil {
		oldPath = *f.OldPath
	}
	oldQ, newQ := quote(oldPath), quote(f.Path)

	b.WriteString("diff --git " + prefixPath("a/", oldQ) + " " + prefixPath("b/", newQ) + "\n")

	switch f.Change {
	case diffcore.ChangeAdded:
		if f.NewMode != nil {
			b.WriteString("new file mode " + *f.NewMode + "\n")
		}
	case diffcore.ChangeDeleted:
		if f.OldMode != nil {
			b.WriteString("deleted file mode " + *f.OldMode + "\n")
		}
	default:
		if f.OldMode != nil && f.NewMode != nil && *f.OldMode != *f.NewMode {
			b.WriteString("old mode " + *f.OldMode + "\n")
			b.WriteString("new mode " + *f.NewMode + "\n")
		}
	}

	if f.Similarity != nil && (f.Change == diffcore.ChangeRenamed || f.Change == diffcore.ChangeCopied) {
		b.WriteString("similarity index " + strconv.Itoa(*f.Similarity) + "%\n")
	}
	switch f.Change {
	case diffcore.ChangeRenamed:
		b.WriteString("rename from " + oldQ + "\n")
		b.WriteString("rename to " + newQ + "\n")
	case diffcore.ChangeCopied:
		b.WriteString("copy from " + oldQ + "\n")
		b.WriteString("copy to " + newQ + "\n")
	}

	if f.OldHash != nil && f.NewHash != nil {
		b.WriteString("index " + *f.OldHash + ".." + *f.NewHash)
		if f.OldMode != nil && f.NewMode != nil && *f.OldMode == *f.NewMode {
			b.WriteString(" " + *f.NewMode)
		}
		b.WriteByte('\n')
	}

	if f.IsBinary {
		b.WriteString("Binary files " + sidePath("a/", oldQ, f.Change == diffcore.ChangeAdded) +
			" and " + sidePath("b/", newQ, f.Change == diffcore.ChangeDeleted) + " differ\n")
		return b.String()
	}
	if len(f.Hunks) == 0 {
		return b.String()
	}

	b.WriteString("--- " + sidePath("a/", oldQ, f.Change == diffcore.ChangeAdded) + "\n")
	b.WriteString("+++ " + sidePath("b/", newQ, f.Change == diffcore.ChangeDeleted) + "\n")
	for _, h := range f.Hunks {
		writeHunk(&b, h)
	}
	return b.String()
}

// Reverse returns h with its sides swapped: additions become deletions and
// vice versa. Applying the reversed hunk undoes the original.
func Reverse(h diffcore.Hunk) diffcore.Hunk {
	r := diffcore.Hunk{
		OldStart: h.NewStart,
		OldCount: h.NewCount,
		NewStart: h.OldStart,
		NewCount: h.OldCount,
		Comment:  h.Comment,
		Lines:    make([]diffcore.Line, len(h.Lines)),
	}
	r.Header = headerOf(r).String()
	for i, l := range h.Lines {
		l.OldLineNum, l.NewLineNum = l.NewLineNum, l.OldLineNum
		switch l.Type {
		case diffcore.LineAdded:
			l.Type = diffcore.LineDeleted
		case diffcore.LineDeleted:
			l.Type = diffcore.LineAdded
		}
		l.Raw = string(l.Type.Marker()) + l.Content
		r.Lines[i] = l
	}
	return r
}

func writeHunk(b *strings.Builder, h diffcore.Hunk) {
	b.WriteString(headerOf(h).String())
	b.WriteByte('\n')
	for _, l := range h.Lines {
		b.WriteByte(l.Type.Marker())
		b.WriteString(l.Content)
		b.WriteByte('\n')
		if l.NoNewline {
			b.WriteString(noNewlineMarker)
			b.WriteByte('\n')
		}
	}
}

func headerOf(h diffcore.Hunk) HunkHeader {
	return HunkHeader{
		OldStart: h.OldStart,
		OldCount: h.OldCount,
		NewStart: h.NewStart,
		NewCount: h.NewCount,
		Comment:  h.Comment,
	}
}

// prefixPath joins a side prefix with a possibly quoted path: a/"x" is
// written "a/x" with the quotes outside.
func prefixPath(prefix, p string) string {
	if strings.HasPrefix(p, `"`) {
		return `"` + prefix + p[1:]
	}
	return prefix + p
}

func sidePath(prefix, p string, missing bool) string {
	if missing {
		return devNull
	}
	return prefixPath(prefix, p)
}
