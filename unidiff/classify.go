package unidiff

import "strings"

// LineKind is the classification of one raw diff line.
type LineKind int

// Line kinds, in the priority order Classify evaluates them.
const (
	KindUnrecognized LineKind = iota
	KindFileHeader
	KindOldMode
	KindNewMode
	KindDeletedFileMode
	KindNewFileMode
	KindSimilarity
	KindDissimilarity
	KindRenameFrom
	KindRenameTo
	KindCopyFrom
	KindCopyTo
	KindIndex
	KindBinary
	KindOldPath
	KindNewPath
	KindHunkHeader
	KindAddition
	KindDeletion
	KindContext
	KindNoNewline
)

var kindNames = [...]string{
	KindUnrecognized:    "unrecognized",
	KindFileHeader:      "file header",
	KindOldMode:         "old mode",
	KindNewMode:         "new mode",
	KindDeletedFileMode: "deleted file mode",
	KindNewFileMode:     "new file mode",
	KindSimilarity:      "similarity",
	KindDissimilarity:   "dissimilarity",
	KindRenameFrom:      "rename from",
	KindRenameTo:        "rename to",
	KindCopyFrom:        "copy from",
	KindCopyTo:          "copy to",
	KindIndex:           "index",
	KindBinary:          "binary",
	KindOldPath:         "old path",
	KindNewPath:         "new path",
	KindHunkHeader:      "hunk header",
	KindAddition:        "addition",
	KindDeletion:        "deletion",
	KindContext:         "context",
	KindNoNewline:       "no newline",
}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

const noNewlineMarker = `\ No newline at end of file`

// prefixes maps the fixed-prefix header kinds to their prefix, in priority order.
var prefixes = []struct {
	kind   LineKind
	prefix string
}{
	{KindFileHeader, "diff --git "},
	{KindOldMode, "old mode "},
	{KindNewMode, "new mode "},
	{KindDeletedFileMode, "deleted file mode "},
	{KindNewFileMode, "new file mode "},
	{KindSimilarity, "similarity index "},
	{KindDissimilarity, "dissimilarity index "},
	{KindRenameFrom, "rename from "},
	{KindRenameTo, "rename to "},
	{KindCopyFrom, "copy from "},
	{KindCopyTo, "copy to "},
	{KindIndex, "index "},
}

// HunkState is what Classify needs to know about the hunk being accumulated.
type HunkState struct {
	Open         bool
	OldRemaining int // Old-side lines the header still promises
	NewRemaining int
}

// Classified is a classified line. Value is the text after the kind's
// prefix or marker; Header is set for KindHunkHeader.
type Classified struct {
	Kind   LineKind
	Value  string
	Header HunkHeader
}

// Classify assigns a kind to one raw diff line. Header prefixes win over
// content markers, except that "--- " and "+++ " are content while the open
// hunk still expects lines on the matching side. An empty line is context
// whenever a hunk is open.
func Classify(line string, st HunkState) Classified {
	for _, p := range prefixes {
		if v, ok := strings.CutPrefix(line, p.prefix); ok {
			return Classified{Kind: p.kind, Value: v}
		}
	}

	if strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ") ||
		line == "GIT binary patch" {
		return Classified{Kind: KindBinary, Value: line}
	}

	if v, ok := strings.CutPrefix(line, "--- "); ok {
		if st.Open && st.OldRemaining > 0 {
			return Classified{Kind: KindDeletion, Value: line[1:]}
		}
		return Classified{Kind: KindOldPath, Value: v}
	}
	if v, ok := strings.CutPrefix(line, "+++ "); ok {
		if st.Open && st.NewRemaining > 0 {
			return Classified{Kind: KindAddition, Value: line[1:]}
		}
		return Classified{Kind: KindNewPath, Value: v}
	}

	if strings.HasPrefix(line, "@@") {
		if h, ok := ParseHunkHeader(line); ok {
			return Classified{Kind: KindHunkHeader, Value: line, Header: h}
		}
	}

	if !st.Open {
		return Classified{Kind: KindUnrecognized, Value: line}
	}

	switch {
	case line == "":
		return Classified{Kind: KindContext}
	case line[0] == '+':
		return Classified{Kind: KindAddition, Value: line[1:]}
	case line[0] == '-':
		return Classified{Kind: KindDeletion, Value: line[1:]}
	case line[0] == ' ':
		return Classified{Kind: KindContext, Value: line[1:]}
	case line == noNewlineMarker:
		return Classified{Kind: KindNoNewline}
	}
	return Classified{Kind: KindUnrecognized, Value: line}
}
