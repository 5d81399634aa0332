package unidiff

import (
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(?: (.*))?$`)

// HunkHeader is the parsed form of an "@@ -a,b +c,d @@ comment" line.
type HunkHeader struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Comment  string
}

// ParseHunkHeader parses a hunk header line. An omitted count defaults to 1.
// ok is false when line does not match the hunk header grammar.
func ParseHunkHeader(line string) (h HunkHeader, ok bool) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return HunkHeader{}, false
	}
	var err error
	if h.OldStart, err = strconv.Atoi(m[1]); err != nil {
		return HunkHeader{}, false
	}
	if h.OldCount, err = atoiDefault(m[2], 1); err != nil {
		return HunkHeader{}, false
	}
	if h.NewStart, err = strconv.Atoi(m[3]); err != nil {
		return HunkHeader{}, false
	}
	if h.NewCount, err = atoiDefault(m[4], 1); err != nil {
		return HunkHeader{}, false
	}
	h.Comment = m[5]
	return h, true
}

// String formats the header the way git does: a count of 1 is omitted.
func (h HunkHeader) String() string {
	var b strings.Builder
	b.WriteString("@@ -")
	writeRange(&b, h.OldStart, h.OldCount)
	b.WriteString(" +")
	writeRange(&b, h.NewStart, h.NewCount)
	b.WriteString(" @@")
	if h.Comment != "" {
		b.WriteByte(' ')
		b.WriteString(h.Comment)
	}
	return b.String()
}

func writeRange(b *strings.Builder, start, count int) {
	b.WriteString(strconv.Itoa(start))
	if count != 1 {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(count))
	}
}

func atoiDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
