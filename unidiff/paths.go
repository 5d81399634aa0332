package unidiff

import (
	"regexp"
	"strconv"
	"strings"
)

// devNull is the path git writes for the missing side of an added or
// deleted file.
const devNull = "/dev/null"

var gitHeaderRe = regexp.MustCompile(`^a/(.+) b/(.+)$`)

// splitGitHeader extracts the old and new paths from the text following
// "diff --git ".
func splitGitHeader(rest string) (oldPath, newPath string, ok bool) {
	if strings.HasPrefix(rest, `"`) || strings.HasSuffix(rest, `"`) {
		return splitQuotedHeader(rest)
	}

	// "a/P b/P" is ambiguous when P contains " b/"; equal halves settle it.
	if n := len(rest); n%2 == 1 {
		half := n / 2
		a, b := rest[:half], rest[half+1:]
		if rest[half] == ' ' && strings.HasPrefix(a, "a/") && strings.HasPrefix(b, "b/") && a[2:] == b[2:] {
			return a[2:], b[2:], true
		}
	}

	m := gitHeaderRe.FindStringSubmatch(rest)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func splitQuotedHeader(rest string) (oldPath, newPath string, ok bool) {
	first, tail, ok := nextHeaderToken(rest)
	if !ok {
		return "", "", false
	}
	second, tail, ok := nextHeaderToken(strings.TrimPrefix(tail, " "))
	if !ok || tail != "" {
		return "", "", false
	}
	oldPath, okOld := strings.CutPrefix(first, "a/")
	newPath, okNew := strings.CutPrefix(second, "b/")
	return oldPath, newPath, okOld && okNew
}

// nextHeaderToken reads one possibly quoted path from s.
func nextHeaderToken(s string) (tok, tail string, ok bool) {
	if strings.HasPrefix(s, `"`) {
		q, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", "", false
		}
		tok, err = strconv.Unquote(q)
		if err != nil {
			return "", "", false
		}
		return tok, s[len(q):], true
	}
	if i := strings.Index(s, ` "`); i >= 0 {
		return s[:i], s[i:], true
	}
	return s, "", true
}

// headerPath cleans the value of a "--- " or "+++ " line: git appends a TAB
// to names containing spaces and traditional diffs put a timestamp there.
func headerPath(v string) string {
	if i := strings.IndexByte(v, '\t'); i >= 0 {
		v = v[:i]
	}
	return UnquotePath(v)
}

// UnquotePath decodes a C-style quoted path as written by git. Unquoted or
// malformed input is returned unchanged.
func UnquotePath(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	u, err := strconv.Unquote(s)
	if err != nil {
		return s
	}
	return u
}

// quote renders a path the way git does when it contains bytes that would
// break header parsing. Other paths are returned unchanged.
func quote(s string) string {
	if !needsQuote(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		default:
			if c < 0x20 || c == 0x7f {
				b.WriteByte('\\')
				b.WriteString(strconv.FormatInt(int64(c)|0o1000, 8)[1:])
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuote(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '"' || c == '\\' || c < 0x20 || c == 0x7f {
			return true
		}
	}
	return false
}
