package gitlog

import (
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/diffcore"
)

type blameCommit struct {
	author     string
	authorMail string
	authorTime time.Time
	summary    string
}

// ParseBlame parses git blame --porcelain or --line-porcelain output.
// Commit metadata seen once is reused for later lines of the same commit.
func ParseBlame(raw string) ([]diffcore.BlameLine, error) {
	lines := []diffcore.BlameLine{}
	commits := make(map[string]*blameCommit)

	var cur *diffcore.BlameLine
	for line := range strings.SplitSeq(raw, "\n") {
		if content, ok := strings.CutPrefix(line, "\t"); ok {
			if cur == nil {
				continue
			}
			c := commits[cur.Hash]
			cur.Author = c.author
			cur.AuthorMail = c.authorMail
			cur.AuthorTime = c.authorTime
			cur.Summary = c.summary
			cur.Content = content
			lines = append(lines, *cur)
			cur = nil
			continue
		}
		if line == "" {
			continue
		}

		if cur == nil {
			hdr, err := parseBlameHeader(line)
			if err != nil {
				return nil, err
			}
			cur = &hdr
			if commits[cur.Hash] == nil {
				commits[cur.Hash] = &blameCommit{}
			}
			continue
		}

		if err := commits[cur.Hash].apply(line); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// parseBlameHeader reads "<hash> <orig-line> <final-line> [<group-size>]".
func parseBlameHeader(line string) (diffcore.BlameLine, error) {
	f := strings.Fields(line)
	if len(f) < 3 {
		return diffcore.BlameLine{}, missingFields("blame", line)
	}
	orig, err := strconv.Atoi(f[1])
	if err != nil {
		return diffcore.BlameLine{}, &diffcore.ParseError{Kind: "blame", Raw: line, Err: diffcore.ErrInvalidHeader}
	}
	final, err := strconv.Atoi(f[2])
	if err != nil {
		return diffcore.BlameLine{}, &diffcore.ParseError{Kind: "blame", Raw: line, Err: diffcore.ErrInvalidHeader}
	}
	return diffcore.BlameLine{Hash: f[0], OrigLine: orig, FinalLine: final}, nil
}

func (c *blameCommit) apply(line string) error {
	key, value, _ := strings.Cut(line, " ")
	switch key {
	case "author":
		c.author = value
	case "author-mail":
		c.authorMail = strings.TrimSuffix(strings.TrimPrefix(value, "<"), ">")
	case "author-time":
		sec, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return &diffcore.ParseError{Kind: "blame", Raw: line, Err: diffcore.ErrInvalidDate}
		}
		c.authorTime = time.Unix(sec, 0).In(c.authorTime.Location())
	case "author-tz":
		if loc, ok := parseTZ(value); ok {
			c.authorTime = c.authorTime.In(loc)
		}
	case "summary":
		c.summary = value
	}
	return nil
}

// parseTZ converts "+0130" into a fixed zone.
func parseTZ(s string) (*time.Location, bool) {
	if len(s) != 5 || (s[0] != '+' && s[0] != '-') {
		return nil, false
	}
	hh, err1 := strconv.Atoi(s[1:3])
	mm, err2 := strconv.Atoi(s[3:5])
	if err1 != nil || err2 != nil {
		return nil, false
	}
	offset := hh*3600 + mm*60
	if s[0] == '-' {
		offset = -offset
	}
	return time.FixedZone(s, offset), true
}
