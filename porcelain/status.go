// Package porcelain parses the output of git status --porcelain.
//
// Each entry is "XY PATH", where X is the index status and Y the work tree
// status. With -z entries are NUL-terminated and a rename or copy is
// followed by an extra record holding the source path; without -z the
// source is written inline as "OLD -> NEW".
package porcelain

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/fwojciec/diffcore"
	"github.com/fwojciec/diffcore/unidiff"
)

// Parse parses NUL-delimited git status --porcelain -z output.
func Parse(raw string) []diffcore.FileStatus {
	return parseRecords(strings.Split(raw, "\x00"))
}

// ParseReader is Parse over a stream.
func ParseReader(r io.Reader) ([]diffcore.FileStatus, error) {
	var records []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(scanNUL)
	for sc.Scan() {
		records = append(records, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return parseRecords(records), nil
}

func parseRecords(records []string) []diffcore.FileStatus {
	statuses := []diffcore.FileStatus{}
	for i := 0; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 4 {
			continue
		}
		st := newStatus(rec[0], rec[1], rec[3:])
		if hasSource(rec[0]) && i+1 < len(records) {
			i++
			st.OldPath = diffcore.Ptr(records[i])
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// ParseLines parses newline-delimited git status --porcelain output.
// Quoted paths are unquoted.
func ParseLines(raw string) []diffcore.FileStatus {
	statuses := []diffcore.FileStatus{}
	for line := range strings.SplitSeq(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		var oldPath *string
		if hasSource(line[0]) {
			if from, to, ok := strings.Cut(path, " -> "); ok {
				oldPath = diffcore.Ptr(unidiff.UnquotePath(from))
				path = to
			}
		}
		st := newStatus(line[0], line[1], unidiff.UnquotePath(path))
		st.OldPath = oldPath
		statuses = append(statuses, st)
	}
	return statuses
}

func newStatus(x, y byte, path string) diffcore.FileStatus {
	st := diffcore.FileStatus{Path: path}
	switch {
	case x == '?' && y == '?':
		st.IndexChange = diffcore.Ptr(diffcore.ChangeUntracked)
		st.WorkTreeChange = diffcore.Ptr(diffcore.ChangeUntracked)
	case x == '!' && y == '!':
		st.IndexChange = diffcore.Ptr(diffcore.ChangeIgnored)
		st.WorkTreeChange = diffcore.Ptr(diffcore.ChangeIgnored)
	default:
		st.IndexChange = ParseCode(x)
		st.WorkTreeChange = ParseCode(y)
	}
	return st
}

// ParseCode maps one status character to a change type. A space, and any
// character outside the table, mean no change in that area.
func ParseCode(c byte) *diffcore.ChangeType {
	var ct diffcore.ChangeType
	switch c {
	case 'M':
		ct = diffcore.ChangeModified
	case 'A':
		ct = diffcore.ChangeAdded
	case 'D':
		ct = diffcore.ChangeDeleted
	case 'R':
		ct = diffcore.ChangeRenamed
	case 'C':
		ct = diffcore.ChangeCopied
	case 'T':
		ct = diffcore.ChangeTypeChanged
	case 'U':
		ct = diffcore.ChangeUnmerged
	default:
		return nil
	}
	return &ct
}

func hasSource(x byte) bool {
	return x == 'R' || x == 'C'
}

func scanNUL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
