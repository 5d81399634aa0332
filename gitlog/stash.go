package gitlog

import (
	"strconv"
	"strings"

	"github.com/fwojciec/diffcore"
)

const stashFields = 4

// ParseStashes parses git stash list output produced with StashFormat.
func ParseStashes(raw string) ([]diffcore.Stash, error) {
	stashes := []diffcore.Stash{}
	for line := range strings.SplitSeq(raw, "\n") {
		if line == "" {
			continue
		}
		f := strings.SplitN(line, FieldSep, stashFields)
		if len(f) < stashFields {
			return nil, missingFields("stash", line)
		}
		index, ok := stashIndex(f[0])
		if !ok {
			return nil, &diffcore.ParseError{Kind: "stash", Raw: line, Err: diffcore.ErrInvalidHeader}
		}
		date, err := parseDate("stash", line, f[2])
		if err != nil {
			return nil, err
		}
		branch, message := splitStashSubject(f[3])
		stashes = append(stashes, diffcore.Stash{
			Index:   index,
			Ref:     f[0],
			Hash:    f[1],
			Branch:  branch,
			Message: message,
			Date:    date,
		})
	}
	return stashes, nil
}

// stashIndex extracts N from "stash@{N}".
func stashIndex(ref string) (int, bool) {
	s, ok := strings.CutPrefix(ref, "stash@{")
	if !ok {
		return 0, false
	}
	s, ok = strings.CutSuffix(s, "}")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// splitStashSubject splits "WIP on main: abc123 msg" or "On main: msg"
// into branch and message. Other subjects are returned whole.
func splitStashSubject(subject string) (branch, message string) {
	rest, ok := strings.CutPrefix(subject, "WIP on ")
	if !ok {
		rest, ok = strings.CutPrefix(subject, "On ")
	}
	if !ok {
		return "", subject
	}
	branch, message, ok = strings.Cut(rest, ": ")
	if !ok {
		return "", subject
	}
	return branch, message
}
