package gitlog

import (
	"strings"

	"github.com/fwojciec/diffcore"
)

const tagFields = 4

// ParseTags parses git for-each-ref refs/tags output produced with TagFormat.
func ParseTags(raw string) ([]diffcore.Tag, error) {
	tags := []diffcore.Tag{}
	for line := range strings.SplitSeq(raw, "\n") {
		if line == "" {
			continue
		}
		f := strings.SplitN(line, FieldSep, tagFields)
		if len(f) < tagFields {
			return nil, missingFields("tag", line)
		}
		date, err := parseDate("tag", line, f[2])
		if err != nil {
			return nil, err
		}
		tags = append(tags, diffcore.Tag{
			Name:    f[0],
			Hash:    f[1],
			Date:    date,
			Subject: f[3],
		})
	}
	return tags, nil
}

// ParseRemotes parses git remote -v output. Remotes keep the order in
// which they first appear; lines that do not fit are skipped.
func ParseRemotes(raw string) []diffcore.Remote {
	remotes := []diffcore.Remote{}
	index := make(map[string]int)
	for line := range strings.SplitSeq(raw, "\n") {
		name, rest, ok := strings.Cut(line, "\t")
		if !ok || name == "" {
			continue
		}
		url, kind, _ := strings.Cut(rest, " ")
		i, seen := index[name]
		if !seen {
			i = len(remotes)
			index[name] = i
			remotes = append(remotes, diffcore.Remote{Name: name})
		}
		switch kind {
		case "(push)":
			remotes[i].PushURL = url
		default:
			remotes[i].FetchURL = url
		}
	}
	return remotes
}
