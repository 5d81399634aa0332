package gitlog

import (
	"strings"

	"github.com/fwojciec/diffcore"
)

const commitFields = 8

// ParseLog parses git log output produced with LogFormat.
func ParseLog(raw string) ([]diffcore.Commit, error) {
	commits := []diffcore.Commit{}
	for rec := range strings.SplitSeq(raw, RecordSep) {
		rec = strings.TrimLeft(rec, "\n")
		if rec == "" {
			continue
		}
		c, err := parseCommit(rec)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func parseCommit(rec string) (diffcore.Commit, error) {
	f := strings.SplitN(rec, FieldSep, commitFields)
	if len(f) < commitFields {
		return diffcore.Commit{}, missingFields("commit", rec)
	}
	date, err := parseDate("commit", rec, f[4])
	if err != nil {
		return diffcore.Commit{}, err
	}
	return diffcore.Commit{
		Hash:        f[0],
		ShortHash:   f[1],
		Author:      f[2],
		AuthorEmail: f[3],
		Date:        date,
		Parents:     strings.Fields(f[5]),
		Subject:     f[6],
		Body:        strings.TrimRight(f[7], "\n"),
	}, nil
}
