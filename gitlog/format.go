// Package gitlog parses field-delimited git output: commit logs, tag refs,
// stash lists, remotes and blame.
//
// The Format constants are the arguments callers pass to git so the output
// matches what the parsers expect. Fields are separated by U+001F and log
// records by U+001E, control characters that do not occur in commit
// metadata.
package gitlog

import (
	"time"

	"github.com/fwojciec/diffcore"
)

// Separators used by the format strings.
const (
	FieldSep  = "\x1f"
	RecordSep = "\x1e"
)

// LogFormat is the git log --format argument read by ParseLog.
const LogFormat = "%H%x1f%h%x1f%an%x1f%ae%x1f%aI%x1f%P%x1f%s%x1f%b%x1e"

// TagFormat is the git for-each-ref --format argument read by ParseTags.
const TagFormat = "%(refname:short)%1f%(objectname)%1f%(creatordate:iso-strict)%1f%(contents:subject)"

// StashFormat is the git stash list --format argument read by ParseStashes.
const StashFormat = "%gd%x1f%H%x1f%aI%x1f%gs"

// dateLayouts are tried in order: strict ISO 8601 (%aI) and git's default
// ISO-like format (%ai).
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
}

func parseDate(kind, raw, s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &diffcore.ParseError{Kind: kind, Raw: raw, Err: diffcore.ErrInvalidDate}
}

func missingFields(kind, raw string) error {
	return &diffcore.ParseError{Kind: kind, Raw: raw, Err: diffcore.ErrMissingFields}
}
