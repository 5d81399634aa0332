package diffcore

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ParseError.
var (
	ErrMissingFields = errors.New("missing fields")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidHeader = errors.New("invalid header")
)

// ParseError is returned by the record parsers when a fragment of their
// input does not fit the expected schema. Raw holds the offending fragment.
type ParseError struct {
	Kind string // Record kind, e.g. "commit"
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v: %q", e.Kind, e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
