// Package jsonl reads and writes file diffs as JSON Lines, one FileDiff
// record per line.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/diffcore"
)

// Writer encodes file diffs as JSON Lines.
type Writer struct {
	enc *json.Encoder
}

// NewWriter creates a writer that emits one record per line to w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Write encodes a single file diff.
func (w *Writer) Write(f diffcore.FileDiff) error {
	if err := w.enc.Encode(f); err != nil {
		return fmt.Errorf("encode %s: %w", f.Path, err)
	}
	return nil
}

// WriteDiff encodes every file of diff in order.
func (w *Writer) WriteDiff(diff *diffcore.Diff) error {
	if diff == nil {
		return nil
	}
	for _, f := range diff.Files {
		if err := w.Write(f); err != nil {
			return err
		}
	}
	return nil
}

// Loader reads file diffs from JSON Lines files.
type Loader struct{}

// NewLoader creates a new JSONL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads all records from the file at path.
func (l *Loader) Load(path string) ([]diffcore.FileDiff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Read(f)
}

// Read decodes records from r. Blank lines are skipped and lines have no
// length limit. Decode errors name the offending line.
func (l *Loader) Read(r io.Reader) ([]diffcore.FileDiff, error) {
	br := bufio.NewReader(r)
	var files []diffcore.FileDiff
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read line %d: %w", lineNo, err)
		}
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			var fd diffcore.FileDiff
			if uerr := json.Unmarshal(trimmed, &fd); uerr != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, uerr)
			}
			if fd.Hunks == nil {
				fd.Hunks = []diffcore.Hunk{}
			}
			files = append(files, fd)
		}
		if errors.Is(err, io.EOF) {
			return files, nil
		}
	}
}
