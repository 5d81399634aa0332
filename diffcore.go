// Package diffcore provides domain types for parsed git output: unified
// diffs, working-tree status entries, and the auxiliary log records.
package diffcore

// Diff represents a complete diff containing one or more file changes.
type Diff struct {
	Files []FileDiff `json:"files"`
}

// FileDiff represents changes to a single file.
type FileDiff struct {
	Path       string     `json:"path"`                 // Current (new) path
	OldPath    *string    `json:"old_path,omitempty"`   // Set only when it differs from Path
	Change     ChangeType `json:"change"`               // Added, Deleted, Modified, Renamed, Copied
	IsBinary   bool       `json:"is_binary"`            // Binary files have no hunks
	OldMode    *string    `json:"old_mode,omitempty"`   // e.g. "100644"
	NewMode    *string    `json:"new_mode,omitempty"`
	OldHash    *string    `json:"old_hash,omitempty"`   // Abbreviated blob hash from the index line
	NewHash    *string    `json:"new_hash,omitempty"`
	Similarity *int       `json:"similarity,omitempty"` // 0-100, rename/copy confidence
	Hunks      []Hunk     `json:"hunks"`
}

// Additions returns the number of added lines across all hunks.
func (f FileDiff) Additions() int {
	return f.count(LineAdded)
}

// Deletions returns the number of deleted lines across all hunks.
func (f FileDiff) Deletions() int {
	return f.count(LineDeleted)
}

func (f FileDiff) count(t LineType) int {
	var n int
	for _, h := range f.Hunks {
		for _, l := range h.Lines {
			if l.Type == t {
				n++
			}
		}
	}
	return n
}

// Hunk represents a contiguous block of changes within a file.
type Hunk struct {
	OldStart int    `json:"old_start"`         // From @@ -X,...
	OldCount int    `json:"old_count"`         // From @@ -X,Y ...
	NewStart int    `json:"new_start"`         // From @@ ...,+X
	NewCount int    `json:"new_count"`         // From @@ ...,+X,Y
	Comment  string `json:"comment,omitempty"` // Optional function name after @@ ... @@
	Header   string `json:"header"`            // Raw header line as it appeared in the input
	Lines    []Line `json:"lines"`
}

// Line represents a single line within a hunk.
type Line struct {
	ID         int      `json:"id"`                   // 1-based input line number, 0 when built programmatically
	Type       LineType `json:"type"`
	Content    string   `json:"content"`              // Without the leading marker
	OldLineNum int      `json:"old_line,omitempty"`   // 0 if line is Added
	NewLineNum int      `json:"new_line,omitempty"`   // 0 if line is Deleted
	NoNewline  bool     `json:"no_newline,omitempty"` // "\ No newline at end of file" follows this line
	Raw        string   `json:"raw"`                  // Marker included
}

// LineType represents the type of a diff line.
type LineType int

// Line types.
const (
	LineContext LineType = iota
	LineAdded
	LineDeleted
)

func (lt LineType) String() string {
	switch lt {
	case LineAdded:
		return "added"
	case LineDeleted:
		return "deleted"
	default:
		return "context"
	}
}

// Marker returns the unified diff prefix character for the line type.
func (lt LineType) Marker() byte {
	switch lt {
	case LineAdded:
		return '+'
	case LineDeleted:
		return '-'
	default:
		return ' '
	}
}

// ChangeType represents the kind of change made to a path. The zero value
// is ChangeModified, which is what a file diff resolves to absent any
// explicit signal.
type ChangeType int

// Change types. The last four only occur in working-tree status entries.
const (
	ChangeModified ChangeType = iota
	ChangeAdded
	ChangeDeleted
	ChangeRenamed
	ChangeCopied
	ChangeTypeChanged
	ChangeUnmerged
	ChangeUntracked
	ChangeIgnored
)

func (ct ChangeType) String() string {
	switch ct {
	case ChangeAdded:
		return "added"
	case ChangeDeleted:
		return "deleted"
	case ChangeRenamed:
		return "renamed"
	case ChangeCopied:
		return "copied"
	case ChangeTypeChanged:
		return "typechange"
	case ChangeUnmerged:
		return "unmerged"
	case ChangeUntracked:
		return "untracked"
	case ChangeIgnored:
		return "ignored"
	default:
		return "modified"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (ct ChangeType) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ct *ChangeType) UnmarshalText(b []byte) error {
	for c := ChangeModified; c <= ChangeIgnored; c++ {
		if c.String() == string(b) {
			*ct = c
			return nil
		}
	}
	return &ParseError{Kind: "change type", Raw: string(b), Err: ErrInvalidHeader}
}

// MarshalText implements encoding.TextMarshaler.
func (lt LineType) MarshalText() ([]byte, error) {
	return []byte(lt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (lt *LineType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "added":
		*lt = LineAdded
	case "deleted":
		*lt = LineDeleted
	case "context":
		*lt = LineContext
	default:
		return &ParseError{Kind: "line type", Raw: string(b), Err: ErrInvalidHeader}
	}
	return nil
}

// Ptr returns a pointer to v. Used to fill optional fields.
func Ptr[T any](v T) *T {
	return &v
}
