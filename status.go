package diffcore

// FileStatus represents one working-tree entry from git status --porcelain.
// A nil area change means that area has no change for the path.
type FileStatus struct {
	Path           string      `json:"path"`
	IndexChange    *ChangeType `json:"index_change,omitempty"`    // Position 0
	WorkTreeChange *ChangeType `json:"worktree_change,omitempty"` // Position 1
	OldPath        *string     `json:"old_path,omitempty"`        // Rename or copy source
}

// IsUntracked reports whether the path is not known to the index.
func (s FileStatus) IsUntracked() bool {
	return is(s.IndexChange, ChangeUntracked) && is(s.WorkTreeChange, ChangeUntracked)
}

// IsIgnored reports whether the path matched an ignore rule.
func (s FileStatus) IsIgnored() bool {
	return is(s.IndexChange, ChangeIgnored) && is(s.WorkTreeChange, ChangeIgnored)
}

// Staging derives where the entry's changes live.
func (s FileStatus) Staging() Staging {
	if s.IsUntracked() || s.IsIgnored() {
		return StagingNone
	}
	hasStaged := s.IndexChange != nil
	hasUnstaged := s.WorkTreeChange != nil

	switch {
	case hasStaged && hasUnstaged:
		return StagingBoth
	case hasStaged:
		return StagingIndex
	case hasUnstaged:
		return StagingWorkTree
	default:
		return StagingNone
	}
}

func is(ct *ChangeType, want ChangeType) bool {
	return ct != nil && *ct == want
}

// Staging indicates where a change exists (index vs work tree).
type Staging int

// Staging states.
const (
	StagingNone Staging = iota
	StagingIndex
	StagingWorkTree
	StagingBoth
)

func (s Staging) String() string {
	switch s {
	case StagingIndex:
		return "staged"
	case StagingWorkTree:
		return "unstaged"
	case StagingBoth:
		return "both"
	default:
		return "none"
	}
}
