package diffcore

import "time"

// Commit is one entry of git log output.
type Commit struct {
	Hash        string    `json:"hash"`
	ShortHash   string    `json:"short_hash"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"author_email"`
	Date        time.Time `json:"date"`
	Parents     []string  `json:"parents,omitempty"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body,omitempty"`
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Tag is one tag ref.
type Tag struct {
	Name    string    `json:"name"`
	Hash    string    `json:"hash"`
	Date    time.Time `json:"date"`
	Subject string    `json:"subject,omitempty"`
}

// Stash is one entry of git stash list.
type Stash struct {
	Index   int       `json:"index"` // N in stash@{N}
	Ref     string    `json:"ref"`
	Hash    string    `json:"hash"`
	Branch  string    `json:"branch,omitempty"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// Remote is a named remote with its fetch and push URLs.
type Remote struct {
	Name     string `json:"name"`
	FetchURL string `json:"fetch_url,omitempty"`
	PushURL  string `json:"push_url,omitempty"`
}

// BlameLine attributes one line of a file to the commit that last touched it.
type BlameLine struct {
	Hash       string    `json:"hash"`
	Author     string    `json:"author"`
	AuthorMail string    `json:"author_mail"`
	AuthorTime time.Time `json:"author_time"`
	Summary    string    `json:"summary,omitempty"`
	OrigLine   int       `json:"orig_line"`
	FinalLine  int       `json:"final_line"`
	Content    string    `json:"content"`
}
