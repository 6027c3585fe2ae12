// Package core provides the business logic for codet.
// It has zero UI dependencies and is independently testable.
package core

import "time"

// Config represents the codet configuration stored at ~/.codet/config.json.
type Config struct {
	Defaults     Defaults          `json:"defaults"`
	Hotspot      HotspotSettings   `json:"hotspot"`
	Report       ReportSettings    `json:"report"`
	URLTemplates map[string]string `json:"urlTemplates,omitempty"` // host -> template with {owner}, {repo}, {hash}
}

// Defaults holds the analysis defaults applied when a flag is not given.
type Defaults struct {
	Days      int    `json:"days"`
	Mode      string `json:"mode"`
	Recursive bool   `json:"recursive"`
	Hotspot   bool   `json:"hotspot"`
}

// HotspotSettings configures hotspot analysis.
type HotspotSettings struct {
	Exclude []string `json:"exclude,omitempty"` // doublestar globs matched against repo-relative paths
}

// ReportSettings configures where generated files are written.
type ReportSettings struct {
	OutputDir string `json:"outputDir,omitempty"`
}

// Repo is a local Git repository selected for analysis.
type Repo struct {
	Name string
	Path string
}

// Commit is a single analyzed commit.
type Commit struct {
	Hash         string
	Author       string
	Email        string
	Date         time.Time
	Summary      string   // First line of the message
	Message      string   // Full message
	ChangedFiles []string // Repo-relative, forward slashes
	Diff         string   // Unified patch against the first parent
	URL          string   // Web URL; empty when the remote is unknown
	AISummary    string
}

// ShortHash returns the abbreviated 7 character hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// RepoCommits holds the commits of one repository, newest first.
type RepoCommits struct {
	Repo    Repo
	Commits []Commit
}

// CommitRecord is the exported on-disk form of a Commit, keyed by hash in
// its enclosing file. Field names are shared with the dashboard loader.
type CommitRecord struct {
	Author       string   `json:"commit_author" yaml:"commit_author"`
	Email        string   `json:"commit_email" yaml:"commit_email"`
	Date         string   `json:"commit_date" yaml:"commit_date"`
	Summary      string   `json:"commit_summary" yaml:"commit_summary"`
	Message      string   `json:"commit_message" yaml:"commit_message"`
	ChangedFiles []string `json:"commit_changed_files" yaml:"commit_changed_files"`
	Diff         string   `json:"commit_diff_text" yaml:"commit_diff_text"`
	URL          string   `json:"commit_url" yaml:"commit_url"`
	AISummary    string   `json:"ai_summary,omitempty" yaml:"ai_summary,omitempty"`
}

// ToRecord converts a Commit into its exported form.
func (c Commit) ToRecord() CommitRecord {
	files := c.ChangedFiles
	if files == nil {
		files = []string{}
	}
	return CommitRecord{
		Author:       c.Author,
		Email:        c.Email,
		Date:         c.Date.Format(time.RFC3339),
		Summary:      c.Summary,
		Message:      c.Message,
		ChangedFiles: files,
		Diff:         c.Diff,
		URL:          c.URL,
		AISummary:    c.AISummary,
	}
}

// ParsedRemote is a Git remote URL broken into its web-facing parts.
type ParsedRemote struct {
	Host  string
	Owner string // May contain slashes for nested groups (GitLab)
	Repo  string
}
