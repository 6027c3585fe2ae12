package core

import (
	"fmt"
	"strings"
)

// Mode selects how filter conditions combine.
type Mode string

const (
	// ModeUnion keeps a commit matching any condition.
	ModeUnion Mode = "union"
	// ModeIntersection keeps a commit only if every given condition holds.
	ModeIntersection Mode = "intersection"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeUnion, "":
		return ModeUnion, nil
	case ModeIntersection:
		return ModeIntersection, nil
	}
	return "", fmt.Errorf("%w %q (want union or intersection)", ErrInvalidMode, s)
}

// Filter selects commits by author email, author name and keyword.
//
// In union mode emails and users must equal a commit's value exactly; in
// intersection mode each one must be contained in it. Keywords are matched
// case-insensitively against the message followed by the diff in both modes.
type Filter struct {
	Emails   []string
	Users    []string
	Keywords []string
	Mode     Mode
}

// Empty reports whether no condition is set.
func (f Filter) Empty() bool {
	return len(f.Emails) == 0 && len(f.Users) == 0 && len(f.Keywords) == 0
}

// Match reports whether a commit passes the filter.
func (f Filter) Match(c *Commit) bool {
	if f.Empty() {
		return true
	}
	if f.Mode == ModeIntersection {
		return f.matchAll(c)
	}
	return f.matchAny(c)
}

func (f Filter) matchAny(c *Commit) bool {
	for _, e := range f.Emails {
		if c.Email == e {
			return true
		}
	}
	for _, u := range f.Users {
		if c.Author == u {
			return true
		}
	}
	if len(f.Keywords) > 0 {
		text := strings.ToLower(c.Message + c.Diff)
		for _, k := range f.Keywords {
			if strings.Contains(text, strings.ToLower(k)) {
				return true
			}
		}
	}
	return false
}

func (f Filter) matchAll(c *Commit) bool {
	for _, e := range f.Emails {
		if !strings.Contains(c.Email, e) {
			return false
		}
	}
	for _, u := range f.Users {
		if !strings.Contains(c.Author, u) {
			return false
		}
	}
	if len(f.Keywords) > 0 {
		text := strings.ToLower(c.Message + c.Diff)
		for _, k := range f.Keywords {
			if !strings.Contains(text, strings.ToLower(k)) {
				return false
			}
		}
	}
	return true
}

// Apply returns the commits passing the filter. Every input repository is
// kept in the output, with an empty commit list if nothing matched.
func (f Filter) Apply(repos []RepoCommits) []RepoCommits {
	out := make([]RepoCommits, 0, len(repos))
	for _, rc := range repos {
		kept := RepoCommits{Repo: rc.Repo}
		for i := range rc.Commits {
			if f.Match(&rc.Commits[i]) {
				kept.Commits = append(kept.Commits, rc.Commits[i])
			}
		}
		out = append(out, kept)
	}
	return out
}

// Describe returns one human readable line per condition group, "none" for
// unset groups.
func (f Filter) Describe() []string {
	list := func(ss []string) string {
		if len(ss) == 0 {
			return "none"
		}
		return strings.Join(ss, ", ")
	}
	return []string{
		"email conditions: " + list(f.Emails),
		"user conditions: " + list(f.Users),
		"keyword conditions: " + list(f.Keywords),
	}
}

// CountCommits returns the total number of commits across repositories.
func CountCommits(repos []RepoCommits) int {
	n := 0
	for _, rc := range repos {
		n += len(rc.Commits)
	}
	return n
}
