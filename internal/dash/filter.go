package dash

import (
	"slices"
	"strings"
	"time"
)

// Filter narrows the dashboard data. Zero values disable a condition.
// Since and Until are inclusive wall-clock bounds: each row is compared in
// its own time zone, so a commit counts on the calendar day it shows. Rows
// with an unknown date are excluded once either bound is set. Exts applies
// to file rows only.
type Filter struct {
	Since   time.Time
	Until   time.Time
	Authors []string
	Repos   []string
	Exts    []string
}

// View is a filtered Dataset.
type View struct {
	Commits []CommitRow
	Files   []FileRow
}

// Apply returns the rows of ds that pass f.
func (f Filter) Apply(ds *Dataset) View {
	var v View
	for _, c := range ds.Commits {
		if f.keep(c.Date, c.Author, c.Repo) {
			v.Commits = append(v.Commits, c)
		}
	}
	exts := normalizeExts(f.Exts)
	for _, fr := range ds.Files {
		if !f.keep(fr.Date, fr.Author, fr.Repo) {
			continue
		}
		if len(exts) > 0 && !slices.Contains(exts, fr.Ext) {
			continue
		}
		v.Files = append(v.Files, fr)
	}
	return v
}

func (f Filter) keep(date time.Time, author, repo string) bool {
	if !f.Since.IsZero() || !f.Until.IsZero() {
		if date.IsZero() {
			return false
		}
		if !f.Since.IsZero() && date.Before(wallClockIn(f.Since, date.Location())) {
			return false
		}
		if !f.Until.IsZero() && date.After(wallClockIn(f.Until, date.Location())) {
			return false
		}
	}
	if len(f.Authors) > 0 && !slices.Contains(f.Authors, author) {
		return false
	}
	if len(f.Repos) > 0 && !slices.Contains(f.Repos, repo) {
		return false
	}
	return true
}

// wallClockIn returns t's wall-clock reading placed in loc.
func wallClockIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), loc)
}

// normalizeExts accepts "go", ".go" and "no_ext".
func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		switch {
		case e == "":
			continue
		case e == "no_ext" || strings.HasPrefix(e, "."):
			out = append(out, e)
		default:
			out = append(out, "."+e)
		}
	}
	return out
}

// Empty reports whether no condition is set.
func (f Filter) Empty() bool {
	return f.Since.IsZero() && f.Until.IsZero() &&
		len(f.Authors) == 0 && len(f.Repos) == 0 && len(f.Exts) == 0
}

// Describe returns a one-line summary of the active conditions.
func (f Filter) Describe() string {
	if f.Empty() {
		return "no filters"
	}
	var parts []string
	if !f.Since.IsZero() {
		parts = append(parts, "since "+f.Since.Format("2006-01-02"))
	}
	if !f.Until.IsZero() {
		parts = append(parts, "until "+f.Until.Format("2006-01-02"))
	}
	if len(f.Authors) > 0 {
		parts = append(parts, "authors: "+strings.Join(f.Authors, ", "))
	}
	if len(f.Repos) > 0 {
		parts = append(parts, "repos: "+strings.Join(f.Repos, ", "))
	}
	if len(f.Exts) > 0 {
		parts = append(parts, "exts: "+strings.Join(normalizeExts(f.Exts), ", "))
	}
	return strings.Join(parts, " · ")
}
