package dash

import (
	"sort"
	"time"
)

// Limits used by the dashboard tabs.
const (
	TopAuthorsLimit = 10
	TopFilesLimit   = 20
	TopDirsLimit    = 15
	TopExtsLimit    = 10
)

// Count is a ranked name with its occurrence count.
type Count struct {
	Name  string
	Count int
}

// Summary holds the overview totals.
type Summary struct {
	Commits     int
	Authors     int
	Repos       int
	FileChanges int
}

// Day is the number of commits on one calendar day.
type Day struct {
	Date  time.Time // midnight UTC of the commit's local calendar day
	Count int
}

// Summarize computes the overview totals of a view.
func Summarize(v View) Summary {
	authors := make(map[string]struct{})
	repos := make(map[string]struct{})
	for _, c := range v.Commits {
		authors[c.Author] = struct{}{}
		repos[c.Repo] = struct{}{}
	}
	return Summary{
		Commits:     len(v.Commits),
		Authors:     len(authors),
		Repos:       len(repos),
		FileChanges: len(v.Files),
	}
}

// TopAuthors ranks authors by commit count.
func TopAuthors(commits []CommitRow, n int) []Count {
	counts := make(map[string]int)
	for _, c := range commits {
		counts[c.Author]++
	}
	return rank(counts, n)
}

// RepoCounts ranks every repository by commit count.
func RepoCounts(commits []CommitRow) []Count {
	counts := make(map[string]int)
	for _, c := range commits {
		counts[c.Repo]++
	}
	return rank(counts, 0)
}

// TopFiles ranks file paths by change count.
func TopFiles(files []FileRow, n int) []Count {
	return rankFiles(files, n, func(f FileRow) string { return f.Path })
}

// TopDirs ranks directories by change count.
func TopDirs(files []FileRow, n int) []Count {
	return rankFiles(files, n, func(f FileRow) string { return f.Dir })
}

// TopExts ranks file extensions by change count.
func TopExts(files []FileRow, n int) []Count {
	return rankFiles(files, n, func(f FileRow) string { return f.Ext })
}

func rankFiles(files []FileRow, n int, key func(FileRow) string) []Count {
	counts := make(map[string]int)
	for _, f := range files {
		counts[key(f)]++
	}
	return rank(counts, n)
}

// rank sorts by count descending, then name, keeping the first n (all when
// n <= 0).
func rank(counts map[string]int, n int) []Count {
	out := make([]Count, 0, len(counts))
	for name, c := range counts {
		out = append(out, Count{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Timeline counts commits per calendar day in ascending order. Commits with
// an unknown date are dropped.
func Timeline(commits []CommitRow) []Day {
	counts := make(map[time.Time]int)
	for _, c := range commits {
		if c.Date.IsZero() {
			continue
		}
		y, m, d := c.Date.Date()
		counts[time.Date(y, m, d, 0, 0, 0, 0, time.UTC)]++
	}

	days := make([]Day, 0, len(counts))
	for day, n := range counts {
		days = append(days, Day{Date: day, Count: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// Details returns the commits sorted newest first.
func Details(commits []CommitRow) []CommitRow {
	out := make([]CommitRow, len(commits))
	copy(out, commits)
	sortNewestFirst(out)
	return out
}
