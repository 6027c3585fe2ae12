package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/codet-dev/codet/internal/core"
)

func TestCommitTable(t *testing.T) {
	repos := []core.RepoCommits{
		{
			Repo: core.Repo{Name: "api"},
			Commits: []core.Commit{
				{
					Hash:    "0123456789abcdef",
					Summary: "Add endpoint",
					Email:   "alice@example.com",
					URL:     "https://github.com/acme/api/commit/0123456789abcdef",
					Date:    time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
				},
			},
		},
		{Repo: core.Repo{Name: "empty"}},
		{
			Repo: core.Repo{Name: "web"},
			Commits: []core.Commit{
				{Hash: "fedcba9876543210", Summary: strings.Repeat("x", 100), Email: "bob@example.com"},
			},
		},
	}

	out := ansi.Strip(CommitTable(repos))

	for _, want := range []string{
		"Repository", "Commit ID", "Commit Summary", "URL",
		"0123456", "Add endpoint", "alice@example.com",
		"2024-05-01 09:30:00",
		"fedcba9", "…",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("x", 100)) {
		t.Error("long summaries should be truncated")
	}
	if strings.Contains(out, "empty") {
		t.Error("repositories without commits should add no rows")
	}

	lines := strings.Split(out, "\n")
	var apiRow, webRow string
	for _, l := range lines {
		if strings.Contains(l, "0123456") {
			apiRow = l
		}
		if strings.Contains(l, "fedcba9") {
			webRow = l
		}
	}
	if !strings.Contains(apiRow, " 1 ") {
		t.Errorf("first row should be numbered 1: %q", apiRow)
	}
	if !strings.Contains(webRow, " 2 ") {
		t.Errorf("second row should be numbered 2: %q", webRow)
	}
}

func TestHotspotTable(t *testing.T) {
	res := &core.HotspotResult{
		Total: 7,
		Max:   4,
		Files: 3,
		Groups: []core.HotspotGroup{
			{Key: "api/root", Files: []core.HotspotFile{
				{Path: "go.mod", Repo: "api", Count: 2, Tier: 3},
			}},
			{Key: "api/src", Files: []core.HotspotFile{
				{Path: "src/a.go", Repo: "api", Count: 4, Tier: 1},
				{Path: "src/b.go", Repo: "api", Count: 1, Tier: 5},
			}},
		},
	}

	out := ansi.Strip(HotspotTable(res))

	for _, want := range []string{"Directory", "File", "Changes", "api/root", "go.mod", "api/src", "src/a.go", "src/b.go", "----------"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "api/src"); n != 1 {
		t.Errorf("group key should appear once, appeared %d times", n)
	}

	var bRow string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "src/b.go") {
			bRow = l
		}
	}
	if strings.Contains(bRow, "api/") {
		t.Errorf("continuation rows should leave the directory blank: %q", bRow)
	}
}

func TestHotspotTable_Empty(t *testing.T) {
	if got := HotspotTable(&core.HotspotResult{}); got != "" {
		t.Errorf("HotspotTable(empty) = %q, want empty", got)
	}
	if got := HotspotTable(nil); got != "" {
		t.Errorf("HotspotTable(nil) = %q, want empty", got)
	}
}
