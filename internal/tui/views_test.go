package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/codet-dev/codet/internal/dash"
)

func testDataset() *dash.Dataset {
	return &dash.Dataset{
		Commits: []dash.CommitRow{
			{
				Repo: "api", Hash: "aaaaaaaaaa", Short: "aaaaaaa", Author: "Alice", Email: "alice@example.com",
				Date: time.Date(2024, 2, 4, 9, 15, 0, 0, time.UTC), Summary: "Add rate limiter",
				Message: "Add rate limiter\n\nToken bucket.", URL: "https://github.com/acme/api/commit/aaaaaaaaaa",
				AISummary: "Introduces throttling.", Files: []string{"limit/bucket.go", "go.mod"},
			},
			{
				Repo: "web", Hash: "bbbbbbbbbb", Short: "bbbbbbb", Author: "Bob", Email: "bob@example.com",
				Date: time.Date(2024, 2, 2, 17, 0, 0, 0, time.UTC), Summary: "Fix layout",
				Files: []string{"ui/app.ts"},
			},
			{
				Repo: "api", Hash: "cccccccccc", Short: "ccccccc", Author: "Alice", Email: "alice@example.com",
				Date: time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC), Summary: "Tune limiter",
				Files: []string{"limit/bucket.go"},
			},
		},
		Files: []dash.FileRow{
			{Repo: "api", Hash: "aaaaaaaaaa", Path: "limit/bucket.go", Dir: "limit", Ext: ".go", Author: "Alice", Date: time.Date(2024, 2, 4, 9, 15, 0, 0, time.UTC)},
			{Repo: "api", Hash: "aaaaaaaaaa", Path: "go.mod", Dir: "root", Ext: ".mod", Author: "Alice", Date: time.Date(2024, 2, 4, 9, 15, 0, 0, time.UTC)},
			{Repo: "web", Hash: "bbbbbbbbbb", Path: "ui/app.ts", Dir: "ui", Ext: ".ts", Author: "Bob", Date: time.Date(2024, 2, 2, 17, 0, 0, 0, time.UTC)},
			{Repo: "api", Hash: "cccccccccc", Path: "limit/bucket.go", Dir: "limit", Ext: ".go", Author: "Alice", Date: time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)},
		},
		Sources: []string{"api_20240205T000000.json", "web_20240205T000000.json"},
	}
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	plain := ansi.Strip(out)
	for _, w := range wants {
		if !strings.Contains(plain, w) {
			t.Errorf("output missing %q:\n%s", w, plain)
		}
	}
}

func TestRenderTab_Overview(t *testing.T) {
	out := RenderTab(TabOverview, testDataset(), dash.Filter{}, 80)
	assertContains(t, out,
		"Total Commits", "Unique Authors", "Repositories", "File Changes",
		"COMMITS BY AUTHOR", "Alice", "Bob",
		"COMMITS BY REPOSITORY", "api", "web",
	)
}

func TestRenderTab_Hotspots(t *testing.T) {
	out := RenderTab(TabHotspots, testDataset(), dash.Filter{}, 80)
	assertContains(t, out,
		"FILE HOTSPOTS", "limit/bucket.go",
		"DIRECTORY HOTSPOTS", "limit", "root",
		"FILE EXTENSIONS", ".go", ".ts",
	)

	plain := ansi.Strip(out)
	if strings.Index(plain, "limit/bucket.go") > strings.Index(plain, "go.mod") {
		t.Error("files should be ranked by change count")
	}
}

func TestRenderTab_Timeline(t *testing.T) {
	out := RenderTab(TabTimeline, testDataset(), dash.Filter{}, 80)
	assertContains(t, out, "DAILY COMMIT ACTIVITY", "2024-02-02 Fri", "2024-02-04 Sun", "2 active days")

	plain := ansi.Strip(out)
	if strings.Index(plain, "2024-02-02 Fri") > strings.Index(plain, "2024-02-04 Sun") {
		t.Error("timeline should be in ascending order")
	}
}

func TestRenderTab_Details(t *testing.T) {
	out := RenderTab(TabDetails, testDataset(), dash.Filter{Repos: []string{"api"}}, 120)
	assertContains(t, out, "Commit", "Repository", "Files", "aaaaaaa", "2024-02-04 09:15", "Add rate limiter", "ccccccc")

	plain := ansi.Strip(out)
	if strings.Contains(plain, "bbbbbbb") {
		t.Error("repository filter should hide other repositories")
	}
	if strings.Index(plain, "aaaaaaa") > strings.Index(plain, "ccccccc") {
		t.Error("details should list newest first")
	}
}

func TestRenderTab_Browser(t *testing.T) {
	out := RenderTab(TabBrowser, testDataset(), dash.Filter{Authors: []string{"Alice"}}, 100)
	assertContains(t, out, "Add rate limiter", "Token bucket.", "Introduces throttling.", "limit/bucket.go", "Tune limiter")
}

func TestRenderTab_NoMatches(t *testing.T) {
	f := dash.Filter{Authors: []string{"Nobody"}}
	for _, tab := range []Tab{TabOverview, TabHotspots, TabTimeline, TabDetails, TabBrowser} {
		out := RenderTab(tab, testDataset(), f, 80)
		assertContains(t, out, noDataMessage)
	}
}

func TestCommitMarkdown(t *testing.T) {
	c := testDataset().Commits[0]
	md := commitMarkdown(c, c.Date.Add(48*time.Hour))

	for _, want := range []string{
		"# Add rate limiter",
		"| Commit | `aaaaaaaaaa` |",
		"| Author | Alice <alice@example.com> |",
		"| Date | 2024-02-04 09:15 (2 days ago) |",
		"| URL | https://github.com/acme/api/commit/aaaaaaaaaa |",
		"## AI Summary",
		"## Changed Files (2)",
		"- `go.mod`",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	bare := commitMarkdown(dash.CommitRow{Hash: "dddddddddd", Short: "ddddddd", Author: "Unknown", Email: "Unknown"}, time.Now())
	for _, want := range []string{"# ddddddd", "| Date | unknown |", "_No message_"} {
		if !strings.Contains(bare, want) {
			t.Errorf("markdown missing %q:\n%s", want, bare)
		}
	}
	if strings.Contains(bare, "AI Summary") {
		t.Error("empty AI summary should be omitted")
	}
}

func TestBarChart(t *testing.T) {
	out := ansi.Strip(barChart([]dash.Count{{Name: "big", Count: 100}, {Name: "small", Count: 1}}, 40, nil))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.Count(lines[0], barRune) <= strings.Count(lines[1], barRune) {
		t.Error("larger counts should draw longer bars")
	}
	if strings.Count(lines[1], barRune) != 1 {
		t.Error("non-zero counts should draw at least one block")
	}
	if !strings.HasSuffix(lines[0], "100") {
		t.Errorf("bar line should end with its count: %q", lines[0])
	}

	if got := ansi.Strip(barChart(nil, 40, nil)); got != "No data" {
		t.Errorf("barChart(nil) = %q, want %q", got, "No data")
	}
}

func TestRenderMarkdown_FallsBackToRaw(t *testing.T) {
	out, err := renderMarkdown(nil, errors.New("no style"), "# Title")
	if err == nil || out != "# Title" {
		t.Errorf("renderMarkdown() = %q, %v; want raw text and error", out, err)
	}
	out, err = renderMarkdown(nil, nil, "# Title")
	if err == nil || out != "# Title" {
		t.Errorf("renderMarkdown(nil renderer) = %q, %v; want raw text and error", out, err)
	}

	r, rerr := newMarkdownRenderer(80)
	out, err = renderMarkdown(r, rerr, "# Title")
	if err != nil {
		t.Fatalf("renderMarkdown() error: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing title: %q", out)
	}
}
