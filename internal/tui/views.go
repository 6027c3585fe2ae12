package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/codet-dev/codet/internal/core"
	"github.com/codet-dev/codet/internal/dash"
	"github.com/codet-dev/codet/internal/render"
)

const (
	noDataMessage  = "No data matches your filter criteria."
	detailsLayout  = "2006-01-02 15:04"
	summaryColumnW = 50
)

// RenderTab renders a tab of the filtered dataset as plain text, for
// non-interactive output. The browser tab renders every commit.
func RenderTab(tab Tab, ds *dash.Dataset, f dash.Filter, width int) string {
	v := f.Apply(ds)
	switch tab {
	case TabHotspots:
		return renderHotspots(v, width)
	case TabTimeline:
		return renderTimeline(v, width, time.Now())
	case TabDetails:
		return renderDetails(dash.Details(v.Commits), -1, 0, len(v.Commits))
	case TabBrowser:
		return renderAllCommits(dash.Details(v.Commits), width)
	}
	return renderOverview(v, width)
}

// renderOverview shows the totals, commits per author and per repository.
func renderOverview(v dash.View, width int) string {
	if len(v.Commits) == 0 {
		return mutedStyle.Render(noDataMessage)
	}

	s := dash.Summarize(v)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Commits", s.Commits),
		statCard("Unique Authors", s.Authors),
		statCard("Repositories", s.Repos),
		statCard("File Changes", s.FileChanges),
	)

	return strings.Join([]string{
		cards,
		"",
		renderSectionHeader("COMMITS BY AUTHOR"),
		barChart(dash.TopAuthors(v.Commits, dash.TopAuthorsLimit), width, nil),
		"",
		renderSectionHeader("COMMITS BY REPOSITORY"),
		barChart(dash.RepoCounts(v.Commits), width, nil),
	}, "\n")
}

func statCard(label string, value int) string {
	return statCardStyle.Render(statValueStyle.Render(humanize.Comma(int64(value))) + "\n" + mutedStyle.Render(label))
}

// renderHotspots ranks files, directories and extensions by change count.
// File bars are coloured by hotspot tier.
func renderHotspots(v dash.View, width int) string {
	if len(v.Files) == 0 {
		return mutedStyle.Render(noDataMessage)
	}

	files := dash.TopFiles(v.Files, dash.TopFilesLimit)
	top := files[0].Count
	tierStyle := func(c dash.Count) lipgloss.Style {
		if tier := core.Tier(c.Count, top); tier > 0 {
			return render.TierStyle(tier)
		}
		return barStyle
	}

	return strings.Join([]string{
		renderSectionHeader("FILE HOTSPOTS"),
		barChart(files, width, tierStyle),
		"",
		renderSectionHeader("DIRECTORY HOTSPOTS"),
		barChart(dash.TopDirs(v.Files, dash.TopDirsLimit), width, nil),
		"",
		renderSectionHeader("FILE EXTENSIONS"),
		barChart(dash.TopExts(v.Files, dash.TopExtsLimit), width, nil),
	}, "\n")
}

// renderTimeline shows commits per calendar day.
func renderTimeline(v dash.View, width int, now time.Time) string {
	if len(v.Commits) == 0 {
		return mutedStyle.Render(noDataMessage)
	}
	days := dash.Timeline(v.Commits)
	if len(days) == 0 {
		return mutedStyle.Render("No commits with a valid date.")
	}

	first, last := days[0].Date, days[len(days)-1].Date
	span := fmt.Sprintf("%s to %s, %d active days, latest %s",
		first.Format("2006-01-02"), last.Format("2006-01-02"), len(days),
		humanize.RelTime(latestDate(v.Commits), now, "ago", "from now"))

	return strings.Join([]string{
		renderSectionHeader("DAILY COMMIT ACTIVITY"),
		mutedStyle.Render(span),
		"",
		timelineChart(days, width),
	}, "\n")
}

func latestDate(commits []dash.CommitRow) time.Time {
	var latest time.Time
	for _, c := range commits {
		if c.Date.After(latest) {
			latest = c.Date
		}
	}
	return latest
}

// renderDetails renders rows[offset:offset+height] as a table. cursor is
// the absolute index of the selected row, -1 for none.
func renderDetails(rows []dash.CommitRow, cursor, offset, height int) string {
	if len(rows) == 0 {
		return mutedStyle.Render(noDataMessage)
	}
	end := min(len(rows), offset+max(height, 1))

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("Commit", "Repository", "Author", "Date", "Summary", "Files").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := normalItemStyle.Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				s = sectionHeaderStyle.Padding(0, 1)
			case offset+row == cursor:
				s = selectedItemStyle.Padding(0, 1)
			}
			if col == 5 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	for _, c := range rows[offset:end] {
		date := "unknown"
		if !c.Date.IsZero() {
			date = c.Date.Format(detailsLayout)
		}
		t.Row(
			c.Short,
			c.Repo,
			c.Author,
			date,
			ansi.Truncate(c.Summary, summaryColumnW, "…"),
			strconv.Itoa(len(c.Files)),
		)
	}
	return t.Render()
}

// commitMarkdown is the browser document of one commit.
func commitMarkdown(c dash.CommitRow, now time.Time) string {
	var b strings.Builder

	title := c.Summary
	if title == "" {
		title = c.Short
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Commit | `%s` |\n", c.Hash)
	fmt.Fprintf(&b, "| Repository | %s |\n", c.Repo)
	fmt.Fprintf(&b, "| Author | %s <%s> |\n", c.Author, c.Email)
	if c.Date.IsZero() {
		b.WriteString("| Date | unknown |\n")
	} else {
		fmt.Fprintf(&b, "| Date | %s (%s) |\n", c.Date.Format(detailsLayout), humanize.RelTime(c.Date, now, "ago", "from now"))
	}
	if c.URL != "" {
		fmt.Fprintf(&b, "| URL | %s |\n", c.URL)
	}

	b.WriteString("\n## Message\n\n")
	if msg := strings.TrimSpace(c.Message); msg != "" {
		b.WriteString("```\n" + msg + "\n```\n")
	} else {
		b.WriteString("_No message_\n")
	}

	if s := strings.TrimSpace(c.AISummary); s != "" {
		b.WriteString("\n## AI Summary\n\n" + s + "\n")
	}

	fmt.Fprintf(&b, "\n## Changed Files (%d)\n\n", len(c.Files))
	for _, f := range c.Files {
		fmt.Fprintf(&b, "- `%s`\n", f)
	}
	return b.String()
}

func renderAllCommits(rows []dash.CommitRow, width int) string {
	if len(rows) == 0 {
		return mutedStyle.Render(noDataMessage)
	}
	r, err := newMarkdownRenderer(width)
	now := time.Now()
	docs := make([]string, 0, len(rows))
	for _, c := range rows {
		// Print mode falls back to the raw markdown.
		doc, _ := renderMarkdown(r, err, commitMarkdown(c, now))
		docs = append(docs, doc)
	}
	return strings.Join(docs, "\n")
}
