// Package render formats analysis results as terminal tables.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/codet-dev/codet/internal/core"
)

const (
	summaryWidth = 60
	dateLayout   = "2006-01-02 15:04:05"
)

var (
	colorBorder = lipgloss.Color("#374151")
	colorHeader = lipgloss.Color("#A78BFA")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHeader).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(colorBorder)

	// tierColors is indexed by tier - 1: purple, dark red, red, orange, yellow.
	tierColors = [core.TierCount]lipgloss.Color{"5", "1", "9", "3", "11"}
)

// TierStyle returns the foreground style of a hotspot tier.
func TierStyle(tier int) lipgloss.Style {
	if tier < 1 || tier > core.TierCount {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(tierColors[tier-1])
}

// CommitTable renders every commit as one numbered row. Rows are numbered
// from 1 across repositories, keeping repository and commit order.
func CommitTable(repos []core.RepoCommits) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("#", "Repository", "Commit ID", "Commit Summary", "Email", "URL", "Date").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cellStyle
			if row == table.HeaderRow {
				s = headerStyle
			}
			// # and Date
			if col == 0 || col == 6 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	n := 1
	for _, rc := range repos {
		for _, c := range rc.Commits {
			date := ""
			if !c.Date.IsZero() {
				date = c.Date.Format(dateLayout)
			}
			t.Row(
				strconv.Itoa(n),
				rc.Repo.Name,
				c.ShortHash(),
				ansi.Truncate(c.Summary, summaryWidth, "…"),
				c.Email,
				c.URL,
				date,
			)
			n++
		}
	}
	return t.Render()
}

// HotspotTable renders hotspot groups. Only the first row of a group shows
// the directory; groups are separated by dash rows. Each row is coloured by
// its tier.
func HotspotTable(res *core.HotspotResult) string {
	if res == nil || len(res.Groups) == 0 {
		return ""
	}

	dirWidth, fileWidth := len("Directory"), len("File")
	for _, g := range res.Groups {
		dirWidth = max(dirWidth, ansi.StringWidth(g.Key))
		for _, f := range g.Files {
			fileWidth = max(fileWidth, ansi.StringWidth(f.Path))
		}
	}
	const countWidth = 10

	var rows [][]string
	var tiers []int // tier per row; 0 for separators
	for i, g := range res.Groups {
		if i > 0 {
			rows = append(rows, []string{
				strings.Repeat("-", dirWidth),
				strings.Repeat("-", fileWidth),
				strings.Repeat("-", countWidth),
			})
			tiers = append(tiers, 0)
		}
		for j, f := range g.Files {
			dir := ""
			if j == 0 {
				dir = g.Key
			}
			rows = append(rows, []string{dir, f.Path, strconv.Itoa(f.Count)})
			tiers = append(tiers, f.Tier)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Directory", "File", "Changes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			s := cellStyle
			if row >= 0 && row < len(tiers) && tiers[row] > 0 {
				s = s.Foreground(tierColors[tiers[row]-1])
			}
			if col == 2 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return t.Render()
}
