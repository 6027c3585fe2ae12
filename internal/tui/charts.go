package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/codet-dev/codet/internal/dash"
)

const (
	barRune     = "█"
	minBarWidth = 10
)

// barChart renders one horizontal bar per count, scaled to the largest.
// style picks the bar style per row; nil uses barStyle.
func barChart(counts []dash.Count, width int, style func(c dash.Count) lipgloss.Style) string {
	if len(counts) == 0 {
		return mutedStyle.Render("No data")
	}

	maxCount, labelW := 0, 0
	for _, c := range counts {
		maxCount = max(maxCount, c.Count)
		labelW = max(labelW, ansi.StringWidth(c.Name))
	}
	countW := len(strconv.Itoa(maxCount))
	labelW = min(labelW, max(width/3, 12))
	barW := max(minBarWidth, width-labelW-countW-2)

	var b strings.Builder
	for i, c := range counts {
		if i > 0 {
			b.WriteByte('\n')
		}
		label := ansi.Truncate(c.Name, labelW, "…")
		label += strings.Repeat(" ", labelW-ansi.StringWidth(label))

		n := 0
		if maxCount > 0 {
			n = c.Count * barW / maxCount
		}
		if n == 0 && c.Count > 0 {
			n = 1
		}

		s := barStyle
		if style != nil {
			s = style(c)
		}
		fmt.Fprintf(&b, "%s %s %s",
			normalItemStyle.Render(label),
			s.Render(strings.Repeat(barRune, n)),
			mutedStyle.Render(strconv.Itoa(c.Count)))
	}
	return b.String()
}

// timelineChart renders one bar per day, oldest first.
func timelineChart(days []dash.Day, width int) string {
	counts := make([]dash.Count, len(days))
	for i, d := range days {
		counts[i] = dash.Count{Name: d.Date.Format("2006-01-02 Mon"), Count: d.Count}
	}
	return barChart(counts, width, nil)
}
