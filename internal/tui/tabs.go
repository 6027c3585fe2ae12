package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab identifies a dashboard tab.
type Tab int

const (
	TabOverview Tab = iota
	TabHotspots
	TabTimeline
	TabDetails
	TabBrowser
)

var tabNames = []string{"overview", "hotspots", "timeline", "details", "browser"}

var tabLabels = []string{"Overview", "Hotspots", "Timeline", "Details", "Browser"}

// TabNames lists the accepted tab names in display order.
func TabNames() []string {
	return append([]string(nil), tabNames...)
}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return fmt.Sprintf("tab(%d)", int(t))
	}
	return tabNames[t]
}

// ParseTab resolves a tab by name. Empty selects the overview.
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabOverview, nil
	}
	for i, n := range tabNames {
		if n == s {
			return Tab(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q (want one of %s)", s, strings.Join(tabNames, ", "))
}

// tabActiveMsg is emitted after the active tab changes.
type tabActiveMsg Tab

// tabsModel is a reusable horizontal tab bar.
//
// Visual style:
//
//	Overview  │  Hotspots  │  Timeline
//	──────────
type tabsModel struct {
	tabs      []string
	activeTab int
}

func newTabsModel(labels []string) tabsModel {
	return tabsModel{tabs: labels}
}

func (m tabsModel) setActive(t Tab) tabsModel {
	if int(t) >= 0 && int(t) < len(m.tabs) {
		m.activeTab = int(t)
	}
	return m
}

func (m tabsModel) active() Tab {
	return Tab(m.activeTab)
}

// update handles Tab / Shift+Tab to cycle through tabs.
// Returns the updated model, an optional command, and whether the key was consumed.
func (m tabsModel) update(msg tea.Msg) (tabsModel, tea.Cmd, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	n := len(m.tabs)
	if n == 0 {
		return m, nil, false
	}

	switch {
	case key.Matches(kmsg, keys.Tab):
		m.activeTab = (m.activeTab + 1) % n
	case key.Matches(kmsg, keys.ShiftTab):
		m.activeTab = (m.activeTab - 1 + n) % n
	default:
		return m, nil, false
	}

	active := Tab(m.activeTab)
	return m, func() tea.Msg { return tabActiveMsg(active) }, true
}

// view renders the tab bar and an underline below the active tab.
func (m tabsModel) view() string {
	if len(m.tabs) == 0 {
		return ""
	}

	sep := tabSeparatorStyle.Render("│")

	var parts []string
	for i, label := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(label))
		}
	}

	tabLine := "  " + strings.Join(parts, sep)

	// Rendered widths include the tab padding.
	activeW := lipgloss.Width(tabActiveStyle.Render(m.tabs[m.activeTab]))
	offset := 2
	for i := 0; i < m.activeTab; i++ {
		offset += lipgloss.Width(tabInactiveStyle.Render(m.tabs[i]))
		offset += lipgloss.Width(sep)
	}

	underline := strings.Repeat(" ", offset) +
		tabUnderlineStyle.Render(strings.Repeat("─", activeW))

	return tabLine + "\n" + underline
}
