package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#A78BFA") // Light purple
	colorSuccess   = lipgloss.Color("#10B981") // Green
	colorDanger    = lipgloss.Color("#EF4444") // Red (errors)
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorBorder    = lipgloss.Color("#374151") // Dark gray
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorText      = lipgloss.Color("#D1D5DB")
)

// Shared styles used across dashboard views.
var (
	// Header bar: "codet  api, web"
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	headerPathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F3F4F6")).
			Padding(0, 1)

	headerHintStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Main content area.
	contentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	// Section header within a tab (e.g. "COMMITS BY AUTHOR").
	// NOTE: No MarginBottom. View functions use explicit \n for predictable height.
	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorMuted)

	sectionRuleStyle = lipgloss.NewStyle().
				Foreground(colorBorder)

	// Selected row in the details list.
	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Overview stat cards.
	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	statCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)

	// Chart bars.
	barStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Browser title bar.
	viewportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText).
				Background(colorBorder).
				Padding(0, 1)

	// Browser scroll percentage badge.
	previewPctStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBorder)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	// Tab bar.
	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1)

	tabSeparatorStyle = lipgloss.NewStyle().
				Foreground(colorBorder)

	tabUnderlineStyle = lipgloss.NewStyle().
				Foreground(colorPrimary)
)

// renderSectionHeader renders a section label with short rules on both sides:
// "── COMMITS BY AUTHOR ──"
func renderSectionHeader(label string) string {
	rule := sectionRuleStyle.Render("──")
	text := sectionHeaderStyle.Render(" " + label + " ")
	return rule + text + rule
}
