package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/codet-dev/codet/internal/dash"
)

// detailsChrome is the table's hidden border plus header lines.
const detailsChrome = 4

// App is the root Bubbletea model of the dashboard.
type App struct {
	data   *dash.Dataset
	filter dash.Filter
	view   dash.View
	rows   []dash.CommitRow // details rows, newest first

	width  int
	height int
	ready  bool

	tabs tabsModel

	// Overview, hotspots and timeline scroll in this viewport.
	viewport viewport.Model

	// Details selection.
	cursor int
	offset int

	// Browser.
	browser         viewport.Model
	browserHash     string // commit currently shown
	browserLoading  bool
	glamourRenderer *glamour.TermRenderer

	help    help.Model
	toast   toastModel
	initCmd tea.Cmd

	now func() time.Time
}

// NewApp creates the dashboard over ds, filtered by f, opening on tab.
func NewApp(ds *dash.Dataset, f dash.Filter, tab Tab) App {
	h := help.New()
	h.ShortSeparator = "  |  "

	v := f.Apply(ds)
	a := App{
		data:   ds,
		filter: f,
		view:   v,
		rows:   dash.Details(v.Commits),
		tabs:   newTabsModel(tabLabels).setActive(tab),
		help:   h,
		toast:  newToastModel(),
		now:    time.Now,
	}

	msg := fmt.Sprintf("Loaded %d commits from %d files", len(ds.Commits), len(ds.Sources))
	kind := toastSuccess
	if len(ds.Skipped) > 0 {
		msg += fmt.Sprintf(" (%d skipped)", len(ds.Skipped))
		kind = toastWarning
	}
	a.toast, a.initCmd = a.toast.show(msg, kind)
	return a
}

// ActiveTab returns the tab currently shown.
func (a App) ActiveTab() Tab {
	return a.tabs.active()
}

func (a App) Init() tea.Cmd {
	return a.initCmd
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		// Wrap width changed; the cached renderer is stale.
		a.glamourRenderer = nil
		a.resize()
		if a.tabs.active() == TabBrowser {
			return a, a.openBrowser(a.cursor)
		}
		return a, nil

	case tabActiveMsg:
		a.refreshContent()
		if Tab(msg) == TabBrowser {
			return a, a.openBrowser(a.cursor)
		}
		return a, nil

	case browserRenderedMsg:
		if msg.hash != a.browserHash {
			return a, nil // stale render
		}
		a.browserLoading = false
		a.browser.SetContent(msg.content)
		a.browser.GotoTop()
		if msg.err != nil {
			var cmd tea.Cmd
			a.toast, cmd = a.toast.show("Markdown rendering failed: "+msg.err.Error(), toastError)
			return a, cmd
		}
		if msg.renderer != nil {
			a.glamourRenderer = msg.renderer
		}
		a.toast = a.toast.dismiss()
		return a, nil

	case spinner.TickMsg, toastDismissMsg:
		var cmd tea.Cmd
		a.toast, cmd = a.toast.update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return a, tea.Quit
	}

	if key.Matches(msg, keys.Back) && a.tabs.active() == TabBrowser {
		a.tabs = a.tabs.setActive(TabDetails)
		return a, nil
	}

	var cmd tea.Cmd
	var consumed bool
	a.tabs, cmd, consumed = a.tabs.update(msg)
	if consumed {
		return a, cmd
	}

	switch a.tabs.active() {
	case TabDetails:
		switch {
		case key.Matches(msg, keys.Up):
			a.moveCursor(-1)
		case key.Matches(msg, keys.Down):
			a.moveCursor(1)
		case key.Matches(msg, keys.PageUp):
			a.moveCursor(-a.detailsHeight())
		case key.Matches(msg, keys.PageDown):
			a.moveCursor(a.detailsHeight())
		case key.Matches(msg, keys.Enter):
			if len(a.rows) == 0 {
				return a, nil
			}
			a.tabs = a.tabs.setActive(TabBrowser)
			return a, a.openBrowser(a.cursor)
		}
		return a, nil

	case TabBrowser:
		a.browser, cmd = a.browser.Update(msg)
		return a, cmd
	}

	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) moveCursor(delta int) {
	if len(a.rows) == 0 {
		return
	}
	a.cursor = max(0, min(len(a.rows)-1, a.cursor+delta))
	h := a.detailsHeight()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+h {
		a.offset = a.cursor - h + 1
	}
}

// openBrowser starts rendering the commit at index i.
func (a *App) openBrowser(i int) tea.Cmd {
	if i < 0 || i >= len(a.rows) {
		a.browserHash = ""
		a.browserLoading = false
		a.browser.SetContent(mutedStyle.Render(noDataMessage))
		return nil
	}
	c := a.rows[i]
	cached := a.idleRenderer()
	a.browserHash = c.Hash
	a.browserLoading = true

	var toastCmd tea.Cmd
	a.toast, toastCmd = a.toast.show("Rendering commit "+c.Short+"...", toastLoading)

	w, _ := a.innerContentSize()
	render := renderBrowserCmd(c.Hash, commitMarkdown(c, a.now()), cached, w)
	return tea.Batch(toastCmd, render)
}

// idleRenderer returns the cached glamour renderer, or nil while a render
// is still in flight so the next render builds its own.
func (a App) idleRenderer() *glamour.TermRenderer {
	if a.browserLoading {
		return nil
	}
	return a.glamourRenderer
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	w, h := a.innerContentSize()
	body := clampWidth(clampHeight(a.renderBody(), h), w)
	content := contentStyle.
		Width(a.width - 2).
		Height(h).
		Render(body)

	bottom := a.toast.view()
	if bottom == "" {
		bottom = a.renderHelpBar()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.tabs.view(),
		content,
		bottom,
	)
}

func (a App) renderBody() string {
	switch a.tabs.active() {
	case TabDetails:
		return renderDetails(a.rows, a.cursor, a.offset, a.detailsHeight())
	case TabBrowser:
		return a.renderBrowser()
	}
	return a.viewport.View()
}

func (a App) renderBrowser() string {
	w, _ := a.innerContentSize()
	title := "Browser"
	if a.cursor < len(a.rows) {
		title = a.rows[a.cursor].Short + " " + a.rows[a.cursor].Repo
	}
	t := viewportTitleStyle.Render(" " + title + " ")
	line := strings.Repeat("─", max(0, w-lipgloss.Width(t)))
	header := lipgloss.JoinHorizontal(lipgloss.Center, t, mutedStyle.Render(line))

	if a.browserLoading {
		return header + "\n\n" + mutedStyle.Render("Rendering...")
	}
	pct := previewPctStyle.Render(fmt.Sprintf(" %3.0f%% ", a.browser.ScrollPercent()*100))
	return header + "\n" + a.browser.View() + "\n" + pct
}

func (a App) renderHeader() string {
	logo := logoStyle.Render("codet")
	repos := dash.RepoCounts(a.view.Commits)
	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}
	path := headerPathStyle.Render(ansi.Truncate(strings.Join(names, ", "), max(10, a.width/2), "…"))
	hints := headerHintStyle.Render(a.filter.Describe())

	// Indent 1 char to align with content box's left border.
	left := lipgloss.JoinHorizontal(lipgloss.Top, " ", logo, " ", path)
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(hints)-1)
	return left + strings.Repeat(" ", gap) + hints
}

func (a App) renderHelpBar() string {
	var km help.KeyMap
	switch a.tabs.active() {
	case TabDetails:
		km = detailsHelpKeyMap{}
	case TabBrowser:
		km = browserHelpKeyMap{}
	default:
		km = scrollHelpKeyMap{}
	}
	return " " + helpStyle.Render(a.help.View(km))
}

// refreshContent re-renders the scrolling tab into the viewport.
func (a *App) refreshContent() {
	w, _ := a.innerContentSize()
	var s string
	switch a.tabs.active() {
	case TabOverview:
		s = renderOverview(a.view, w)
	case TabHotspots:
		s = renderHotspots(a.view, w)
	case TabTimeline:
		s = renderTimeline(a.view, w, a.now())
	default:
		return
	}
	a.viewport.SetContent(s)
	a.viewport.GotoTop()
}

func (a *App) resize() {
	w, h := a.innerContentSize()
	a.viewport = viewport.New(w, h)
	// Browser title and percentage footer take two lines.
	a.browser = viewport.New(w, max(0, h-2))
	a.moveCursor(0)
	a.refreshContent()
}

func (a App) detailsHeight() int {
	_, h := a.innerContentSize()
	return max(1, h-detailsChrome)
}

// innerContentSize computes the text area inside contentStyle after the
// header, tab bar and help bar are accounted for.
func (a App) innerContentSize() (width, height int) {
	// header (1) + tabs (2) + help (1)
	chromeH := 4
	width = max(0, a.width-contentStyle.GetHorizontalFrameSize())
	height = max(0, a.height-chromeH-contentStyle.GetVerticalFrameSize())
	return width, height
}

// clampHeight truncates content to at most maxLines lines.
// Views that render more lines than their allocated height are
// truncated so the header stays on screen.
func clampHeight(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return content
	}
	return strings.Join(lines[:maxLines], "\n")
}

// clampWidth truncates each line to at most maxWidth visible characters
// (ANSI-escape aware) so lipgloss does not wrap inside the content box.
func clampWidth(content string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > maxWidth {
			lines[i] = ansi.Truncate(line, maxWidth, "")
		}
	}
	return strings.Join(lines, "\n")
}
