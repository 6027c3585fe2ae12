package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/codet-dev/codet/internal/dash"
)

func sized(t *testing.T, a App) App {
	t.Helper()
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func press(t *testing.T, a App, k tea.KeyMsg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(k)
	return m.(App), cmd
}

func TestNewApp_InitShowsLoadSummary(t *testing.T) {
	ds := testDataset()
	ds.Skipped = []string{"package.json"}

	a := NewApp(ds, dash.Filter{}, TabOverview)
	if a.Init() == nil {
		t.Error("Init() should return the toast timer")
	}
	if !strings.Contains(a.toast.message, "Loaded 3 commits from 2 files (1 skipped)") {
		t.Errorf("toast = %q", a.toast.message)
	}
	if a.toast.kind != toastWarning {
		t.Errorf("kind = %d, want toastWarning", a.toast.kind)
	}
}

func TestApp_ViewBeforeSize(t *testing.T) {
	a := NewApp(testDataset(), dash.Filter{}, TabOverview)
	if got := a.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestApp_TabSwitching(t *testing.T) {
	a := sized(t, NewApp(testDataset(), dash.Filter{}, TabOverview))
	if !strings.Contains(ansi.Strip(a.View()), "COMMITS BY AUTHOR") {
		t.Fatal("overview should be shown first")
	}

	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.ActiveTab() != TabHotspots {
		t.Fatalf("active = %v, want hotspots", a.ActiveTab())
	}
	m, _ := a.Update(cmd())
	a = m.(App)
	if !strings.Contains(ansi.Strip(a.View()), "FILE HOTSPOTS") {
		t.Error("hotspots tab content missing after switching")
	}
}

func TestApp_DetailsNavigationOpensBrowser(t *testing.T) {
	a := sized(t, NewApp(testDataset(), dash.Filter{}, TabDetails))

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if a.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.cursor)
	}
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if a.cursor != 2 {
		t.Fatalf("cursor should stop at the last row, got %d", a.cursor)
	}
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})

	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.ActiveTab() != TabBrowser {
		t.Fatalf("enter should open the browser, active = %v", a.ActiveTab())
	}
	if cmd == nil || !a.browserLoading {
		t.Fatal("browser should start rendering")
	}
	want := a.rows[1]
	if a.browserHash != want.Hash {
		t.Errorf("browserHash = %q, want %q", a.browserHash, want.Hash)
	}

	msg := renderBrowserCmd(want.Hash, commitMarkdown(want, a.now()), nil, 80)()
	m, _ := a.Update(msg)
	a = m.(App)
	if a.browserLoading {
		t.Error("browser should stop loading after render")
	}
	if !strings.Contains(ansi.Strip(a.View()), want.Summary) {
		t.Errorf("browser should show %q", want.Summary)
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.ActiveTab() != TabDetails {
		t.Errorf("esc should return to details, active = %v", a.ActiveTab())
	}
}

func TestApp_StaleBrowserRenderIgnored(t *testing.T) {
	a := sized(t, NewApp(testDataset(), dash.Filter{}, TabDetails))
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ := a.Update(browserRenderedMsg{hash: "other", content: "stale"})
	a = m.(App)
	if !a.browserLoading {
		t.Error("a render for another commit must not finish loading")
	}
}

func TestApp_Quit(t *testing.T) {
	a := sized(t, NewApp(testDataset(), dash.Filter{}, TabOverview))
	_, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestApp_BrowserRenderErrorShowsToast(t *testing.T) {
	a := sized(t, NewApp(testDataset(), dash.Filter{}, TabDetails))
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := a.Update(browserRenderedMsg{hash: a.browserHash, content: "# raw", err: errors.New("bad style")})
	a = m.(App)
	if a.browserLoading {
		t.Error("a failed render should still finish loading")
	}
	if a.toast.kind != toastError || !strings.Contains(a.toast.message, "bad style") {
		t.Errorf("toast = %q (kind %d), want error toast", a.toast.message, a.toast.kind)
	}
	if cmd == nil {
		t.Error("error toast should schedule its dismissal")
	}
	if a.glamourRenderer != nil {
		t.Error("a failed render must not be cached")
	}
	if !strings.Contains(ansi.Strip(a.View()), "# raw") {
		t.Error("browser should fall back to the raw markdown")
	}
}

func TestApp_RendersInFlightDoNotShareRenderer(t *testing.T) {
	a := sized(t, NewApp(testDataset(), dash.Filter{}, TabDetails))
	r, err := newMarkdownRenderer(80)
	if err != nil {
		t.Fatalf("newMarkdownRenderer() error: %v", err)
	}
	a.glamourRenderer = r
	if a.idleRenderer() != r {
		t.Fatal("idle app should reuse the cached renderer")
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.idleRenderer() != nil {
		t.Fatal("cached renderer must not be handed out while a render is in flight")
	}

	// enter, esc, enter before the first render lands
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if !a.browserLoading || a.idleRenderer() != nil {
		t.Fatal("second render should build its own renderer")
	}

	fresh, err := newMarkdownRenderer(80)
	if err != nil {
		t.Fatalf("newMarkdownRenderer() error: %v", err)
	}
	m, _ := a.Update(browserRenderedMsg{hash: a.browserHash, content: "done", renderer: fresh})
	a = m.(App)
	if a.idleRenderer() != fresh {
		t.Error("renderer of the finished render should be cached")
	}
}
