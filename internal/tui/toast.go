package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// toastType defines the visual style and behavior of a toast notification.
type toastType int

const (
	toastSuccess toastType = iota
	toastError
	toastWarning
	toastLoading // Shows a spinner; persists until dismissed programmatically.
)

// toastAutoDismiss is how long non-loading toasts stay visible.
const toastAutoDismiss = 4 * time.Second

// toastModel is a single notification shown in place of the help bar, such
// as the load summary or "Rendering commit...". A new toast replaces the
// previous one.
type toastModel struct {
	active  bool
	message string
	kind    toastType
	id      int // Monotonic; stale dismiss timers carry an older id.
	nextID  int

	spinner spinner.Model
}

// toastDismissMsg is sent by the auto-dismiss timer.
type toastDismissMsg struct {
	id int
}

func newToastModel() toastModel {
	return toastModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(spinnerStyle),
		),
	}
}

// show displays a toast and returns the command that drives it: a spinner
// tick for loading toasts, a dismiss timer otherwise.
func (m toastModel) show(message string, kind toastType) (toastModel, tea.Cmd) {
	m.active = true
	m.message = message
	m.kind = kind
	m.id = m.nextID
	m.nextID++

	if kind == toastLoading {
		return m, m.spinner.Tick
	}
	id := m.id
	return m, tea.Tick(toastAutoDismiss, func(_ time.Time) tea.Msg {
		return toastDismissMsg{id: id}
	})
}

func (m toastModel) dismiss() toastModel {
	m.active = false
	m.message = ""
	return m
}

func (m toastModel) update(msg tea.Msg) (toastModel, tea.Cmd) {
	switch msg := msg.(type) {
	case toastDismissMsg:
		if msg.id == m.id {
			m = m.dismiss()
		}
		return m, nil

	case spinner.TickMsg:
		if m.active && m.kind == toastLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// view renders the toast with a 1 char indent, or "" when inactive.
func (m toastModel) view() string {
	if !m.active {
		return ""
	}

	var style lipgloss.Style
	switch m.kind {
	case toastSuccess:
		style = successStyle
	case toastError:
		style = errorStyle
	case toastWarning:
		style = warningStyle
	case toastLoading:
		return " " + m.spinner.View() + mutedStyle.Render(m.message)
	}
	return " " + style.Render(m.message)
}
