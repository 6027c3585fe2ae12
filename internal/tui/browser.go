package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// browserRenderedMsg is sent when background glamour rendering completes.
type browserRenderedMsg struct {
	hash     string
	content  string
	renderer *glamour.TermRenderer
	err      error
}

func newMarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

// renderMarkdown renders md. When the renderer could not be built or fails,
// the raw markdown is returned along with the error.
func renderMarkdown(r *glamour.TermRenderer, rerr error, md string) (string, error) {
	if rerr != nil {
		return md, rerr
	}
	if r == nil {
		return md, errors.New("no markdown renderer")
	}
	out, err := r.Render(md)
	if err != nil {
		return md, err
	}
	return strings.TrimRight(out, "\n"), nil
}

// renderBrowserCmd renders a commit document off the UI goroutine. cached is
// reused when non-nil; the caller must not hand the same renderer to two
// renders in flight.
func renderBrowserCmd(hash, md string, cached *glamour.TermRenderer, width int) tea.Cmd {
	return func() tea.Msg {
		r := cached
		var err error
		if r == nil {
			r, err = newMarkdownRenderer(width)
		}
		content, err := renderMarkdown(r, err, md)
		msg := browserRenderedMsg{hash: hash, content: content, err: err}
		if err == nil {
			msg.renderer = r
		}
		return msg
	}
}
