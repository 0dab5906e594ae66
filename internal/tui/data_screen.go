package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// dataScreen is a scrollable text payload: action results, full value
// descriptions, log file content.
type dataScreen struct {
	titleStr string
	header   string
	body     string
	markdown bool

	vp    viewport.Model
	ready bool
	width int
}

func newDataScreen(title, header, body string, markdown bool) *dataScreen {
	return &dataScreen{titleStr: title, header: header, body: body, markdown: markdown}
}

func (s *dataScreen) title() string { return s.titleStr }

func (s *dataScreen) footer() string { return "c: copy  j/k: scroll" }

func (s *dataScreen) resize(width, height int) {
	if s.header != "" {
		height -= 2
		if height < 4 {
			height = 4
		}
	}
	if !s.ready {
		s.vp = viewport.New(width, height)
		s.ready = true
	} else {
		s.vp.Width = width
		s.vp.Height = height
	}
	s.width = width
	s.vp.SetContent(s.renderBody(width))
}

func (s *dataScreen) renderBody(width int) string {
	if s.markdown {
		return renderMarkdown(s.body, width)
	}
	return s.body
}

func (s *dataScreen) update(a *App, msg tea.Msg) (tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "c" {
		if err := (systemClipboard{}).SetText(s.body); err == nil {
			a.status = "Copied"
		}
		return nil, true
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd, false
}

func (s *dataScreen) view(a *App, width, height int) string {
	if !s.ready || s.width != width {
		s.resize(width, height)
	}
	if s.header == "" {
		return s.vp.View()
	}
	return strings.Join([]string{styleHeader.Render(s.header), s.vp.View()}, "\n\n")
}
