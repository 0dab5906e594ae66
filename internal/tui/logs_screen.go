package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"inspect-cli/internal/logbuf"
)

// logListScreen lists the delegate's log sources. A directory watcher
// refreshes it when files appear or disappear.
type logListScreen struct {
	sources []logbuf.Source
	cursor  int
}

func newLogListScreen(sources []logbuf.Source) *logListScreen {
	return &logListScreen{sources: sources}
}

func (s *logListScreen) title() string { return "Logs" }

func (s *logListScreen) footer() string { return "enter: open  j/k: move" }

func (s *logListScreen) refresh(sources []logbuf.Source) {
	s.sources = sources
	if s.cursor >= len(s.sources) {
		s.cursor = len(s.sources) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *logListScreen) update(a *App, msg tea.Msg) (tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}
	switch key.String() {
	case "up", "k", "ctrl+p":
		if s.cursor > 0 {
			s.cursor--
		}
		return nil, true
	case "down", "j", "ctrl+n":
		if s.cursor < len(s.sources)-1 {
			s.cursor++
		}
		return nil, true
	case "enter":
		if s.cursor >= len(s.sources) {
			return nil, true
		}
		src := s.sources[s.cursor]
		content, err := src.Read()
		if err != nil {
			a.status = "open failed: " + err.Error()
			return nil, true
		}
		a.push(newLogTextScreen(src.Name, content))
		return nil, true
	}
	return nil, false
}

func (s *logListScreen) view(a *App, width, height int) string {
	if len(s.sources) == 0 {
		return styleMuted.Render("No log sources.")
	}
	var b strings.Builder
	for i, src := range s.sources {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(menuLine("  "+src.Name, humanSize(src.SizeBytes), i == s.cursor, width))
	}
	return b.String()
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// logTextScreen shows one log's content with a live substring filter.
type logTextScreen struct {
	name    string
	content string

	filter    textinput.Model
	filtering bool

	vp    viewport.Model
	ready bool
	width int
}

func newLogTextScreen(name, content string) *logTextScreen {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/"
	ti.CharLimit = 120
	return &logTextScreen{name: name, content: content, filter: ti}
}

func (s *logTextScreen) title() string { return s.name }

func (s *logTextScreen) footer() string {
	if s.filtering {
		return "enter: apply  esc: clear"
	}
	return "/: filter  c: copy  j/k: scroll"
}

func (s *logTextScreen) capturing() bool { return s.filtering }

func (s *logTextScreen) resize(width, height int) {
	height -= 2
	if height < 4 {
		height = 4
	}
	if !s.ready {
		s.vp = viewport.New(width, height)
		s.ready = true
	} else {
		s.vp.Width = width
		s.vp.Height = height
	}
	s.width = width
	s.reload()
}

func (s *logTextScreen) reload() {
	s.vp.SetContent(strings.Join(logbuf.FilterLines(s.content, s.filter.Value()), "\n"))
	s.vp.GotoBottom()
}

func (s *logTextScreen) update(a *App, msg tea.Msg) (tea.Cmd, bool) {
	key, isKey := msg.(tea.KeyMsg)

	if s.filtering {
		if !isKey {
			return nil, false
		}
		switch key.String() {
		case "enter":
			s.filtering = false
			s.filter.Blur()
			return nil, true
		case "esc":
			s.filtering = false
			s.filter.Blur()
			s.filter.SetValue("")
			s.reload()
			return nil, true
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.reload()
		return cmd, true
	}

	if isKey {
		switch key.String() {
		case "/":
			s.filtering = true
			return s.filter.Focus(), true
		case "c":
			if err := (systemClipboard{}).SetText(s.content); err == nil {
				a.status = "Copied"
			}
			return nil, true
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd, false
}

func (s *logTextScreen) view(a *App, width, height int) string {
	if !s.ready || s.width != width {
		s.resize(width, height)
	}
	return strings.Join([]string{s.filter.View(), s.vp.View()}, "\n\n")
}
