package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"inspect-cli/internal/menu"
)

// menuScreen renders one menu scope and translates keys into controller
// dispatches. Toggles flip on enter; steppers and pickers edit in place
// with left/right.
type menuScreen struct {
	ctrl     *menu.Controller
	titleStr string
	rows     []menuRow
	cursor   int
}

func newMenuScreen(ctrl *menu.Controller, title string) *menuScreen {
	s := &menuScreen{ctrl: ctrl, titleStr: title}
	s.reflatten()
	return s
}

func (s *menuScreen) reflatten() {
	s.rows = flattenMenu(s.ctrl.Menu())
	if s.cursor >= len(s.rows) || s.cursor < 0 || s.rows[s.cursor].header {
		s.cursor = firstSelectable(s.rows)
	}
}

func (s *menuScreen) title() string { return s.titleStr }

func (s *menuScreen) footer() string {
	return "enter: select  " + glyphArrow() + " adjust  j/k: move"
}

func (s *menuScreen) update(a *App, msg tea.Msg) (tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}

	switch key.String() {
	case "up", "k", "ctrl+p":
		s.cursor = nextSelectable(s.rows, s.cursor, -1)
		return nil, true
	case "down", "j", "ctrl+n":
		s.cursor = nextSelectable(s.rows, s.cursor, +1)
		return nil, true
	case "left", "h":
		return s.adjust(a, -1), true
	case "right", "l":
		return s.adjust(a, +1), true
	case "enter", " ":
		return s.activate(a), true
	}
	return nil, false
}

func (s *menuScreen) currentItem() (menu.Item, int, int, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].header {
		return menu.Item{}, 0, 0, false
	}
	r := s.rows[s.cursor]
	return s.ctrl.Menu().ItemAt(r.section, r.row), r.section, r.row, true
}

// adjust edits value rows in place. Each step commits through the
// controller, so the delegate sees every intermediate value.
func (s *menuScreen) adjust(a *App, dir int) tea.Cmd {
	it, _, _, ok := s.currentItem()
	if !ok {
		return nil
	}
	switch it.Kind {
	case menu.KindToggle:
		_ = s.ctrl.CommitToggle(it.ID, !it.ToggleOn(s.ctrl.KV()))
	case menu.KindStepper:
		step := it.Step
		if step <= 0 {
			step = 1
		}
		cur := it.StepperValue(s.ctrl.KV())
		_ = s.ctrl.CommitStepper(it.ID, cur+float64(dir)*step)
	case menu.KindPicker:
		next := it.PickerIndex(s.ctrl.KV()) + dir
		if next >= 0 && next < len(it.Labels) {
			_ = s.ctrl.CommitPicker(it.ID, next)
		}
	}
	return nil
}

func (s *menuScreen) activate(a *App) tea.Cmd {
	it, section, row, ok := s.currentItem()
	if !ok {
		return nil
	}

	if it.Kind == menu.KindToggle {
		_ = s.ctrl.CommitToggle(it.ID, !it.ToggleOn(s.ctrl.KV()))
		return nil
	}
	if it.Kind == menu.KindStepper || it.Kind == menu.KindPicker {
		// Edited in place with left/right.
		return nil
	}

	out := s.ctrl.SelectRow(section, row)
	s.reflatten()
	if out.CopiedAck != nil {
		ctrl, tok := s.ctrl, *out.CopiedAck
		return tea.Tick(menu.CopiedAckDuration, func(time.Time) tea.Msg {
			return copiedExpireMsg{ctrl: ctrl, tok: tok}
		})
	}
	return nil
}

func (s *menuScreen) view(a *App, width, height int) string {
	return renderMenuBody(s.ctrl, s.rows, s.cursor, width, a.opts.TruncateAt)
}
