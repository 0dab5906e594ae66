package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/credstore"
	"inspect-cli/internal/kvstore"
	"inspect-cli/internal/logbuf"
	"inspect-cli/internal/menu"
)

// Options wires the interactive app to the host application's inspection
// surface.
type Options struct {
	Title    string
	Menu     *menu.Menu
	Delegate menu.Delegate

	KV         kvstore.Store
	Creds      credstore.Store
	Classifier anyval.Classifier

	// TruncateAt caps one-line value summaries, in runes.
	TruncateAt int

	// LogDir, when set, is watched so the log source list stays current.
	LogDir string
}

// screen is one layer of the navigation stack. update returns a command and
// whether the screen consumed the message.
type screen interface {
	title() string
	update(a *App, msg tea.Msg) (tea.Cmd, bool)
	view(a *App, width, height int) string
	footer() string
}

type (
	copiedExpireMsg struct {
		ctrl *menu.Controller
		tok  menu.CopiedToken
	}
	logsChangedMsg struct{}
)

// App is the bubbletea model. It is used by pointer so that it can double
// as the menu.Navigator: Present pushes screens while a controller dispatch
// is still on the stack.
type App struct {
	opts  Options
	root  *menu.Controller
	stack []screen

	watcher *logbuf.Watcher

	width  int
	height int

	status string
}

func NewApp(opts Options) *App {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()
	if opts.TruncateAt <= 0 {
		opts.TruncateAt = 80
	}
	a := &App{opts: opts}
	a.root = menu.NewController(opts.Menu, opts.Delegate, opts.KV, systemClipboard{}, a, opts.Classifier)
	a.stack = []screen{newMenuScreen(a.root, opts.Title)}
	if opts.LogDir != "" {
		if w, err := logbuf.WatchDir(opts.LogDir); err == nil {
			a.watcher = w
		}
	}
	return a
}

func Run(opts Options) error {
	a := NewApp(opts)
	defer a.Close()
	_, err := tea.NewProgram(a, tea.WithAltScreen()).Run()
	return err
}

func (a *App) Close() {
	a.watcher.Close()
}

// Present implements menu.Navigator.
func (a *App) Present(view any) {
	switch v := view.(type) {
	case menu.MenuView:
		ctrl := a.topMenuController().Scoped(v.Menu)
		a.push(newMenuScreen(ctrl, v.Menu.Title))
	case menu.DataView:
		a.push(newDataScreen(v.Title, v.Header, v.Body, v.Markdown))
	case menu.LogListView:
		a.push(newLogListScreen(v.Sources))
	case menu.SettingsView:
		a.push(newSettingsScreen(a.opts.KV, a.opts.Classifier, a.opts.TruncateAt))
	case menu.CredentialsView:
		a.push(newCredClassScreen(a.opts.Creds))
	default:
		// Delegate-produced references this host doesn't know are shown as
		// their Go representation rather than dropped silently.
		a.push(newDataScreen("Result", "", fmt.Sprintf("%+v", view), false))
	}
}

func (a *App) push(s screen) { a.stack = append(a.stack, s) }

func (a *App) pop() {
	if len(a.stack) > 1 {
		a.stack = a.stack[:len(a.stack)-1]
	}
}

func (a *App) top() screen { return a.stack[len(a.stack)-1] }

func (a *App) topMenuController() *menu.Controller {
	for i := len(a.stack) - 1; i >= 0; i-- {
		if ms, ok := a.stack[i].(*menuScreen); ok {
			return ms.ctrl
		}
	}
	return a.root
}

func (a *App) Init() tea.Cmd {
	return a.waitForLogChange()
}

func (a *App) waitForLogChange() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	ch := a.watcher.C
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return logsChangedMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Size-sensitive screens observe the new size on next view.
		for _, s := range a.stack {
			if r, ok := s.(interface{ resize(width, height int) }); ok {
				r.resize(a.bodyWidth(), a.bodyHeight())
			}
		}
		return a, nil

	case copiedExpireMsg:
		msg.ctrl.ExpireCopied(msg.tok)
		return a, nil

	case logsChangedMsg:
		if ls, ok := a.top().(*logListScreen); ok {
			ls.refresh(a.opts.Delegate.LogSources())
		}
		return a, a.waitForLogChange()

	case tea.KeyMsg:
		a.status = ""
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		// Screens capturing text input (filter fields) see every key first.
		if c, ok := a.top().(interface{ capturing() bool }); ok && c.capturing() {
			cmd, _ := a.top().update(a, msg)
			return a, cmd
		}
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "esc", "backspace":
			if cmd, handled := a.top().update(a, msg); handled {
				return a, cmd
			}
			if len(a.stack) == 1 {
				return a, tea.Quit
			}
			a.pop()
			return a, nil
		}
	}

	cmd, _ := a.top().update(a, msg)
	return a, cmd
}

func (a *App) bodyWidth() int {
	w := a.width
	if w < 40 {
		w = 40
	}
	return w
}

func (a *App) bodyHeight() int {
	h := a.height - 4
	if h < 8 {
		h = 8
	}
	return h
}

func (a *App) View() string {
	header := styleTitle.Render(a.top().title())
	body := a.top().view(a, a.bodyWidth(), a.bodyHeight())

	foot := a.top().footer()
	if len(a.stack) > 1 {
		foot = "esc: back  " + foot
	}
	foot += "  q: quit"
	if a.status != "" {
		foot = styleAccent.Render(a.status) + "   " + foot
	}
	footer := faintIfDark(styleMuted).Render(strings.TrimSpace(foot))

	return strings.Join([]string{header, body, footer}, "\n\n")
}
