package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/kvstore"
)

// settingsEntry is one visible row of the settings inspector.
type settingsEntry struct {
	domain string
	key    string
	val    anyval.Value
}

// settingsScreen inspects the persisted settings store. It works over a
// fixed snapshot: keys written after opening appear only after a refresh,
// so filtering stays stable while the app keeps writing. The scope cycles
// through each domain and an all-domains view.
type settingsScreen struct {
	kv         kvstore.Store
	classifier anyval.Classifier
	truncateAt int

	domains []string
	// scope indexes domains; len(domains) means "all domains".
	scope   int
	entries []settingsEntry

	filter    textinput.Model
	filtering bool
	cursor    int
}

func newSettingsScreen(kv kvstore.Store, classifier anyval.Classifier, truncateAt int) *settingsScreen {
	ti := textinput.New()
	ti.Placeholder = "filter keys"
	ti.Prompt = "/"
	ti.CharLimit = 120

	s := &settingsScreen{kv: kv, classifier: classifier, truncateAt: truncateAt, filter: ti}
	s.domains, _ = kv.Domains()
	s.takeSnapshot()
	return s
}

func (s *settingsScreen) scopeName() string {
	if len(s.domains) == 0 {
		return "(no domains)"
	}
	if s.scope >= len(s.domains) {
		return "all domains"
	}
	return s.domains[s.scope]
}

func (s *settingsScreen) allScope() bool { return s.scope >= len(s.domains) }

func (s *settingsScreen) takeSnapshot() {
	s.entries = s.entries[:0]
	s.cursor = 0

	scoped := s.domains
	if !s.allScope() && len(s.domains) > 0 {
		scoped = s.domains[s.scope : s.scope+1]
	}
	for _, d := range scoped {
		snap, err := kvstore.Take(s.kv, d)
		if err != nil {
			continue
		}
		for _, k := range snap.Keys("") {
			if v, ok := snap.Value(k); ok {
				s.entries = append(s.entries, settingsEntry{domain: d, key: k, val: v})
			}
		}
	}
}

func (s *settingsScreen) title() string { return "Saved Settings" }

func (s *settingsScreen) footer() string {
	if s.filtering {
		return "enter: apply  esc: clear"
	}
	return "enter: open  /: filter  tab: scope  r: refresh"
}

func (s *settingsScreen) capturing() bool { return s.filtering }

func (s *settingsScreen) visible() []settingsEntry {
	term := strings.ToLower(strings.TrimSpace(s.filter.Value()))
	if term == "" {
		return s.entries
	}
	var out []settingsEntry
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.key), term) {
			out = append(out, e)
		}
	}
	return out
}

// visibleKeys is the key column of the visible rows, for tests and labels.
func (s *settingsScreen) visibleKeys() []string {
	entries := s.visible()
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.key)
	}
	return keys
}

func (s *settingsScreen) rowLabel(e settingsEntry) string {
	if s.allScope() && len(s.domains) > 1 {
		return e.domain + "/" + e.key
	}
	return e.key
}

func (s *settingsScreen) update(a *App, msg tea.Msg) (tea.Cmd, bool) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return nil, false
	}

	if s.filtering {
		switch key.String() {
		case "enter":
			s.filtering = false
			s.filter.Blur()
			return nil, true
		case "esc":
			s.filtering = false
			s.filter.Blur()
			s.filter.SetValue("")
			s.cursor = 0
			return nil, true
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.cursor = 0
		return cmd, true
	}

	entries := s.visible()
	switch key.String() {
	case "up", "k", "ctrl+p":
		if s.cursor > 0 {
			s.cursor--
		}
		return nil, true
	case "down", "j", "ctrl+n":
		if s.cursor < len(entries)-1 {
			s.cursor++
		}
		return nil, true
	case "/":
		s.filtering = true
		return s.filter.Focus(), true
	case "tab", "d":
		s.scope = (s.scope + 1) % (len(s.domains) + 1)
		s.filter.SetValue("")
		s.takeSnapshot()
		return nil, true
	case "r":
		s.takeSnapshot()
		return nil, true
	case "enter":
		if s.cursor >= len(entries) {
			return nil, true
		}
		e := entries[s.cursor]
		cl := s.classifier.Classify(e.val)
		a.push(newDataScreen(e.key, "Type: "+string(cl.Kind), cl.Full, false))
		return nil, true
	}
	return nil, false
}

func (s *settingsScreen) view(a *App, width, height int) string {
	var b strings.Builder

	b.WriteString(styleHeader.Render("Scope: " + s.scopeName()))
	b.WriteString("\n")
	b.WriteString(s.filter.View())
	b.WriteString("\n\n")

	entries := s.visible()
	if len(entries) == 0 {
		b.WriteString(styleMuted.Render("No matching keys."))
		return b.String()
	}
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		cl := s.classifier.Classify(e.val)
		detail := anyval.Truncate(cl.Summary, s.truncateAt)
		b.WriteString(menuLine("  "+s.rowLabel(e), detail, i == s.cursor, width))
	}
	return b.String()
}
