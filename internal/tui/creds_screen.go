package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/credstore"
)

// credClassScreen lists the credential item classes with item counts.
type credClassScreen struct {
	store   credstore.Store
	classes []credstore.ItemClass
	counts  map[credstore.ItemClass]int
	cursor  int
}

func newCredClassScreen(store credstore.Store) *credClassScreen {
	s := &credClassScreen{
		store:   store,
		classes: credstore.Classes(),
		counts:  map[credstore.ItemClass]int{},
	}
	for _, c := range s.classes {
		items, err := store.ListItems(c)
		if err != nil {
			continue
		}
		s.counts[c] = len(items)
	}
	return s
}

func (s *credClassScreen) title() string { return "Credential Items" }

func (s *credClassScreen) footer() string { return "enter: open  j/k: move" }

func (s *credClassScreen) update(a *App, msg tea.Msg) (tea.Cmd, bool) {
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
		if s.cursor < len(s.classes)-1 {
			s.cursor++
		}
		return nil, true
	case "enter":
		class := s.classes[s.cursor]
		items, err := s.store.ListItems(class)
		if err != nil {
			a.status = "list failed: " + err.Error()
			return nil, true
		}
		a.push(newCredItemsScreen(class, items))
		return nil, true
	}
	return nil, false
}

func (s *credClassScreen) view(a *App, width, height int) string {
	var b strings.Builder
	for i, c := range s.classes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(menuLine("  "+c.String(), fmt.Sprintf("%d", s.counts[c]), i == s.cursor, width))
	}
	return b.String()
}

// credItemsScreen lists the items of one class. Raw attributes are
// translated up front so rows can show a recognizable label.
type credItemsScreen struct {
	class  credstore.ItemClass
	items  []map[string]anyval.Value
	cursor int
}

func newCredItemsScreen(class credstore.ItemClass, raw []map[string]anyval.Value) *credItemsScreen {
	items := make([]map[string]anyval.Value, 0, len(raw))
	for _, attrs := range raw {
		items = append(items, credstore.Translate(class, attrs))
	}
	return &credItemsScreen{class: class, items: items}
}

func (s *credItemsScreen) title() string { return s.class.String() }

func (s *credItemsScreen) footer() string { return "enter: open  j/k: move" }

func (s *credItemsScreen) update(a *App, msg tea.Msg) (tea.Cmd, bool) {
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
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
		return nil, true
	case "enter":
		if s.cursor >= len(s.items) {
			return nil, true
		}
		it := s.items[s.cursor]
		a.push(newDataScreen(itemLabel(it), "", renderAttrs(it, a.opts.Classifier), false))
		return nil, true
	}
	return nil, false
}

func (s *credItemsScreen) view(a *App, width, height int) string {
	if len(s.items) == 0 {
		return styleMuted.Render("No items.")
	}
	var b strings.Builder
	for i, it := range s.items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(menuLine("  "+itemLabel(it), "", i == s.cursor, width))
	}
	return b.String()
}

// itemLabel picks the most recognizable attribute for a row label.
func itemLabel(attrs map[string]anyval.Value) string {
	for _, k := range []string{"service", "account", "label", "key"} {
		if v, ok := attrs[k]; ok {
			if t, ok := v.(anyval.Text); ok && string(t) != "" {
				return string(t)
			}
		}
	}
	return "(unnamed item)"
}

// renderAttrs formats a translated attribute map as an aligned two-column
// table, scan targets first.
func renderAttrs(attrs map[string]anyval.Value, classifier anyval.Classifier) string {
	keys := credstore.OrderKeys(attrs)

	keyW := 0
	for _, k := range keys {
		if len(k) > keyW {
			keyW = len(k)
		}
	}

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		cl := classifier.Classify(attrs[k])
		b.WriteString(fmt.Sprintf("%-*s  %s", keyW, k, cl.Summary))
	}
	return b.String()
}
