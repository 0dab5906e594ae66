package tui

import (
	"testing"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/credstore"
	"inspect-cli/internal/kvstore"
	"inspect-cli/internal/menu"
)

func newTestApp() *App {
	m := &menu.Menu{
		Sections: []menu.Section{{
			ID: "s",
			Items: []menu.Item{
				menu.NewAction("a", "Action"),
				menu.NewSubSectionItems("sub", "More", menu.NewAction("inner", "Inner")),
			},
		}},
		IncludeBuiltInTools: true,
	}
	return NewApp(Options{
		Title:      "Test",
		Menu:       m,
		Delegate:   testDelegate{},
		KV:         kvstore.NewMemoryStore("app"),
		Creds:      credstore.NewMemoryStore(),
		Classifier: anyval.Classifier{},
		TruncateAt: 40,
	})
}

func TestApp_BuiltinRowsPushInspectorScreens(t *testing.T) {
	a := newTestApp()
	ms := a.top().(*menuScreen)

	// Row order: 2 user rows, then the three built-in tools.
	ms.cursor = len(ms.rows) - 2 // View Saved Settings
	ms.activate(a)
	if _, ok := a.top().(*settingsScreen); !ok {
		t.Fatalf("expected settings screen, got %T", a.top())
	}
	a.pop()

	ms.cursor = len(ms.rows) - 1 // View Credential Items
	ms.activate(a)
	if _, ok := a.top().(*credClassScreen); !ok {
		t.Fatalf("expected credential screen, got %T", a.top())
	}
	a.pop()

	ms.cursor = len(ms.rows) - 3 // View Logs
	ms.activate(a)
	if _, ok := a.top().(*logListScreen); !ok {
		t.Fatalf("expected log list screen, got %T", a.top())
	}
}

func TestApp_SubSectionPushesScopedMenuScreen(t *testing.T) {
	a := newTestApp()
	ms := a.top().(*menuScreen)

	ms.cursor = 1 // the sub-section row
	ms.activate(a)

	sub, ok := a.top().(*menuScreen)
	if !ok {
		t.Fatalf("expected nested menu screen, got %T", a.top())
	}
	if sub.titleStr != "More" {
		t.Fatalf("expected sub-section title, got %q", sub.titleStr)
	}
	if sub.ctrl == ms.ctrl {
		t.Fatalf("nested scope must use a derived controller")
	}
	// Built-in tools only appear on the root scope.
	for _, r := range sub.rows {
		if sub.ctrl.Menu().IsBuiltinSection(r.section) {
			t.Fatalf("built-in tools leaked into a nested scope")
		}
	}

	a.pop()
	if a.top() != screen(ms) {
		t.Fatalf("pop should return to the root menu")
	}
}

func TestApp_PresentFallbackRendersUnknownReference(t *testing.T) {
	a := newTestApp()
	type customRef struct{ Name string }
	a.Present(customRef{Name: "diag"})

	ds, ok := a.top().(*dataScreen)
	if !ok {
		t.Fatalf("expected data screen, got %T", a.top())
	}
	if ds.body == "" {
		t.Fatalf("fallback body should describe the reference")
	}
}
