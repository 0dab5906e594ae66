package menu

import (
	"testing"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/kvstore"
	"inspect-cli/internal/logbuf"
)

type delegateCall struct {
	method    string
	id        string
	sectionID string
	on        bool
	value     float64
	index     int
}

type fakeDelegate struct {
	calls   []delegateCall
	actions map[string]*ActionResult
	sources []logbuf.Source
}

func (d *fakeDelegate) ToggleChanged(id string, on bool) {
	d.calls = append(d.calls, delegateCall{method: "toggle", id: id, on: on})
}
func (d *fakeDelegate) StepperChanged(id string, value float64) {
	d.calls = append(d.calls, delegateCall{method: "stepper", id: id, value: value})
}
func (d *fakeDelegate) MultiChoiceChanged(id, sectionID string, selected bool) {
	d.calls = append(d.calls, delegateCall{method: "multi", id: id, sectionID: sectionID, on: selected})
}
func (d *fakeDelegate) PickerChanged(id string, index int) {
	d.calls = append(d.calls, delegateCall{method: "picker", id: id, index: index})
}
func (d *fakeDelegate) ActionSelected(id string) *ActionResult {
	d.calls = append(d.calls, delegateCall{method: "action", id: id})
	return d.actions[id]
}
func (d *fakeDelegate) LogSources() []logbuf.Source { return d.sources }

type fakeNav struct {
	presented []any
}

func (n *fakeNav) Present(view any) { n.presented = append(n.presented, view) }

type fakeClipboard struct {
	texts []string
}

func (c *fakeClipboard) SetText(s string) error {
	c.texts = append(c.texts, s)
	return nil
}

func newTestController(m *Menu, d *fakeDelegate) (*Controller, *fakeNav, *fakeClipboard) {
	nav := &fakeNav{}
	clip := &fakeClipboard{}
	kv := kvstore.NewMemoryStore("app")
	c := NewController(m, d, kv, clip, nav, anyval.Classifier{})
	return c, nav, clip
}

func TestSelectRow_MultiChoiceEndToEnd(t *testing.T) {
	m := &Menu{Sections: []Section{{
		ID:          "backend",
		MultiChoice: true,
		Items: []Item{
			NewMultiChoice("mc1", "One", true),
			NewMultiChoice("mc2", "Two", false),
		},
	}}}
	d := &fakeDelegate{}
	c, _, _ := newTestController(m, d)

	out := c.SelectRow(0, 1)

	if len(d.calls) != 1 {
		t.Fatalf("expected one delegate call; got %v", d.calls)
	}
	call := d.calls[0]
	if call.method != "multi" || call.id != "mc2" || call.sectionID != "backend" || !call.on {
		t.Fatalf("unexpected delegate call: %+v", call)
	}
	if out.ReloadSection != 0 {
		t.Fatalf("expected section-scoped redraw; got %d", out.ReloadSection)
	}

	selected := map[string]bool{}
	for _, it := range m.Sections[0].Items {
		if it.Selected {
			selected[it.ID] = true
		}
	}
	if len(selected) != 1 || !selected["mc2"] {
		t.Fatalf("expected selection exactly {mc2}; got %v", selected)
	}
}

func TestSelectRow_ActionResults(t *testing.T) {
	type customView struct{ name string }

	m := &Menu{Sections: []Section{{
		ID: "s",
		Items: []Item{
			NewAction("none", "No result"),
			NewAction("text", "Text result"),
			NewAction("value", "Value result"),
			NewAction("view", "View result"),
		},
	}}}
	d := &fakeDelegate{actions: map[string]*ActionResult{
		"text":  TextResult("# heading"),
		"value": ValueResult(anyval.Number(42)),
		"view":  ViewResult(customView{name: "custom"}),
	}}
	c, nav, _ := newTestController(m, d)

	if out := c.SelectRow(0, 0); out.ReloadSection != -1 || len(nav.presented) != 0 {
		t.Fatalf("nil result should present nothing")
	}

	c.SelectRow(0, 1)
	dv, ok := nav.presented[0].(DataView)
	if !ok || dv.Body != "# heading" || !dv.Markdown {
		t.Fatalf("expected markdown data view; got %#v", nav.presented[0])
	}

	c.SelectRow(0, 2)
	dv = nav.presented[1].(DataView)
	if dv.Body != "42" || dv.Header != "Type: Number" {
		t.Fatalf("expected classified value view; got %#v", dv)
	}

	c.SelectRow(0, 3)
	if cv, ok := nav.presented[2].(customView); !ok || cv.name != "custom" {
		t.Fatalf("navigable reference should pass through untouched; got %#v", nav.presented[2])
	}
}

func TestSelectRow_InfoCopiesAndAcks(t *testing.T) {
	m := &Menu{Sections: []Section{{
		ID: "s",
		Items: []Item{
			NewInfo("build", "Build", "1.2.3 (456)"),
			NewInfo("empty", "Empty", ""),
		},
	}}}
	d := &fakeDelegate{}
	c, _, clip := newTestController(m, d)

	out := c.SelectRow(0, 0)
	if len(clip.texts) != 1 || clip.texts[0] != "1.2.3 (456)" {
		t.Fatalf("expected info payload copied; got %v", clip.texts)
	}
	if out.CopiedAck == nil || out.CopiedAck.ItemID != "build" {
		t.Fatalf("expected copied ack token; got %+v", out.CopiedAck)
	}
	if c.CopiedItemID() != "build" {
		t.Fatalf("row should show Copied; got %q", c.CopiedItemID())
	}

	// Timer fires: the ack reverts.
	if !c.ExpireCopied(*out.CopiedAck) {
		t.Fatalf("expected live token to expire the ack")
	}
	if c.CopiedItemID() != "" {
		t.Fatalf("ack should be cleared")
	}

	// Rows without payload copy nothing.
	out = c.SelectRow(0, 1)
	if out.CopiedAck != nil || len(clip.texts) != 1 {
		t.Fatalf("empty info row must not copy")
	}
}

func TestExpireCopied_StaleTokenIsNoOp(t *testing.T) {
	m := &Menu{Sections: []Section{{
		ID: "s",
		Items: []Item{
			NewInfo("a", "A", "payload-a"),
			NewInfo("b", "B", "payload-b"),
		},
	}}}
	d := &fakeDelegate{}
	c, _, _ := newTestController(m, d)

	first := c.SelectRow(0, 0)
	// The row is reused for different data before the first timer fires.
	second := c.SelectRow(0, 1)

	if c.ExpireCopied(*first.CopiedAck) {
		t.Fatalf("stale token must be a no-op")
	}
	if c.CopiedItemID() != "b" {
		t.Fatalf("second ack should survive the stale timer; got %q", c.CopiedItemID())
	}
	if !c.ExpireCopied(*second.CopiedAck) {
		t.Fatalf("current token should expire normally")
	}
}

func TestSelectRow_BuiltinRowsRouteToHostNavigation(t *testing.T) {
	m := &Menu{
		Sections:            []Section{{ID: "s", Items: []Item{NewAction("a", "A")}}},
		IncludeBuiltInTools: true,
	}
	src := logbuf.Source{Name: "app.log", SizeBytes: 12}
	d := &fakeDelegate{sources: []logbuf.Source{src}}
	c, nav, _ := newTestController(m, d)

	c.SelectRow(1, 0)
	ll, ok := nav.presented[0].(LogListView)
	if !ok || len(ll.Sources) != 1 || ll.Sources[0].Name != "app.log" {
		t.Fatalf("expected log list with delegate sources; got %#v", nav.presented[0])
	}

	c.SelectRow(1, 1)
	if _, ok := nav.presented[1].(SettingsView); !ok {
		t.Fatalf("expected settings view; got %#v", nav.presented[1])
	}

	c.SelectRow(1, 2)
	if _, ok := nav.presented[2].(CredentialsView); !ok {
		t.Fatalf("expected credentials view; got %#v", nav.presented[2])
	}

	// Built-in rows never hit ActionSelected.
	for _, call := range d.calls {
		if call.method == "action" {
			t.Fatalf("builtin row dispatched to user delegate: %+v", call)
		}
	}
}

func TestSelectRow_SubSectionPushesScopedMenu(t *testing.T) {
	m := &Menu{
		Sections: []Section{{
			ID: "s",
			Items: []Item{NewSubSectionItems("adv", "Advanced",
				NewAction("inner", "Inner action"),
			)},
		}},
		IncludeBuiltInTools: true,
	}
	d := &fakeDelegate{}
	c, nav, _ := newTestController(m, d)

	c.SelectRow(0, 0)
	mv, ok := nav.presented[0].(MenuView)
	if !ok {
		t.Fatalf("expected menu view; got %#v", nav.presented[0])
	}
	if mv.Menu.Title != "Advanced" || mv.Menu.IncludeBuiltInTools {
		t.Fatalf("scoped menu wrong: %+v", mv.Menu)
	}
}

func TestCommit_AppliesThenNotifies(t *testing.T) {
	m := &Menu{Sections: []Section{{
		ID: "s",
		Items: []Item{
			NewToggle("t", "Toggle", false),
			NewStepper("st", "Stepper", 0, 0, 10, 4),
			NewPicker("p", "Picker", []string{"a", "b"}, 0),
		},
	}}}
	d := &fakeDelegate{}
	c, _, _ := newTestController(m, d)

	if err := c.CommitToggle("t", true); err != nil {
		t.Fatalf("CommitToggle error: %v", err)
	}
	if err := c.CommitStepper("st", 23); err != nil {
		t.Fatalf("CommitStepper error: %v", err)
	}
	if err := c.CommitPicker("p", 1); err != nil {
		t.Fatalf("CommitPicker error: %v", err)
	}

	if len(d.calls) != 3 {
		t.Fatalf("expected 3 notifications; got %v", d.calls)
	}
	if d.calls[0].method != "toggle" || !d.calls[0].on {
		t.Fatalf("toggle notification wrong: %+v", d.calls[0])
	}
	// The delegate sees the clamped value, not the raw one.
	if d.calls[1].method != "stepper" || d.calls[1].value != 8 {
		t.Fatalf("stepper notification wrong: %+v", d.calls[1])
	}
	if d.calls[2].method != "picker" || d.calls[2].index != 1 {
		t.Fatalf("picker notification wrong: %+v", d.calls[2])
	}
}
