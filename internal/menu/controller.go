package menu

import (
	"fmt"
	"time"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/kvstore"
	"inspect-cli/internal/logbuf"
)

// Delegate handles user interactions with menu items. Change notifications
// fire after the model has already applied the change; ActionSelected is the
// one synchronous query.
type Delegate interface {
	ToggleChanged(id string, on bool)
	StepperChanged(id string, value float64)
	MultiChoiceChanged(id, sectionID string, selected bool)
	PickerChanged(id string, index int)

	// ActionSelected may return a follow-up display, or nil for none.
	ActionSelected(id string) *ActionResult

	// LogSources supplies the built-in "View Logs" entry's content.
	LogSources() []logbuf.Source
}

// ActionResult is the optional follow-up display of an action item: exactly
// one of a navigable view reference, a formatted text payload, or an
// arbitrary value payload. Use the constructors.
type ActionResult struct {
	View  any
	Text  string
	Value anyval.Value

	isText bool
}

func ViewResult(view any) *ActionResult        { return &ActionResult{View: view} }
func TextResult(text string) *ActionResult     { return &ActionResult{Text: text, isText: true} }
func ValueResult(v anyval.Value) *ActionResult { return &ActionResult{Value: v} }

// Navigator presents view references produced by row selection. The
// controller never interprets a reference; it only hands them over.
type Navigator interface {
	Present(view any)
}

// View references the controller produces. Hosts switch on the concrete
// type; delegate-produced references (ActionResult.View) pass through
// untouched.
type (
	// MenuView is a nested menu scope (same delegate, no built-in tools).
	MenuView struct{ Menu Menu }
	// DataView is a scrollable text payload with an optional header line.
	DataView struct {
		Title    string
		Header   string
		Body     string
		Markdown bool
	}
	// LogListView lists the delegate's log sources.
	LogListView struct{ Sources []logbuf.Source }
	// SettingsView opens the persisted-settings inspector.
	SettingsView struct{}
	// CredentialsView opens the credential-store inspector.
	CredentialsView struct{}
)

// Clipboard is the copy collaborator for info rows and detail views.
type Clipboard interface {
	SetText(s string) error
}

// CopiedAckDuration is how long an info row shows "Copied" before
// reverting.
const CopiedAckDuration = 2 * time.Second

// CopiedToken guards the revert timer of a Copied acknowledgment: a token
// from a superseded copy no longer matches and expires as a no-op.
type CopiedToken struct {
	ItemID string
	gen    int
}

// RowOutcome tells the host what follow-up a row selection needs.
type RowOutcome struct {
	// ReloadSection is the section index to redraw, or -1 for none.
	ReloadSection int
	// CopiedAck, when non-nil, must be scheduled: after CopiedAckDuration
	// the host calls ExpireCopied with it and redraws if that reports true.
	CopiedAck *CopiedToken
	// BeganEdit marks rows whose value is edited interactively in the host
	// (stepper/picker/toggle); committed changes arrive via Commit*.
	BeganEdit bool
}

// Controller orchestrates navigation and dispatches interactions between a
// menu scope and the delegate. All methods run on the host's single
// interaction goroutine; the model is never mutated concurrently.
type Controller struct {
	menu       *Menu
	delegate   Delegate
	kv         kvstore.Store
	clip       Clipboard
	nav        Navigator
	classifier anyval.Classifier

	copiedID  string
	copiedGen int
}

func NewController(m *Menu, d Delegate, kv kvstore.Store, clip Clipboard, nav Navigator, classifier anyval.Classifier) *Controller {
	return &Controller{
		menu:       m,
		delegate:   d,
		kv:         kv,
		clip:       clip,
		nav:        nav,
		classifier: classifier,
	}
}

func (c *Controller) Menu() *Menu { return c.menu }

// SetMenu swaps in a freshly constructed tree. The controller keeps nothing
// from the previous tree; callers rebuild and call this to propagate
// external changes ("reload").
func (c *Controller) SetMenu(m *Menu) {
	c.menu = m
	c.copiedID = ""
	c.copiedGen++
}

// Scoped derives a controller for a sub-section's menu scope, sharing the
// delegate and collaborators.
func (c *Controller) Scoped(m Menu) *Controller {
	return NewController(&m, c.delegate, c.kv, c.clip, c.nav, c.classifier)
}

// KV exposes the binding store for render-time value resolution.
func (c *Controller) KV() kvstore.Store { return c.kv }

// CopiedItemID is the id of the row currently showing the Copied
// acknowledgment, or empty.
func (c *Controller) CopiedItemID() string { return c.copiedID }

// SelectRow resolves a flat (section, row) coordinate and dispatches on the
// item variant. Built-in tool rows route to host-level navigation, never to
// the user delegate.
func (c *Controller) SelectRow(section, row int) RowOutcome {
	out := RowOutcome{ReloadSection: -1}

	if tool, ok := c.menu.BuiltinAt(section, row); ok {
		switch tool {
		case BuiltinViewLogs:
			c.nav.Present(LogListView{Sources: c.delegate.LogSources()})
		case BuiltinViewSettings:
			c.nav.Present(SettingsView{})
		case BuiltinViewCredentials:
			c.nav.Present(CredentialsView{})
		default:
			panic(fmt.Sprintf("menu: unhandled builtin tool %d", int(tool)))
		}
		return out
	}

	sec := &c.menu.Sections[section]
	it := &sec.Items[row]

	switch it.Kind {
	case KindAction:
		res := c.delegate.ActionSelected(it.ID)
		switch {
		case res == nil:
			// No follow-up display.
		case res.View != nil:
			c.nav.Present(res.View)
		case res.Value != nil:
			cl := c.classifier.Classify(res.Value)
			c.nav.Present(DataView{
				Title:  it.Title,
				Header: "Type: " + string(cl.Kind),
				Body:   cl.Full,
			})
		case res.isText:
			c.nav.Present(DataView{Title: it.Title, Body: res.Text, Markdown: true})
		}

	case KindInfo:
		if it.Info != "" {
			_ = c.clip.SetText(it.Info)
			c.copiedGen++
			c.copiedID = it.ID
			out.CopiedAck = &CopiedToken{ItemID: it.ID, gen: c.copiedGen}
			out.ReloadSection = section
		}

	case KindMultiChoice:
		_, cur := c.menu.SelectMultiChoice(sec.ID, it.ID)
		c.delegate.MultiChoiceChanged(cur, sec.ID, true)
		out.ReloadSection = section

	case KindToggle, KindStepper, KindPicker:
		out.BeganEdit = true

	case KindSubSection:
		c.nav.Present(MenuView{Menu: it.SubMenu()})

	default:
		panic(fmt.Sprintf("menu: unhandled item kind %s", it.Kind))
	}

	return out
}

// ExpireCopied reverts the Copied acknowledgment when the timer fires, if
// the row still refers to the same copy. A stale token is a no-op. Reports
// whether the row changed (and needs a redraw).
func (c *Controller) ExpireCopied(tok CopiedToken) bool {
	if tok.ItemID != c.copiedID || tok.gen != c.copiedGen {
		return false
	}
	c.copiedID = ""
	return true
}

// CommitToggle applies a toggle edit committed in the host UI, then
// notifies the delegate.
func (c *Controller) CommitToggle(id string, on bool) error {
	if err := c.menu.SetToggle(id, on, c.kv); err != nil {
		return err
	}
	c.delegate.ToggleChanged(id, on)
	return nil
}

// CommitStepper applies a stepper edit. The value is clamped by the model;
// the delegate sees the value actually stored. Interactive edits may commit
// many times in a row; the controller relays each one.
func (c *Controller) CommitStepper(id string, value float64) error {
	applied, err := c.menu.SetStepper(id, value, c.kv)
	if err != nil {
		return err
	}
	c.delegate.StepperChanged(id, applied)
	return nil
}

// CommitPicker applies a picker edit, then notifies the delegate.
func (c *Controller) CommitPicker(id string, index int) error {
	if err := c.menu.SetPicker(id, index, c.kv); err != nil {
		return err
	}
	c.delegate.PickerChanged(id, index)
	return nil
}
