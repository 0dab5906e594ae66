// Package menu holds the hierarchical debug-menu model and the controller
// that binds it to a host UI. Sections and items are plain value objects;
// the only mutable state is the single field each stateful item variant
// owns (toggle state, stepper value, picker index, multi-choice selection).
package menu

import (
	"fmt"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/kvstore"
)

// ItemKind is the closed set of menu item variants. Rendering and selection
// dispatch on it exhaustively; adding a variant without updating every
// consumer is a compile-visible change, not a silent fallthrough.
type ItemKind int

const (
	KindAction ItemKind = iota
	KindInfo
	KindToggle
	KindStepper
	KindPicker
	KindMultiChoice
	KindSubSection
)

func (k ItemKind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindInfo:
		return "info"
	case KindToggle:
		return "toggle"
	case KindStepper:
		return "stepper"
	case KindPicker:
		return "picker"
	case KindMultiChoice:
		return "multi-choice"
	case KindSubSection:
		return "sub-section"
	}
	return fmt.Sprintf("ItemKind(%d)", int(k))
}

// BoolBinding resolves a toggle's state from either an inline value or a
// key in the key-value store, never both.
type BoolBinding struct {
	key   string
	value bool
	bound bool
}

func BoolValue(v bool) BoolBinding   { return BoolBinding{value: v} }
func BoolKey(key string) BoolBinding { return BoolBinding{key: key, bound: true} }

// Resolve reads the current state. A missing or mistyped store value
// degrades to false.
func (b BoolBinding) Resolve(kv kvstore.Store) bool {
	if !b.bound {
		return b.value
	}
	if v, ok := kv.Get(b.key); ok {
		if bb, ok := v.(anyval.Bool); ok {
			return bool(bb)
		}
	}
	return false
}

// FloatBinding is the stepper-value analogue of BoolBinding.
type FloatBinding struct {
	key   string
	value float64
	bound bool
}

func FloatValue(v float64) FloatBinding { return FloatBinding{value: v} }
func FloatKey(key string) FloatBinding  { return FloatBinding{key: key, bound: true} }

func (b FloatBinding) Resolve(kv kvstore.Store) float64 {
	if !b.bound {
		return b.value
	}
	if v, ok := kv.Get(b.key); ok {
		if n, ok := v.(anyval.Number); ok {
			return float64(n)
		}
	}
	return 0
}

// IndexBinding is the picker-index analogue of BoolBinding.
type IndexBinding struct {
	key   string
	value int
	bound bool
}

func IndexValue(i int) IndexBinding  { return IndexBinding{value: i} }
func IndexKey(key string) IndexBinding { return IndexBinding{key: key, bound: true} }

func (b IndexBinding) Resolve(kv kvstore.Store) int {
	if !b.bound {
		return b.value
	}
	if v, ok := kv.Get(b.key); ok {
		if n, ok := v.(anyval.Number); ok {
			return int(n)
		}
	}
	return 0
}

// Item is one menu row. Identifiers are opaque caller-chosen strings,
// unique within the item's immediate parent section.
type Item struct {
	ID    string
	Title string
	Kind  ItemKind

	// Info holds the copyable payload of an info row.
	Info string

	// Toggle state (KindToggle).
	Toggle BoolBinding

	// Stepper state (KindStepper).
	Value          FloatBinding
	Min, Max, Step float64

	// Picker state (KindPicker).
	Labels []string
	Index  IndexBinding

	// Selected is the multi-choice selection flag; the mutual-exclusion
	// invariant is owned by the enclosing section, not the item.
	Selected bool

	// Sections of a sub-section item. Owned exclusively by this item.
	Sections []Section
}

// Section groups an ordered run of items. A multi-choice section allows at
// most one selected item at a time.
type Section struct {
	ID          string
	Title       string
	MultiChoice bool
	Items       []Item
}

// Menu is an ordered sequence of sections plus the built-in tools flag.
// The built-in trailing section is computed, never stored (builtin.go).
type Menu struct {
	Title               string
	Sections            []Section
	IncludeBuiltInTools bool
}

func NewAction(id, title string) Item {
	return Item{ID: id, Title: title, Kind: KindAction}
}

func NewInfo(id, title, info string) Item {
	return Item{ID: id, Title: title, Kind: KindInfo, Info: info}
}

func NewToggle(id, title string, on bool) Item {
	return Item{ID: id, Title: title, Kind: KindToggle, Toggle: BoolValue(on)}
}

func NewBoundToggle(id, title, storeKey string) Item {
	return Item{ID: id, Title: title, Kind: KindToggle, Toggle: BoolKey(storeKey)}
}

func NewStepper(id, title string, value, min, max, step float64) Item {
	return Item{ID: id, Title: title, Kind: KindStepper, Value: FloatValue(value), Min: min, Max: max, Step: step}
}

func NewBoundStepper(id, title, storeKey string, min, max, step float64) Item {
	return Item{ID: id, Title: title, Kind: KindStepper, Value: FloatKey(storeKey), Min: min, Max: max, Step: step}
}

func NewPicker(id, title string, labels []string, selected int) Item {
	return Item{ID: id, Title: title, Kind: KindPicker, Labels: labels, Index: IndexValue(selected)}
}

func NewBoundPicker(id, title string, labels []string, storeKey string) Item {
	return Item{ID: id, Title: title, Kind: KindPicker, Labels: labels, Index: IndexKey(storeKey)}
}

func NewMultiChoice(id, title string, selected bool) Item {
	return Item{ID: id, Title: title, Kind: KindMultiChoice, Selected: selected}
}

func NewSubSection(id, title string, sections ...Section) Item {
	return Item{ID: id, Title: title, Kind: KindSubSection, Sections: sections}
}

// NewSubSectionItems wraps a flat item list in a single untitled section.
func NewSubSectionItems(id, title string, items ...Item) Item {
	return NewSubSection(id, title, Section{ID: id, Items: items})
}

// ToggleOn resolves the toggle's current state at render time.
func (it Item) ToggleOn(kv kvstore.Store) bool {
	it.mustBe(KindToggle)
	return it.Toggle.Resolve(kv)
}

// StepperValue resolves the stepper's current value at render time.
func (it Item) StepperValue(kv kvstore.Store) float64 {
	it.mustBe(KindStepper)
	return it.Value.Resolve(kv)
}

// PickerIndex resolves the picker's current index at render time, clamped
// into the label range so a stale store value cannot break rendering.
func (it Item) PickerIndex(kv kvstore.Store) int {
	it.mustBe(KindPicker)
	idx := it.Index.Resolve(kv)
	if idx < 0 {
		return 0
	}
	if idx >= len(it.Labels) {
		return len(it.Labels) - 1
	}
	return idx
}

// PickerLabel resolves the currently selected label.
func (it Item) PickerLabel(kv kvstore.Store) string {
	idx := it.PickerIndex(kv)
	if idx < 0 || idx >= len(it.Labels) {
		return ""
	}
	return it.Labels[idx]
}

// SubMenu derives the independent menu scope of a sub-section item. The
// scope shares the item's section data, carries the item's title, and never
// shows built-in tools (those appear only at the root).
func (it Item) SubMenu() Menu {
	it.mustBe(KindSubSection)
	return Menu{Title: it.Title, Sections: it.Sections}
}

func (it Item) mustBe(k ItemKind) {
	if it.Kind != k {
		panic(fmt.Sprintf("menu: item %q is %s, not %s", it.ID, it.Kind, k))
	}
}
