package menu

import (
	"fmt"
	"math"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/kvstore"
)

// Mutations address items by id within this menu's own sections. Referencing
// an id that is not present is a caller bug, not a runtime data condition,
// and panics.

func (m *Menu) findSection(sectionID string) *Section {
	for i := range m.Sections {
		if m.Sections[i].ID == sectionID {
			return &m.Sections[i]
		}
	}
	panic(fmt.Sprintf("menu: unknown section id %q", sectionID))
}

func (m *Menu) findItem(id string, kind ItemKind) *Item {
	for si := range m.Sections {
		items := m.Sections[si].Items
		for ii := range items {
			if items[ii].ID == id {
				items[ii].mustBe(kind)
				return &items[ii]
			}
		}
	}
	panic(fmt.Sprintf("menu: unknown item id %q", id))
}

// SelectMultiChoice selects itemID in the given multi-choice section,
// deselecting whatever was selected before. From the caller's point of view
// the swap is atomic: no intermediate two-selected or zero-selected state is
// observable. Returns the previous and new selection ids (prev is empty when
// nothing was selected; selecting the already-selected item is a no-op swap).
func (m *Menu) SelectMultiChoice(sectionID, itemID string) (prev, cur string) {
	sec := m.findSection(sectionID)
	if !sec.MultiChoice {
		panic(fmt.Sprintf("menu: section %q is not multi-choice", sectionID))
	}

	target := -1
	for i := range sec.Items {
		if sec.Items[i].ID == itemID {
			target = i
		}
		if sec.Items[i].Selected {
			prev = sec.Items[i].ID
		}
	}
	if target == -1 {
		panic(fmt.Sprintf("menu: unknown item id %q in section %q", itemID, sectionID))
	}

	for i := range sec.Items {
		sec.Items[i].Selected = i == target
	}
	return prev, itemID
}

// SetToggle stores the toggle's new state through its binding. Bound
// toggles write to the key-value store; inline toggles mutate in place.
func (m *Menu) SetToggle(id string, on bool, kv kvstore.Store) error {
	it := m.findItem(id, KindToggle)
	if it.Toggle.bound {
		return kv.Set(it.Toggle.key, anyval.Bool(on))
	}
	it.Toggle.value = on
	return nil
}

// SetStepper stores a new stepper value, clamped into [Min, Max] and
// snapped to the nearest multiple of Step from Min. Clamping is the model's
// job; callers pass raw values. A step of 0 (or less) clamps only. Returns
// the value actually stored.
func (m *Menu) SetStepper(id string, value float64, kv kvstore.Store) (float64, error) {
	it := m.findItem(id, KindStepper)
	value = clampStep(value, it.Min, it.Max, it.Step)
	if it.Value.bound {
		return value, kv.Set(it.Value.key, anyval.Number(value))
	}
	it.Value.value = value
	return value, nil
}

// SetPicker stores a new selected index. An out-of-range index is a caller
// bug and panics.
func (m *Menu) SetPicker(id string, index int, kv kvstore.Store) error {
	it := m.findItem(id, KindPicker)
	if index < 0 || index >= len(it.Labels) {
		panic(fmt.Sprintf("menu: picker %q index %d out of range [0,%d)", id, index, len(it.Labels)))
	}
	if it.Index.bound {
		return kv.Set(it.Index.key, anyval.Number(index))
	}
	it.Index.value = index
	return nil
}

func clampStep(v, min, max, step float64) float64 {
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	if step > 0 {
		v = min + math.Round((v-min)/step)*step
		if v > max {
			v -= step
		}
		if v < min {
			v = min
		}
	}
	return v
}
