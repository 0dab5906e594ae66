// Package credstore models read-only inspection of a secure credential
// store. The store itself is an external collaborator behind the Store
// interface; this package owns the item-class taxonomy and the translation
// of raw attribute records into human-readable form.
package credstore

import (
	"sort"
	"sync"

	"inspect-cli/internal/anyval"
)

// ItemClass is the fixed set of credential item classes.
type ItemClass string

const (
	ClassCertificate      ItemClass = "cert"
	ClassGenericPassword  ItemClass = "genp"
	ClassIdentity         ItemClass = "idnt"
	ClassInternetPassword ItemClass = "inet"
	ClassKey              ItemClass = "keys"
)

// Classes returns all item classes in display order.
func Classes() []ItemClass {
	return []ItemClass{
		ClassCertificate,
		ClassGenericPassword,
		ClassIdentity,
		ClassInternetPassword,
		ClassKey,
	}
}

func (c ItemClass) String() string {
	switch c {
	case ClassCertificate:
		return "Certificate"
	case ClassGenericPassword:
		return "GenericPassword"
	case ClassIdentity:
		return "Identity"
	case ClassInternetPassword:
		return "InternetPassword"
	case ClassKey:
		return "Key"
	}
	return string(c)
}

// Store lists raw attribute records per item class. No writes: the panel is
// an inspector, not an editor.
type Store interface {
	ListItems(class ItemClass) ([]map[string]anyval.Value, error)
}

// MemoryStore is an in-process Store, used by tests and the demo panel.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[ItemClass][]map[string]anyval.Value
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[ItemClass][]map[string]anyval.Value{}}
}

func (s *MemoryStore) Add(class ItemClass, attrs map[string]anyval.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[class] = append(s.items[class], attrs)
}

func (s *MemoryStore) ListItems(class ItemClass) ([]map[string]anyval.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]map[string]anyval.Value, len(s.items[class]))
	copy(out, s.items[class])
	return out, nil
}

// PromotedKeys are the attribute names a developer scans first; attribute
// views list these before the remaining (sorted) keys. Ordering is a
// presentation concern, so it lives here and not in Translate.
func PromotedKeys() []string {
	return []string{"class", "service", "value", "account", "generic", "key"}
}

// OrderKeys returns the attribute names of a translated record with the
// promoted keys first (in promoted order) and the rest sorted.
func OrderKeys(attrs map[string]anyval.Value) []string {
	promoted := PromotedKeys()
	isPromoted := make(map[string]bool, len(promoted))
	out := make([]string, 0, len(attrs))
	for _, k := range promoted {
		isPromoted[k] = true
		if _, ok := attrs[k]; ok {
			out = append(out, k)
		}
	}
	rest := make([]string, 0, len(attrs))
	for k := range attrs {
		if !isPromoted[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
