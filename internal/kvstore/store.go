// Package kvstore is the key-value collaborator behind toggle/stepper/picker
// bindings and the persisted-settings inspector. Stores are grouped into
// named domains; Get/Set operate on the store's default domain, which is
// where menu bindings live.
package kvstore

import (
	"sort"
	"sync"

	"inspect-cli/internal/anyval"
)

type Store interface {
	// Get resolves a key in the default domain. Absent keys (and backend
	// read failures) report ok=false; callers degrade, they do not error.
	Get(key string) (anyval.Value, bool)
	Set(key string, value anyval.Value) error
	Domains() ([]string, error)
	Keys(domain string) ([]string, error)
	Lookup(domain, key string) (anyval.Value, bool)
}

// MemoryStore is an in-process Store used by tests, demos, and hosts that
// keep their tunables in memory.
type MemoryStore struct {
	mu            sync.RWMutex
	defaultDomain string
	domains       map[string]map[string]anyval.Value
}

func NewMemoryStore(defaultDomain string) *MemoryStore {
	return &MemoryStore{
		defaultDomain: defaultDomain,
		domains:       map[string]map[string]anyval.Value{defaultDomain: {}},
	}
}

func (s *MemoryStore) Get(key string) (anyval.Value, bool) {
	return s.Lookup(s.defaultDomain, key)
}

func (s *MemoryStore) Set(key string, value anyval.Value) error {
	s.SetIn(s.defaultDomain, key, value)
	return nil
}

// SetIn writes a key into an arbitrary domain, creating the domain if needed.
func (s *MemoryStore) SetIn(domain, key string, value anyval.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.domains[domain]
	if d == nil {
		d = map[string]anyval.Value{}
		s.domains[domain] = d
	}
	d[key] = value
}

func (s *MemoryStore) Domains() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.domains))
	for d := range s.domains {
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) Keys(domain string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.domains[domain]
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) Lookup(domain, key string) (anyval.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.domains[domain]
	if d == nil {
		return nil, false
	}
	v, ok := d[key]
	return v, ok
}
