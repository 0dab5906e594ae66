package kvstore

import (
	"sort"
	"strings"

	"inspect-cli/internal/anyval"
)

// Snapshot is a frozen copy of one domain of a Store, taken when the
// persisted-settings inspector opens (or is refreshed). Filtering operates
// on the copy, so a search never observes concurrent store changes.
type Snapshot struct {
	Domain string

	keys   []string
	values map[string]anyval.Value
}

// Take copies the given domain out of the store. Keys come back sorted.
func Take(st Store, domain string) (Snapshot, error) {
	keys, err := st.Keys(domain)
	if err != nil {
		return Snapshot{}, err
	}
	sort.Strings(keys)

	values := make(map[string]anyval.Value, len(keys))
	for _, k := range keys {
		if v, ok := st.Lookup(domain, k); ok {
			values[k] = v
		}
	}
	return Snapshot{Domain: domain, keys: keys, values: values}, nil
}

// Keys returns the snapshot's keys filtered by a case-insensitive substring
// match on the key name. An empty term returns all keys.
func (s Snapshot) Keys(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]string(nil), s.keys...)
	}
	var out []string
	for _, k := range s.keys {
		if strings.Contains(strings.ToLower(k), term) {
			out = append(out, k)
		}
	}
	return out
}

func (s Snapshot) Value(key string) (anyval.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s Snapshot) Len() int {
	return len(s.keys)
}
