// Package logbuf collects application log output for the panel's log
// inspector: named in-memory buffers with tag/substring filters, file-backed
// sources, and a zap bridge so an embedding app's logger feeds the panel
// without changes.
package logbuf

import (
	"strings"
	"sync"
)

// DefaultCapacity bounds a buffer's retained lines; the oldest lines are
// dropped first.
const DefaultCapacity = 2000

// FilteredBuffer retains log lines whose tag and message pass its filters.
// An empty tag filter matches any tag; an empty term matches any message;
// both must pass. Matching is plain case-insensitive containment.
type FilteredBuffer struct {
	name string
	tag  string
	term string

	mu    sync.Mutex
	cap   int
	lines []string
}

func NewFilteredBuffer(name, tag, term string) *FilteredBuffer {
	return &FilteredBuffer{name: name, tag: tag, term: strings.ToLower(term), cap: DefaultCapacity}
}

func (b *FilteredBuffer) Name() string { return b.name }

// Offer appends the formatted line if the raw message and tag pass the
// buffer's filters.
func (b *FilteredBuffer) Offer(formatted, message, tag string) {
	if b.tag != "" && tag != b.tag {
		return
	}
	if b.term != "" && !strings.Contains(strings.ToLower(message), b.term) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, formatted)
	if len(b.lines) > b.cap {
		b.lines = b.lines[len(b.lines)-b.cap:]
	}
}

func (b *FilteredBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// Source exposes the buffer's current contents as a log source.
func (b *FilteredBuffer) Source() Source {
	lines := b.Lines()
	content := strings.Join(lines, "\n")
	return memorySource(b.name, content)
}

// Set fans formatted log lines out to its attached buffers.
type Set struct {
	mu      sync.RWMutex
	buffers []*FilteredBuffer
}

func NewSet() *Set {
	return &Set{}
}

func (s *Set) Attach(b *FilteredBuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers = append(s.buffers, b)
}

func (s *Set) Dispatch(formatted, message, tag string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.buffers {
		b.Offer(formatted, message, tag)
	}
}

// Sources snapshots every attached buffer as a log source.
func (s *Set) Sources() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Source, 0, len(s.buffers))
	for _, b := range s.buffers {
		out = append(out, b.Source())
	}
	return out
}
