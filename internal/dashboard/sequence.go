package dashboard

import (
	"sync"
	"sync/atomic"
)

// sequencer orders writes to a region. Every request takes a number from
// issue; apply runs the write unless a later number was already applied.
// A number may be applied more than once so a request can write a
// placeholder and then its result.
type sequencer struct {
	next    atomic.Uint64
	mu      sync.Mutex
	applied uint64
}

func (s *sequencer) issue() uint64 {
	return s.next.Add(1)
}

func (s *sequencer) apply(seq uint64, write func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		return false
	}
	s.applied = seq
	write()
	return true
}
