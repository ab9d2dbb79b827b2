package tokenstore

import (
	"sync"
	"time"
)

// DefaultSweepInterval matches how often expired entries are evicted.
const DefaultSweepInterval = time.Minute

var _ Store = (*InMemory)(nil)

// InMemory is a process-local Store. A background ticker sweeps expired
// entries; the sweep may race a concurrent Put on the same key, which at
// worst evicts an entry moments before it would have been overwritten.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]Entry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewInMemory creates a store and starts its sweep goroutine. Call Stop on
// shutdown.
func NewInMemory(sweepInterval time.Duration) *InMemory {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}

	s := &InMemory{
		entries: make(map[string]Entry),
		stop:    make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

func (s *InMemory) Put(handle string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[handle] = entry
}

func (s *InMemory) Get(handle string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[handle]
	return entry, ok
}

func (s *InMemory) Delete(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, handle)
}

// Stop terminates the sweep goroutine. Safe to call more than once.
func (s *InMemory) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *InMemory) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.evictExpired(now)
		}
	}
}

func (s *InMemory) evictExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for handle, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, handle)
		}
	}
}
