// Package mirror holds a local, read-only copy of a remote collection.
//
// A Mirror has exactly one writer, the subscription that feeds it, and any
// number of readers. Every Replace swaps the whole collection; readers see
// either the old or the new snapshot, never a mix.
package mirror

import (
	"sync"
	"time"
)

// Snapshot is an immutable view of the collection. Items must not be
// modified by readers.
type Snapshot[T any] struct {
	Version   uint64
	Items     []T
	UpdatedAt time.Time
}

type Mirror[T any] struct {
	mu     sync.RWMutex
	snap   Snapshot[T]
	subs   map[int]chan struct{}
	nextID int
}

func New[T any]() *Mirror[T] {
	return &Mirror[T]{
		snap: Snapshot[T]{Items: []T{}},
		subs: make(map[int]chan struct{}),
	}
}

// Replace installs items as the new snapshot and notifies subscribers.
func (m *Mirror[T]) Replace(items []T) Snapshot[T] {
	cp := make([]T, len(items))
	copy(cp, items)

	m.mu.Lock()
	m.snap = Snapshot[T]{
		Version:   m.snap.Version + 1,
		Items:     cp,
		UpdatedAt: time.Now(),
	}
	snap := m.snap
	for _, ch := range m.subs {
		select {
		case ch <- struct{}{}:
		default:
			// already signalled; the reader will pick up the latest snapshot
		}
	}
	m.mu.Unlock()

	return snap
}

// Snapshot returns the current snapshot. Version 0 means nothing has been
// received yet.
func (m *Mirror[T]) Snapshot() Snapshot[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Subscribe returns a channel that receives a signal after each Replace.
// Signals coalesce: a slow reader sees one signal and reads the latest
// snapshot. The returned func unsubscribes and closes the channel.
func (m *Mirror[T]) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			close(ch)
			m.mu.Unlock()
		})
	}
}
