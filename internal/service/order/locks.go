package order

import "sync"

// orderLocks serializes status transitions per order id. Two concurrent
// transitions racing on the same inventoryAdjusted flag could both read
// false and both decrement stock; holding the order's lock across the
// whole read-check-mutate-write sequence rules that out in-process, with
// the repository's version check covering multi-process writers.
type orderLocks struct {
	mu   sync.Mutex
	held map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newOrderLocks() *orderLocks {
	return &orderLocks{held: make(map[int64]*lockEntry)}
}

// acquire blocks until the caller holds the lock for id and returns the
// matching release func.
func (l *orderLocks) acquire(id int64) func() {
	l.mu.Lock()
	entry, ok := l.held[id]
	if !ok {
		entry = &lockEntry{}
		l.held[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}
