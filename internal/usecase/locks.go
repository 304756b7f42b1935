package usecase

import (
	"sync"
)

// resourceLocks serializes conflict-check-then-write sequences per resource
// name. Holding the lock across check and insert is what upholds the
// no-overlapping-live-bookings invariant under concurrent writers; readers
// never take it.
type resourceLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newResourceLocks() *resourceLocks {
	return &resourceLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// acquire locks the named resource and returns the matching release func.
func (l *resourceLocks) acquire(resourceName string) func() {
	l.mu.Lock()
	lock, ok := l.locks[resourceName]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[resourceName] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
