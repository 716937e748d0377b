package uniqueness

import (
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
)

// InsertLock is the set of names with a creation in flight. TryAcquire is an
// atomic test-and-set, so two creations of the same name can never both pass.
type InsertLock struct {
	mu    sync.Mutex
	names map[string]struct{}
}

// NewInsertLock creates an empty lock set
func NewInsertLock() *InsertLock {
	return &InsertLock{names: make(map[string]struct{})}
}

// TryAcquire marks name as being inserted. It returns false when another
// creation already holds it.
func (l *InsertLock) TryAcquire(name string) bool {
	key := cache.NormalizeName(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.names[key]; held {
		return false
	}
	l.names[key] = struct{}{}
	return true
}

// Release clears the in-flight mark
func (l *InsertLock) Release(name string) {
	key := cache.NormalizeName(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.names, key)
}

// Held reports whether a creation is in flight for name
func (l *InsertLock) Held(name string) bool {
	key := cache.NormalizeName(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	_, held := l.names[key]
	return held
}
