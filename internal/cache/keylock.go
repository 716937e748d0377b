package cache

import (
	"sync"
)

// KeyLock serializes work on one key inside this process. Distinct keys
// never block each other. Entries are dropped once nobody holds or waits
// for them.
type KeyLock[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*keyLockEntry
}

type keyLockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyLock creates an empty lock set
func NewKeyLock[K comparable]() *KeyLock[K] {
	return &KeyLock[K]{locks: make(map[K]*keyLockEntry)}
}

// Lock blocks until key is free and returns the matching unlock
func (l *KeyLock[K]) Lock(key K) func() {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &keyLockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *KeyLock[K]) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
