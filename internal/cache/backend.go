package cache

//go:generate mockgen -destination=mocks/mock_backend.go -package=mockcache -source=backend.go

import (
	"context"
	"sort"
	"sync"
)

// Backend is the raw key/value and set storage behind the typed tables.
// Every operation is atomic per key; nothing spans keys.
type Backend interface {
	// Get returns the raw value stored at key
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a raw value at key, overwriting any previous value
	Set(ctx context.Context, key string, value []byte) error

	// SetMany stores several values in one round trip
	SetMany(ctx context.Context, entries map[string][]byte) error

	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// SetAdd adds a member to a set
	SetAdd(ctx context.Context, set, member string) error

	// SetContains reports set membership
	SetContains(ctx context.Context, set, member string) (bool, error)

	// SetRemove removes a member from a set
	SetRemove(ctx context.Context, set, member string) error
}

// MemoryBackend is the process-local backend. Entries never expire.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
	sets   map[string]map[string]struct{}
}

// NewMemoryBackend creates an empty in-process backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values: make(map[string][]byte),
		sets:   make(map[string]map[string]struct{}),
	}
}

// Get returns the raw value stored at key
func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.values[key]
	return value, ok, nil
}

// Set stores a raw value at key
func (b *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = value
	return nil
}

// SetMany stores several values
func (b *MemoryBackend) SetMany(_ context.Context, entries map[string][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, value := range entries {
		b.values[key] = value
	}
	return nil
}

// Delete removes keys
func (b *MemoryBackend) Delete(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, key := range keys {
		delete(b.values, key)
	}
	return nil
}

// SetAdd adds a member to a set
func (b *MemoryBackend) SetAdd(_ context.Context, set, member string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	members, ok := b.sets[set]
	if !ok {
		members = make(map[string]struct{})
		b.sets[set] = members
	}
	members[member] = struct{}{}
	return nil
}

// SetContains reports set membership
func (b *MemoryBackend) SetContains(_ context.Context, set, member string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.sets[set][member]
	return ok, nil
}

// SetRemove removes a member from a set
func (b *MemoryBackend) SetRemove(_ context.Context, set, member string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.sets[set], member)
	return nil
}

// Len returns the number of stored values
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.values)
}

// sortedKeys gives SetMany implementations a stable write order
func sortedKeys(entries map[string][]byte) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
