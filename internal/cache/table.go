package cache

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"
)

// Table is one logical cache table holding values of a single entity kind.
// Values are copied in and out, so mutating a value returned by Get never
// changes what other readers see.
type Table[K comparable, V any] struct {
	name    string
	keyFn   func(K) string
	backend Backend
	enabled bool
	logger  hclog.Logger
	loads   singleflight.Group
}

func newTable[K comparable, V any](c *Cache, name string, keyFn func(K) string) *Table[K, V] {
	return &Table[K, V]{
		name:    name,
		keyFn:   keyFn,
		backend: c.backend,
		enabled: c.enabled,
		logger:  c.logger.With("table", name),
	}
}

// Name returns the table name
func (t *Table[K, V]) Name() string {
	return t.name
}

// Enabled reports whether the table reads and writes the backend at all
func (t *Table[K, V]) Enabled() bool {
	return t.enabled
}

func (t *Table[K, V]) key(k K) string {
	return t.name + ":" + t.keyFn(k)
}

// Get returns the cached value for k. A disabled table always misses.
func (t *Table[K, V]) Get(ctx context.Context, k K) (Result[V], error) {
	if !t.enabled {
		return Missing[V](), nil
	}

	raw, ok, err := t.backend.Get(ctx, t.key(k))
	if err != nil {
		return Missing[V](), fmt.Errorf("cache %s get: %w", t.name, err)
	}
	if !ok {
		return Missing[V](), nil
	}

	var value V
	if err := decode(raw, &value); err != nil {
		return Missing[V](), fmt.Errorf("cache %s decode: %w", t.name, err)
	}
	return Found(value), nil
}

// Set overwrites the entry for k
func (t *Table[K, V]) Set(ctx context.Context, k K, value V) error {
	if !t.enabled {
		return nil
	}

	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("cache %s encode: %w", t.name, err)
	}
	if err := t.backend.Set(ctx, t.key(k), raw); err != nil {
		return fmt.Errorf("cache %s set: %w", t.name, err)
	}
	return nil
}

// SetMany overwrites several entries in one backend call
func (t *Table[K, V]) SetMany(ctx context.Context, entries map[K]V) error {
	if !t.enabled || len(entries) == 0 {
		return nil
	}

	raw := make(map[string][]byte, len(entries))
	for k, value := range entries {
		data, err := encode(value)
		if err != nil {
			return fmt.Errorf("cache %s encode: %w", t.name, err)
		}
		raw[t.key(k)] = data
	}
	if err := t.backend.SetMany(ctx, raw); err != nil {
		return fmt.Errorf("cache %s set many: %w", t.name, err)
	}
	return nil
}

// Remove invalidates the entries for keys
func (t *Table[K, V]) Remove(ctx context.Context, keys ...K) error {
	if !t.enabled || len(keys) == 0 {
		return nil
	}

	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = t.key(k)
	}
	if err := t.backend.Delete(ctx, raw...); err != nil {
		return fmt.Errorf("cache %s remove: %w", t.name, err)
	}
	return nil
}

// Store is Set with the failure logged instead of returned. Write paths use
// it after the persistence store has accepted the write.
func (t *Table[K, V]) Store(ctx context.Context, k K, value V) {
	if err := t.Set(ctx, k, value); err != nil {
		t.logger.Warn("cache write failed", "key", t.keyFn(k), "error", err)
	}
}

func (t *Table[K, V]) storeRaw(ctx context.Context, k K, raw []byte) {
	if err := t.backend.Set(ctx, t.key(k), raw); err != nil {
		t.logger.Warn("cache write failed", "key", t.keyFn(k), "error", err)
	}
}

// StoreMany is SetMany with the failure logged instead of returned
func (t *Table[K, V]) StoreMany(ctx context.Context, entries map[K]V) {
	if err := t.SetMany(ctx, entries); err != nil {
		t.logger.Warn("cache bulk write failed", "entries", len(entries), "error", err)
	}
}

// Invalidate is Remove with the failure logged instead of returned
func (t *Table[K, V]) Invalidate(ctx context.Context, keys ...K) {
	if err := t.Remove(ctx, keys...); err != nil {
		t.logger.Warn("cache invalidation failed", "keys", len(keys), "error", err)
	}
}
