package cache

import (
	"context"
	"fmt"
)

// Loader reads a value from the persistence store. Returning Missing means
// the entity does not exist; nothing is cached for it.
type Loader[V any] func(ctx context.Context) (Result[V], error)

// GetOrLoad returns the cached value for key, or calls load on a miss and
// caches what it found. Concurrent misses for the same key share one load,
// but every caller decodes its own copy of the loaded value. The shared load
// is not cancelled when the caller that started it goes away.
// Cache read and write failures are logged and never fail the call; loader
// errors are returned as is.
func GetOrLoad[K comparable, V any](ctx context.Context, t *Table[K, V], key K, load Loader[V]) (Result[V], error) {
	if !t.enabled {
		return load(ctx)
	}

	cached, err := t.Get(ctx, key)
	if err != nil {
		t.logger.Warn("cache read failed, falling back to store", "key", t.keyFn(key), "error", err)
	} else if cached.HasValue() {
		return cached, nil
	}

	shared, err, _ := t.loads.Do(t.key(key), func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		loaded, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		value, ok := loaded.Get()
		if !ok {
			return []byte(nil), nil
		}

		raw, err := encode(value)
		if err != nil {
			return nil, fmt.Errorf("cache %s encode: %w", t.name, err)
		}
		t.storeRaw(loadCtx, key, raw)
		return raw, nil
	})
	if err != nil {
		return Missing[V](), err
	}

	raw := shared.([]byte)
	if raw == nil {
		return Missing[V](), nil
	}
	var value V
	if err := decode(raw, &value); err != nil {
		return Missing[V](), fmt.Errorf("cache %s decode: %w", t.name, err)
	}
	return Found(value), nil
}
