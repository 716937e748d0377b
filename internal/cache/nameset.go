package cache

import (
	"context"
	"fmt"
	"strings"
)

// NameSet records names known to exist in the persistence store. It only
// ever holds positives: a miss says nothing about the store. Names compare
// case-insensitively.
type NameSet struct {
	name    string
	backend Backend
	enabled bool
}

func newNameSet(c *Cache, name string) *NameSet {
	return &NameSet{
		name:    "names:" + name,
		backend: c.backend,
		enabled: c.enabled,
	}
}

// NormalizeName is the form names are stored and compared in
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Contains reports whether name has been recorded
func (s *NameSet) Contains(ctx context.Context, name string) (bool, error) {
	if !s.enabled {
		return false, nil
	}
	found, err := s.backend.SetContains(ctx, s.name, NormalizeName(name))
	if err != nil {
		return false, fmt.Errorf("cache %s contains: %w", s.name, err)
	}
	return found, nil
}

// Add records name as existing
func (s *NameSet) Add(ctx context.Context, name string) error {
	if !s.enabled {
		return nil
	}
	if err := s.backend.SetAdd(ctx, s.name, NormalizeName(name)); err != nil {
		return fmt.Errorf("cache %s add: %w", s.name, err)
	}
	return nil
}

// Remove forgets name. Only delete operations call this.
func (s *NameSet) Remove(ctx context.Context, name string) error {
	if !s.enabled {
		return nil
	}
	if err := s.backend.SetRemove(ctx, s.name, NormalizeName(name)); err != nil {
		return fmt.Errorf("cache %s remove: %w", s.name, err)
	}
	return nil
}
