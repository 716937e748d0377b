package uniqueness

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
)

// Kind names one family of unique names
type Kind int

const (
	KindUsername Kind = iota
	KindEmail
	KindCharacterName
	KindGuildName
)

func (k Kind) String() string {
	switch k {
	case KindUsername:
		return "username"
	case KindEmail:
		return "email"
	case KindCharacterName:
		return "character name"
	case KindGuildName:
		return "guild name"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Lookup asks the persistence store whether a name is taken
type Lookup func(ctx context.Context, name string) (bool, error)

// Lookups holds the store existence checks, one per kind
type Lookups struct {
	Username      Lookup
	Email         Lookup
	CharacterName Lookup
	GuildName     Lookup
}

// Config holds configuration for the guard
type Config struct {
	Cache   *cache.Cache // Required
	Lookups Lookups      // Required, every field
	Logger  hclog.Logger // Optional
}

// Guard answers "does this name exist" from the existence sets, falling
// back to the store on a miss, and serializes creations of the same name.
type Guard struct {
	sets    map[Kind]*cache.NameSet
	lookups map[Kind]Lookup
	locks   map[Kind]*InsertLock
	logger  hclog.Logger
}

// New creates a uniqueness guard
func New(cfg *Config) *Guard {
	if cfg == nil {
		panic("uniqueness config cannot be nil")
	}
	if cfg.Cache == nil {
		panic("cache is required")
	}
	l := cfg.Lookups
	if l.Username == nil || l.Email == nil || l.CharacterName == nil || l.GuildName == nil {
		panic("every name lookup is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Guard{
		sets: map[Kind]*cache.NameSet{
			KindUsername:      cfg.Cache.Usernames,
			KindEmail:         cfg.Cache.Emails,
			KindCharacterName: cfg.Cache.CharacterNames,
			KindGuildName:     cfg.Cache.GuildNames,
		},
		lookups: map[Kind]Lookup{
			KindUsername:      l.Username,
			KindEmail:         l.Email,
			KindCharacterName: l.CharacterName,
			KindGuildName:     l.GuildName,
		},
		locks: map[Kind]*InsertLock{
			KindUsername:      NewInsertLock(),
			KindEmail:         NewInsertLock(),
			KindCharacterName: NewInsertLock(),
			KindGuildName:     NewInsertLock(),
		},
		logger: logger,
	}
}

// Exists reports whether name is taken. A cached positive answers without
// touching the store; a store-confirmed positive is recorded.
func (g *Guard) Exists(ctx context.Context, kind Kind, name string) (bool, error) {
	set := g.sets[kind]

	found, err := set.Contains(ctx, name)
	if err != nil {
		g.logger.Warn("existence set read failed", "kind", kind.String(), "error", err)
	} else if found {
		return true, nil
	}

	exists, err := g.lookups[kind](ctx, name)
	if err != nil {
		return false, dnderr.WrapStore(err, fmt.Sprintf("failed to check %s %q", kind, name))
	}
	if exists {
		g.Record(ctx, kind, name)
	}
	return exists, nil
}

// Record adds a name known to exist
func (g *Guard) Record(ctx context.Context, kind Kind, name string) {
	if err := g.sets[kind].Add(ctx, name); err != nil {
		g.logger.Warn("existence set write failed", "kind", kind.String(), "error", err)
	}
}

// Forget removes a deleted name
func (g *Guard) Forget(ctx context.Context, kind Kind, name string) {
	if err := g.sets[kind].Remove(ctx, name); err != nil {
		g.logger.Warn("existence set removal failed", "kind", kind.String(), "error", err)
	}
}

// BeginCreate claims name for one creation attempt and checks it is free.
// The returned release must be called once the attempt finishes, whatever
// its outcome. A name already being inserted fails with a conflict without
// touching the store.
func (g *Guard) BeginCreate(ctx context.Context, kind Kind, name string) (func(), error) {
	lock := g.locks[kind]
	if !lock.TryAcquire(name) {
		return nil, dnderr.Conflictf("%s %q is being created", kind, name).
			WithReason(dnderr.ReasonNameInserting).
			WithMeta("name", name)
	}
	release := func() { lock.Release(name) }

	exists, err := g.Exists(ctx, kind, name)
	if err != nil {
		release()
		return nil, err
	}
	if exists {
		release()
		return nil, dnderr.Conflictf("%s %q already exists", kind, name).
			WithReason(dnderr.ReasonNameInUse).
			WithMeta("name", name)
	}
	return release, nil
}
