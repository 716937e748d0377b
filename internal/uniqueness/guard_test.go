package uniqueness_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/uniqueness"
)

type fakeStore struct {
	mu    sync.Mutex
	names map[string]bool
	calls int
	err   error
}

func (f *fakeStore) lookup(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.names[name], nil
}

type GuardTestSuite struct {
	suite.Suite
	ctx   context.Context
	cache *cache.Cache
	store *fakeStore
	guard *uniqueness.Guard
}

func (s *GuardTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cache = cache.New(nil)
	s.store = &fakeStore{names: map[string]bool{}}
	s.guard = uniqueness.New(&uniqueness.Config{
		Cache: s.cache,
		Lookups: uniqueness.Lookups{
			Username:      s.store.lookup,
			Email:         s.store.lookup,
			CharacterName: s.store.lookup,
			GuildName:     s.store.lookup,
		},
	})
}

func TestGuardTestSuite(t *testing.T) {
	suite.Run(t, new(GuardTestSuite))
}

func (s *GuardTestSuite) TestCachedPositiveSkipsStore() {
	s.Require().NoError(s.cache.GuildNames.Add(s.ctx, "Foo"))

	exists, err := s.guard.Exists(s.ctx, uniqueness.KindGuildName, "Foo")
	s.Require().NoError(err)
	s.True(exists)
	s.Equal(0, s.store.calls)
}

func (s *GuardTestSuite) TestStorePositiveIsRecorded() {
	s.store.names["Foo"] = true

	exists, err := s.guard.Exists(s.ctx, uniqueness.KindGuildName, "Foo")
	s.Require().NoError(err)
	s.True(exists)

	found, err := s.cache.GuildNames.Contains(s.ctx, "Foo")
	s.Require().NoError(err)
	s.True(found)
}

func (s *GuardTestSuite) TestNegativeIsNeverCached() {
	for i := 0; i < 2; i++ {
		exists, err := s.guard.Exists(s.ctx, uniqueness.KindCharacterName, "Bar")
		s.Require().NoError(err)
		s.False(exists)
	}
	s.Equal(2, s.store.calls)
}

func (s *GuardTestSuite) TestStoreFailureIsInternal() {
	s.store.err = errors.New("store down")

	_, err := s.guard.Exists(s.ctx, uniqueness.KindUsername, "alice")
	s.True(dnderr.IsInternal(err))
}

func (s *GuardTestSuite) TestBeginCreateNameInUse() {
	s.store.names["Foo"] = true

	release, err := s.guard.BeginCreate(s.ctx, uniqueness.KindGuildName, "Foo")
	s.Nil(release)
	s.True(dnderr.IsConflict(err))
	s.Equal(dnderr.ReasonNameInUse, dnderr.Reason(err))

	// the in-flight mark was cleared on failure
	s.store.names["Foo"] = false
	s.Require().NoError(s.cache.GuildNames.Remove(s.ctx, "Foo"))
	release, err = s.guard.BeginCreate(s.ctx, uniqueness.KindGuildName, "Foo")
	s.Require().NoError(err)
	release()
}

func (s *GuardTestSuite) TestBeginCreateInFlight() {
	release, err := s.guard.BeginCreate(s.ctx, uniqueness.KindGuildName, "Foo")
	s.Require().NoError(err)
	calls := s.store.calls

	_, err = s.guard.BeginCreate(s.ctx, uniqueness.KindGuildName, "foo")
	s.True(dnderr.IsConflict(err))
	s.Equal(dnderr.ReasonNameInserting, dnderr.Reason(err))
	s.Equal(calls, s.store.calls, "in-flight conflict must not reach the store")

	// kinds are locked independently
	other, err := s.guard.BeginCreate(s.ctx, uniqueness.KindCharacterName, "Foo")
	s.Require().NoError(err)
	other()

	release()
	release, err = s.guard.BeginCreate(s.ctx, uniqueness.KindGuildName, "Foo")
	s.Require().NoError(err)
	release()
}

func TestInsertLock(t *testing.T) {
	lock := uniqueness.NewInsertLock()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if lock.TryAcquire("Foo") {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one acquire, got %d", wins)
	}
	if !lock.Held("FOO") {
		t.Fatal("expected name to be held")
	}
	lock.Release("foo")
	if lock.Held("Foo") {
		t.Fatal("expected name to be released")
	}
}
