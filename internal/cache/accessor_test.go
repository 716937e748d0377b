package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	mockcache "github.com/KirkDiggler/mmo-db-gateway/internal/cache/mocks"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

type GetOrLoadTestSuite struct {
	suite.Suite
	ctx     context.Context
	backend *cache.MemoryBackend
	cache   *cache.Cache
	calls   int
}

func (s *GetOrLoadTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = cache.NewMemoryBackend()
	s.cache = cache.New(&cache.Config{Backend: s.backend})
	s.calls = 0
}

func TestGetOrLoadTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrLoadTestSuite))
}

func (s *GetOrLoadTestSuite) partyLoader(party *entities.Party) cache.Loader[*entities.Party] {
	return func(ctx context.Context) (cache.Result[*entities.Party], error) {
		s.calls++
		if party == nil {
			return cache.Missing[*entities.Party](), nil
		}
		return cache.Found(party.Clone()), nil
	}
}

func (s *GetOrLoadTestSuite) TestMissLoadsOnceAndPopulates() {
	party := entities.NewParty(3, true, false, "char-1")
	party.AddMember(entities.SocialCharacter{ID: "char-1", Name: "Alice"})
	load := s.partyLoader(party)

	result, err := cache.GetOrLoad(s.ctx, s.cache.Parties, 3, load)
	s.Require().NoError(err)
	s.Require().True(result.HasValue())
	s.Equal(party, result.Value())
	s.Equal(1, s.calls)

	cached, err := s.cache.Parties.Get(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().True(cached.HasValue())
	s.Equal(party, cached.Value())

	again, err := cache.GetOrLoad(s.ctx, s.cache.Parties, 3, load)
	s.Require().NoError(err)
	s.Equal(party, again.Value())
	s.Equal(1, s.calls, "hit must not call the loader")
}

func (s *GetOrLoadTestSuite) TestMissingIsNotCached() {
	load := s.partyLoader(nil)

	result, err := cache.GetOrLoad(s.ctx, s.cache.Parties, 3, load)
	s.Require().NoError(err)
	s.False(result.HasValue())

	_, err = cache.GetOrLoad(s.ctx, s.cache.Parties, 3, load)
	s.Require().NoError(err)
	s.Equal(2, s.calls)
	s.Equal(0, s.backend.Len())
}

func (s *GetOrLoadTestSuite) TestLoaderErrorIsReturned() {
	storeErr := errors.New("store down")

	result, err := cache.GetOrLoad(s.ctx, s.cache.UserGold, "user-1", func(ctx context.Context) (cache.Result[int], error) {
		return cache.Result[int]{}, storeErr
	})
	s.ErrorIs(err, storeErr)
	s.False(result.HasValue())
	s.Equal(0, s.backend.Len())
}

func (s *GetOrLoadTestSuite) TestDisabledAlwaysLoads() {
	disabled := cache.New(&cache.Config{Backend: s.backend, Disabled: true})
	load := s.partyLoader(entities.NewParty(3, false, false, "char-1"))

	for i := 0; i < 3; i++ {
		result, err := cache.GetOrLoad(s.ctx, disabled.Parties, 3, load)
		s.Require().NoError(err)
		s.True(result.HasValue())
	}
	s.Equal(3, s.calls)
	s.Equal(0, s.backend.Len())
}

func (s *GetOrLoadTestSuite) TestBackendFailuresAreSwallowed() {
	ctrl := gomock.NewController(s.T())
	backend := mockcache.NewMockBackend(ctrl)
	failing := cache.New(&cache.Config{Backend: backend})

	backend.EXPECT().Get(s.ctx, "gold:user-1").Return(nil, false, errors.New("cache read down"))
	backend.EXPECT().Set(gomock.Any(), "gold:user-1", gomock.Any()).Return(errors.New("cache write down"))

	result, err := cache.GetOrLoad(s.ctx, failing.UserGold, "user-1", func(ctx context.Context) (cache.Result[int], error) {
		s.calls++
		return cache.Found(42), nil
	})
	s.Require().NoError(err)
	s.Equal(42, result.Value())
	s.Equal(1, s.calls)
}

func (s *GetOrLoadTestSuite) TestConcurrentMissesGetTheirOwnCopy() {
	party := entities.NewParty(3, true, false, "char-1")
	party.AddMember(entities.SocialCharacter{ID: "char-1", Name: "Alice"})

	var loads atomic.Int32
	release := make(chan struct{})
	load := func(ctx context.Context) (cache.Result[*entities.Party], error) {
		loads.Add(1)
		<-release
		return cache.Found(party.Clone()), nil
	}

	const callers = 4
	results := make([]*entities.Party, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := cache.GetOrLoad(s.ctx, s.cache.Parties, 3, load)
			s.NoError(err)
			results[i] = result.Value()
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	s.LessOrEqual(loads.Load(), int32(callers))
	for i := 0; i < callers; i++ {
		s.Require().NotNil(results[i])
		s.Equal(party, results[i])
		for j := i + 1; j < callers; j++ {
			s.NotSame(results[i], results[j])
		}
	}

	results[0].ShareExp = false
	results[0].Members[0].Name = "Mallory"
	s.True(results[1].ShareExp)
	s.Equal("Alice", results[1].Members[0].Name)

	cached, err := s.cache.Parties.Get(s.ctx, 3)
	s.Require().NoError(err)
	s.Equal(party, cached.Value())
}

func (s *GetOrLoadTestSuite) TestCancelledCallerStillLoads() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	result, err := cache.GetOrLoad(ctx, s.cache.UserGold, "user-1", func(ctx context.Context) (cache.Result[int], error) {
		if err := ctx.Err(); err != nil {
			return cache.Result[int]{}, err
		}
		return cache.Found(7), nil
	})
	s.Require().NoError(err)
	s.Equal(7, result.Value())

	cached, err := s.cache.UserGold.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(7, cached.Value())
}
