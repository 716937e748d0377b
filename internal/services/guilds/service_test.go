package guilds_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/clock/mocks"
	"github.com/KirkDiggler/mmo-db-gateway/internal/config"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/replicator"
	characterRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/characters"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/guildrequests"
	mockguildrequests "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/guildrequests/mock"
	guildRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/guilds"
	mockguilds "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/guilds/mock"
	partyRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/parties"
	storageRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/storages"
	"github.com/KirkDiggler/mmo-db-gateway/internal/reservation"
	"github.com/KirkDiggler/mmo-db-gateway/internal/services/characters"
	"github.com/KirkDiggler/mmo-db-gateway/internal/services/guilds"
	"github.com/KirkDiggler/mmo-db-gateway/internal/services/parties"
	"github.com/KirkDiggler/mmo-db-gateway/internal/services/storages"
	"github.com/KirkDiggler/mmo-db-gateway/internal/testutils"
	"github.com/KirkDiggler/mmo-db-gateway/internal/uniqueness"
)

func noName(context.Context, string) (bool, error) { return false, nil }

type ServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	mockCtrl   *gomock.Controller
	cache      *cache.Cache
	charRepo   *characterRepo.InMemoryRepository
	requests   guildrequests.Repository
	clock      *mocks.MockTimeProvider
	characters characters.Service
	settings   *config.SocialSettings
	parties    parties.Service
	service    guilds.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.settings = config.DefaultSocialSettings()
	s.settings.GuildExpTree = []int{100, 200, 300}
	s.clock = mocks.NewMockTimeProvider(s.mockCtrl)
	s.requests = guildrequests.NewInMemoryRepository()
	s.build(guildRepo.NewInMemoryRepository())

	for _, c := range []struct{ id, name string }{
		{"char-1", "Aria"},
		{"char-2", "Bram"},
		{"char-3", "Cole"},
	} {
		_, err := s.characters.CreateCharacter(s.ctx, "user-"+c.id, testutils.CreateTestCharacter(c.id, "", c.name))
		s.Require().NoError(err)
	}
}

func (s *ServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) build(repo guilds.Repository) {
	s.cache = cache.New(nil)
	s.charRepo = characterRepo.NewInMemoryRepository()
	guard := uniqueness.New(&uniqueness.Config{
		Cache: s.cache,
		Lookups: uniqueness.Lookups{
			Username:      noName,
			Email:         noName,
			CharacterName: s.charRepo.FindName,
			GuildName:     repo.FindName,
		},
	})
	repl := replicator.New(&replicator.Config{Cache: s.cache})

	s.characters = characters.NewService(&characters.ServiceConfig{
		Repository: s.charRepo,
		StorageService: storages.NewService(&storages.ServiceConfig{
			Repository:   storageRepo.NewInMemoryRepository(),
			Cache:        s.cache,
			Reservations: reservation.NewManager(nil),
		}),
		Cache:      s.cache,
		Guard:      guard,
		Replicator: repl,
	})
	s.service = guilds.NewService(&guilds.ServiceConfig{
		Repository:          repo,
		CharacterRepository: s.charRepo,
		RequestRepository:   s.requests,
		CharacterService:    s.characters,
		Cache:               s.cache,
		Guard:               guard,
		Replicator:          repl,
		Settings:            s.settings,
		TimeProvider:        s.clock,
	})
	s.parties = parties.NewService(&parties.ServiceConfig{
		Repository:          partyRepo.NewInMemoryRepository(),
		CharacterRepository: s.charRepo,
		CharacterService:    s.characters,
		Cache:               s.cache,
		Replicator:          repl,
	})
}

func (s *ServiceTestSuite) createGuild(name, leaderID string) *entities.Guild {
	guild, err := s.service.CreateGuild(s.ctx, &guilds.CreateGuildInput{Name: name, LeaderID: leaderID})
	s.Require().NoError(err)
	return guild
}

func (s *ServiceTestSuite) character(id string) *entities.PlayerCharacter {
	c, err := s.characters.GetCharacter(s.ctx, &characters.GetCharacterInput{CharacterID: id})
	s.Require().NoError(err)
	return c
}

// assertStoreAgrees checks the cached guild matches a fresh store read
func (s *ServiceTestSuite) assertStoreAgrees(guildID int) {
	cached, err := s.service.GetGuild(s.ctx, guildID, false)
	s.Require().NoError(err)
	fresh, err := s.service.GetGuild(s.ctx, guildID, true)
	s.Require().NoError(err)
	s.Empty(cmp.Diff(cached, fresh))
}

func (s *ServiceTestSuite) TestCreateGuild() {
	guild := s.createGuild("Wolves", "char-1")
	s.Equal(1, guild.ID)
	s.Equal(len(s.settings.GuildRoles), len(guild.Roles))

	leader, ok := guild.Member("char-1")
	s.Require().True(ok)
	s.Equal(entities.LeaderRole, leader.GuildRole)

	c := s.character("char-1")
	s.Equal(guild.ID, c.GuildID)
	s.Equal(entities.LeaderRole, c.GuildRole)

	found, err := s.service.FindGuildName(s.ctx, "wolves")
	s.Require().NoError(err)
	s.True(found)

	s.assertStoreAgrees(guild.ID)
}

func (s *ServiceTestSuite) TestCreateGuildNameTaken() {
	s.createGuild("Wolves", "char-1")

	_, err := s.service.CreateGuild(s.ctx, &guilds.CreateGuildInput{Name: "Wolves", LeaderID: "char-2"})
	s.True(dnderr.IsConflict(err))
	s.Equal(dnderr.ReasonNameInUse, dnderr.Reason(err))
}

func (s *ServiceTestSuite) TestConcurrentCreateGuild() {
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, leader := range []string{"char-1", "char-2"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.service.CreateGuild(s.ctx, &guilds.CreateGuildInput{Name: "Ravens", LeaderID: leader})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.True(dnderr.IsConflict(err), "unexpected error: %v", err)
		s.Contains([]string{dnderr.ReasonNameInUse, dnderr.ReasonNameInserting}, dnderr.Reason(err))
	}
	s.Equal(1, succeeded)
}

func (s *ServiceTestSuite) TestJoinWithRoleConverges() {
	guild := s.createGuild("Wolves", "char-1")

	_, err := s.service.UpdateCharacterGuild(s.ctx, "char-2", guild.ID, 2)
	s.Require().NoError(err)

	c := s.character("char-2")
	s.Equal(guild.ID, c.GuildID)
	s.Equal(2, c.GuildRole)

	social, err := s.characters.GetSocialCharacter(s.ctx, "char-2")
	s.Require().NoError(err)
	s.Equal(2, social.GuildRole)

	fresh, err := s.service.GetGuild(s.ctx, guild.ID, true)
	s.Require().NoError(err)
	member, ok := fresh.Member("char-2")
	s.Require().True(ok)
	s.Equal(2, member.GuildRole)

	s.assertStoreAgrees(guild.ID)
}

func (s *ServiceTestSuite) TestJoinInvalidRole() {
	guild := s.createGuild("Wolves", "char-1")

	_, err := s.service.UpdateCharacterGuild(s.ctx, "char-2", guild.ID, 42)
	s.True(dnderr.IsValidation(err))
	s.Equal(dnderr.ReasonInvalidGuildRole, dnderr.Reason(err))
	s.Zero(s.character("char-2").GuildID)
}

func (s *ServiceTestSuite) TestGuildFull() {
	guild := s.createGuild("Wolves", "char-1")
	_, err := s.service.UpdateGuildMemberCount(s.ctx, guild.ID, 1)
	s.Require().NoError(err)

	_, err = s.service.UpdateCharacterGuild(s.ctx, "char-2", guild.ID, 1)
	s.True(dnderr.IsConflict(err))
	s.Equal(dnderr.ReasonGuildFull, dnderr.Reason(err))
}

func (s *ServiceTestSuite) TestUpdateGuildLeader() {
	guild := s.createGuild("Wolves", "char-1")
	_, err := s.service.UpdateCharacterGuild(s.ctx, "char-2", guild.ID, 1)
	s.Require().NoError(err)

	updated, err := s.service.UpdateGuildLeader(s.ctx, guild.ID, "char-2")
	s.Require().NoError(err)
	s.Equal("char-2", updated.LeaderID)

	s.Equal(entities.LeaderRole, s.character("char-2").GuildRole)
	s.Equal(updated.LowestRole(), s.character("char-1").GuildRole)
	s.assertStoreAgrees(guild.ID)

	_, err = s.service.UpdateGuildLeader(s.ctx, guild.ID, "char-3")
	s.Equal(dnderr.ReasonNotGuildMember, dnderr.Reason(err))
}

func (s *ServiceTestSuite) TestUpdateGuildMemberRole() {
	guild := s.createGuild("Wolves", "char-1")
	_, err := s.service.UpdateCharacterGuild(s.ctx, "char-2", guild.ID, 1)
	s.Require().NoError(err)

	_, err = s.service.UpdateGuildMemberRole(s.ctx, guild.ID, "char-2", 3)
	s.Require().NoError(err)
	s.Equal(3, s.character("char-2").GuildRole)
	s.assertStoreAgrees(guild.ID)
}

func (s *ServiceTestSuite) TestScalarUpdates() {
	guild := s.createGuild("Wolves", "char-1")

	_, err := s.service.UpdateGuildMessage(s.ctx, guild.ID, "hello")
	s.Require().NoError(err)
	_, err = s.service.UpdateGuildMessage2(s.ctx, guild.ID, "world")
	s.Require().NoError(err)
	_, err = s.service.UpdateGuildScore(s.ctx, guild.ID, 10)
	s.Require().NoError(err)
	_, err = s.service.UpdateGuildOptions(s.ctx, guild.ID, "opt")
	s.Require().NoError(err)
	_, err = s.service.UpdateGuildAutoAcceptRequests(s.ctx, guild.ID, true)
	s.Require().NoError(err)
	_, err = s.service.UpdateGuildRank(s.ctx, guild.ID, 3)
	s.Require().NoError(err)
	_, err = s.service.UpdateGuildRole(s.ctx, guild.ID, 1, entities.GuildRole{Name: "Officer", CanInvite: true})
	s.Require().NoError(err)

	got, err := s.service.GetGuild(s.ctx, guild.ID, false)
	s.Require().NoError(err)
	s.Equal("hello", got.Message)
	s.Equal("world", got.Message2)
	s.Equal(10, got.Score)
	s.Equal("opt", got.Options)
	s.True(got.AutoAcceptRequests)
	s.Equal(3, got.Rank)
	s.Equal("Officer", got.Roles[1].Name)

	s.assertStoreAgrees(guild.ID)
}

func (s *ServiceTestSuite) TestExpAndSkills() {
	guild := s.createGuild("Wolves", "char-1")

	got, err := s.service.IncreaseGuildExp(s.ctx, guild.ID, 150)
	s.Require().NoError(err)
	s.Equal(2, got.Level)
	s.Equal(50, got.Exp)
	s.Equal(1, got.SkillPoint)

	got, err = s.service.AddGuildSkill(s.ctx, guild.ID, 7)
	s.Require().NoError(err)
	s.Equal(1, got.SkillLevel(7))
	s.Equal(0, got.SkillPoint)

	_, err = s.service.AddGuildSkill(s.ctx, guild.ID, 7)
	s.Equal(dnderr.ReasonNoSkillPoint, dnderr.Reason(err))

	s.assertStoreAgrees(guild.ID)
}

func (s *ServiceTestSuite) TestGold() {
	guild := s.createGuild("Wolves", "char-1")

	gold, err := s.service.ChangeGuildGold(s.ctx, guild.ID, 100)
	s.Require().NoError(err)
	s.Equal(100, gold)

	gold, err = s.service.GetGuildGold(s.ctx, guild.ID)
	s.Require().NoError(err)
	s.Equal(100, gold)

	s.assertStoreAgrees(guild.ID)
}

func (s *ServiceTestSuite) TestClearCharacterGuild() {
	guild := s.createGuild("Wolves", "char-1")
	_, err := s.service.UpdateCharacterGuild(s.ctx, "char-2", guild.ID, 1)
	s.Require().NoError(err)

	s.Require().NoError(s.service.ClearCharacterGuild(s.ctx, "char-2"))

	c := s.character("char-2")
	s.Zero(c.GuildID)
	s.Zero(c.GuildRole)

	got, err := s.service.GetGuild(s.ctx, guild.ID, false)
	s.Require().NoError(err)
	s.False(got.IsMember("char-2"))
	s.assertStoreAgrees(guild.ID)

	s.NoError(s.service.ClearCharacterGuild(s.ctx, "char-2"))
	s.NoError(s.service.ClearCharacterGuild(s.ctx, "nobody"))
}

func (s *ServiceTestSuite) TestDeleteGuild() {
	guild := s.createGuild("Wolves", "char-1")
	_, err := s.service.UpdateCharacterGuild(s.ctx, "char-2", guild.ID, 1)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteGuild(s.ctx, guild.ID))

	_, err = s.service.GetGuild(s.ctx, guild.ID, false)
	s.True(dnderr.IsNotFound(err))
	s.Zero(s.character("char-1").GuildID)
	s.Zero(s.character("char-2").GuildID)

	found, err := s.service.FindGuildName(s.ctx, "Wolves")
	s.Require().NoError(err)
	s.False(found)
}

func (s *ServiceTestSuite) TestSaveFailureLeavesCache() {
	mockRepo := mockguilds.NewMockRepository(s.mockCtrl)
	s.build(mockRepo)

	guild := entities.NewGuild(5, "Wolves", "char-1", s.settings.Roles())
	guild.Message = "before"
	s.cache.Guilds.Store(s.ctx, guild.ID, guild)

	mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	_, err := s.service.UpdateGuildMessage(s.ctx, guild.ID, "after")
	s.True(dnderr.IsInternal(err))

	got, err := s.service.GetGuild(s.ctx, guild.ID, false)
	s.Require().NoError(err)
	s.Equal("before", got.Message)
}

// slowRepository stretches store calls so concurrent requests overlap
type slowRepository struct {
	guilds.Repository
	delay time.Duration
}

func (r *slowRepository) Get(ctx context.Context, guildID int) (*entities.Guild, error) {
	time.Sleep(r.delay)
	return r.Repository.Get(ctx, guildID)
}

func (r *slowRepository) Save(ctx context.Context, guild *entities.Guild) error {
	time.Sleep(r.delay)
	return r.Repository.Save(ctx, guild)
}

func (s *ServiceTestSuite) TestConcurrentColdUpdatesKeepEveryField() {
	s.build(&slowRepository{Repository: guildRepo.NewInMemoryRepository(), delay: 10 * time.Millisecond})
	for _, c := range []struct{ id, name string }{{"char-1", "Aria"}} {
		_, err := s.characters.CreateCharacter(s.ctx, "user-"+c.id, testutils.CreateTestCharacter(c.id, "", c.name))
		s.Require().NoError(err)
	}
	guild := s.createGuild("Wolves", "char-1")
	s.cache.Guilds.Invalidate(s.ctx, guild.ID)

	var wg sync.WaitGroup
	errs := make([]error, 3)
	wg.Add(3)
	go func() {
		defer wg.Done()
		_, errs[0] = s.service.UpdateGuildScore(s.ctx, guild.ID, 40)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = s.service.UpdateGuildMessage(s.ctx, guild.ID, "hello")
	}()
	go func() {
		defer wg.Done()
		_, errs[2] = s.service.UpdateGuildRank(s.ctx, guild.ID, 3)
	}()
	wg.Wait()
	for _, err := range errs {
		s.Require().NoError(err)
	}

	fresh, err := s.service.GetGuild(s.ctx, guild.ID, true)
	s.Require().NoError(err)
	s.Equal(40, fresh.Score)
	s.Equal("hello", fresh.Message)
	s.Equal(3, fresh.Rank)
	s.assertStoreAgrees(guild.ID)
}

func (s *ServiceTestSuite) TestConcurrentColdReadsGetTheirOwnCopy() {
	guild := s.createGuild("Wolves", "char-1")
	s.cache.Guilds.Invalidate(s.ctx, guild.ID)

	const readers = 4
	got := make([]*entities.Guild, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g, err := s.service.GetGuild(s.ctx, guild.ID, false)
			s.NoError(err)
			got[i] = g
		}(i)
	}
	wg.Wait()

	for i := 1; i < readers; i++ {
		s.Require().NotNil(got[i])
		s.NotSame(got[0], got[i])
		s.Empty(cmp.Diff(got[0], got[i]))
	}
	got[0].Message = "scribbled"
	got[0].Members["char-1"] = entities.SocialCharacter{ID: "char-1"}
	s.Empty(got[1].Message)
	s.Equal("Aria", got[1].Members["char-1"].Name)
}

func (s *ServiceTestSuite) TestGuildRoleChangeKeepsPartyMembership() {
	guild := s.createGuild("Wolves", "char-1")
	_, err := s.service.UpdateCharacterGuild(s.ctx, "char-2", guild.ID, 2)
	s.Require().NoError(err)
	party, err := s.parties.CreateParty(s.ctx, &parties.CreatePartyInput{LeaderID: "char-2"})
	s.Require().NoError(err)

	_, err = s.service.UpdateGuildMemberRole(s.ctx, guild.ID, "char-2", 1)
	s.Require().NoError(err)

	social, err := s.characters.GetSocialCharacter(s.ctx, "char-2")
	s.Require().NoError(err)
	s.Equal(party.ID, social.PartyID)
	s.Equal(1, social.GuildRole)
	s.assertStoreAgrees(guild.ID)

	s.Require().NoError(s.parties.ClearCharacterParty(s.ctx, "char-2"))

	s.Zero(s.character("char-2").PartyID)
	fresh, err := s.parties.GetParty(s.ctx, party.ID, true)
	s.Require().NoError(err)
	s.Empty(fresh.Members)
	cached, err := s.service.GetGuild(s.ctx, guild.ID, false)
	s.Require().NoError(err)
	member, ok := cached.Member("char-2")
	s.Require().True(ok)
	s.Zero(member.PartyID)
	s.Equal(1, member.GuildRole)
	s.assertStoreAgrees(guild.ID)
}

func (s *ServiceTestSuite) TestPartyChangeKeepsGuildMembership() {
	party, err := s.parties.CreateParty(s.ctx, &parties.CreatePartyInput{LeaderID: "char-2"})
	s.Require().NoError(err)
	guild := s.createGuild("Wolves", "char-2")

	_, err = s.parties.UpdateParty(s.ctx, party.ID, false, true)
	s.Require().NoError(err)
	_, err = s.parties.UpdateCharacterParty(s.ctx, "char-3", party.ID)
	s.Require().NoError(err)

	social, err := s.characters.GetSocialCharacter(s.ctx, "char-2")
	s.Require().NoError(err)
	s.Equal(guild.ID, social.GuildID)
	s.Equal(entities.LeaderRole, social.GuildRole)

	cached, err := s.parties.GetParty(s.ctx, party.ID, false)
	s.Require().NoError(err)
	fresh, err := s.parties.GetParty(s.ctx, party.ID, true)
	s.Require().NoError(err)
	s.Empty(cmp.Diff(cached, fresh))
	leader, ok := fresh.Member("char-2")
	s.Require().True(ok)
	s.Equal(guild.ID, leader.GuildID)

	s.Require().NoError(s.service.ClearCharacterGuild(s.ctx, "char-2"))
	social, err = s.characters.GetSocialCharacter(s.ctx, "char-2")
	s.Require().NoError(err)
	s.Zero(social.GuildID)
	s.Equal(party.ID, social.PartyID)
}

func (s *ServiceTestSuite) requestAt(guildID int, requesterID string, at int64) {
	s.clock.EXPECT().Now().Return(time.Unix(at, 0))
	s.Require().NoError(s.service.CreateGuildRequest(s.ctx, guildID, requesterID))
}

func (s *ServiceTestSuite) TestGuildRequests() {
	guild := s.createGuild("Wolves", "char-1")
	s.requestAt(guild.ID, "char-3", 100)
	s.requestAt(guild.ID, "char-2", 200)
	// asking again keeps the first time
	s.requestAt(guild.ID, "char-3", 300)

	count, err := s.service.GetGuildRequestNotification(s.ctx, guild.ID)
	s.Require().NoError(err)
	s.Equal(2, count)

	list, err := s.service.GetGuildRequests(s.ctx, guild.ID, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Cole", list[0].Name)
	s.Equal("Bram", list[1].Name)

	page, err := s.service.GetGuildRequests(s.ctx, guild.ID, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("Bram", page[0].Name)

	s.Require().NoError(s.service.DeleteGuildRequest(s.ctx, guild.ID, "char-3"))
	count, err = s.service.GetGuildRequestNotification(s.ctx, guild.ID)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *ServiceTestSuite) TestGuildRequestChecksGuildAndRequester() {
	err := s.service.CreateGuildRequest(s.ctx, 404, "char-2")
	s.True(dnderr.IsNotFound(err))

	guild := s.createGuild("Wolves", "char-1")
	err = s.service.CreateGuildRequest(s.ctx, guild.ID, "char-404")
	s.True(dnderr.IsNotFound(err))

	err = s.service.CreateGuildRequest(s.ctx, guild.ID, "char-1")
	s.True(dnderr.IsConflict(err))
}

func (s *ServiceTestSuite) TestDeletedRequesterIsLeftOut() {
	guild := s.createGuild("Wolves", "char-1")
	s.requestAt(guild.ID, "char-2", 100)
	s.requestAt(guild.ID, "char-3", 200)
	s.Require().NoError(s.characters.DeleteCharacter(s.ctx, "user-char-2", "char-2"))

	list, err := s.service.GetGuildRequests(s.ctx, guild.ID, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Cole", list[0].Name)
}

func (s *ServiceTestSuite) TestDeleteGuildDropsRequests() {
	guild := s.createGuild("Wolves", "char-1")
	s.requestAt(guild.ID, "char-2", 100)

	s.Require().NoError(s.service.DeleteGuild(s.ctx, guild.ID))

	count, err := s.requests.Count(s.ctx, guild.ID)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *ServiceTestSuite) TestGuildRequestStoreFailure() {
	mockRequests := mockguildrequests.NewMockRepository(s.mockCtrl)
	s.requests = mockRequests
	s.build(guildRepo.NewInMemoryRepository())

	mockRequests.EXPECT().Count(gomock.Any(), 7).Return(0, errors.New("connection reset"))

	_, err := s.service.GetGuildRequestNotification(s.ctx, 7)
	s.True(dnderr.IsInternal(err))
}
