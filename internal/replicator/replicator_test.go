package replicator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	mockcache "github.com/KirkDiggler/mmo-db-gateway/internal/cache/mocks"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	"github.com/KirkDiggler/mmo-db-gateway/internal/replicator"
)

var roles = []entities.GuildRole{
	{Name: "Master", CanInvite: true, CanKick: true, CanUseStorage: true},
	{Name: "Officer", CanInvite: true},
	{Name: "Member"},
}

type ReplicatorTestSuite struct {
	suite.Suite
	ctx        context.Context
	cache      *cache.Cache
	replicator *replicator.Replicator
}

func (s *ReplicatorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cache = cache.New(nil)
	s.replicator = replicator.New(&replicator.Config{Cache: s.cache})
}

func TestReplicatorTestSuite(t *testing.T) {
	suite.Run(t, new(ReplicatorTestSuite))
}

func (s *ReplicatorTestSuite) seedCharacter(id, name string) *entities.PlayerCharacter {
	character := &entities.PlayerCharacter{ID: id, UserID: "user-" + id, Name: name, Level: 10}
	s.Require().NoError(s.cache.PlayerCharacters.Set(s.ctx, id, character))
	s.Require().NoError(s.cache.SocialCharacters.Set(s.ctx, id, entities.NewSocialCharacter(character)))
	return character
}

func (s *ReplicatorTestSuite) character(id string) *entities.PlayerCharacter {
	result, err := s.cache.PlayerCharacters.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Require().True(result.HasValue())
	return result.Value()
}

func (s *ReplicatorTestSuite) social(id string) entities.SocialCharacter {
	result, err := s.cache.SocialCharacters.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Require().True(result.HasValue())
	return result.Value()
}

func (s *ReplicatorTestSuite) guild(id int) *entities.Guild {
	result, err := s.cache.Guilds.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Require().True(result.HasValue())
	return result.Value()
}

func (s *ReplicatorTestSuite) party(id int) *entities.Party {
	result, err := s.cache.Parties.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Require().True(result.HasValue())
	return result.Value()
}

func (s *ReplicatorTestSuite) TestGuildRoleChangeConverges() {
	leader := s.seedCharacter("char-1", "Alice")
	member := s.seedCharacter("char-2", "Bob")

	guild := entities.NewGuild(5, "Foo", leader.ID, roles)
	s.Require().NoError(guild.AddMember(entities.NewSocialCharacter(leader), entities.LeaderRole))
	s.Require().NoError(guild.AddMember(entities.NewSocialCharacter(member), 1))
	s.replicator.SyncGuild(s.ctx, guild)

	s.Require().NoError(guild.SetMemberRole(member.ID, 2))
	s.replicator.SyncGuild(s.ctx, guild, member.ID)

	s.Equal(2, s.social(member.ID).GuildRole)
	s.Equal(5, s.social(member.ID).GuildID)
	s.Equal(2, s.character(member.ID).GuildRole)
	s.Equal(5, s.character(member.ID).GuildID)
	cached, ok := s.guild(5).Member(member.ID)
	s.Require().True(ok)
	s.Equal(2, cached.GuildRole)

	// untouched member keeps its role everywhere
	s.Equal(entities.LeaderRole, s.social(leader.ID).GuildRole)
	s.Equal(5, s.character(leader.ID).GuildID)
}

func (s *ReplicatorTestSuite) TestDetachFromGuild() {
	leader := s.seedCharacter("char-1", "Alice")
	member := s.seedCharacter("char-2", "Bob")

	guild := entities.NewGuild(5, "Foo", leader.ID, roles)
	s.Require().NoError(guild.AddMember(entities.NewSocialCharacter(leader), entities.LeaderRole))
	s.Require().NoError(guild.AddMember(entities.NewSocialCharacter(member), 2))
	s.replicator.SyncGuild(s.ctx, guild)

	guild.RemoveMember(member.ID)
	s.replicator.DetachFromGuild(s.ctx, guild, member.ID)

	s.Zero(s.social(member.ID).GuildID)
	s.Zero(s.social(member.ID).GuildRole)
	s.Zero(s.character(member.ID).GuildID)
	s.False(s.guild(5).IsMember(member.ID))
	s.True(s.guild(5).IsMember(leader.ID))
}

func (s *ReplicatorTestSuite) TestForgetGuild() {
	leader := s.seedCharacter("char-1", "Alice")
	guild := entities.NewGuild(5, "Foo", leader.ID, roles)
	s.Require().NoError(guild.AddMember(entities.NewSocialCharacter(leader), entities.LeaderRole))
	s.replicator.SyncGuild(s.ctx, guild)

	s.replicator.ForgetGuild(s.ctx, guild)

	result, err := s.cache.Guilds.Get(s.ctx, 5)
	s.Require().NoError(err)
	s.False(result.HasValue())
	s.Zero(s.character(leader.ID).GuildID)
	s.Zero(s.social(leader.ID).GuildID)
}

func (s *ReplicatorTestSuite) TestPartyJoinAndLeave() {
	leader := s.seedCharacter("char-1", "Alice")
	member := s.seedCharacter("char-2", "Bob")

	party := entities.NewParty(9, true, true, leader.ID)
	party.AddMember(entities.NewSocialCharacter(leader))
	s.replicator.SyncParty(s.ctx, party)

	party.AddMember(entities.NewSocialCharacter(member))
	s.replicator.SyncParty(s.ctx, party, member.ID)

	s.Equal(9, s.character(member.ID).PartyID)
	s.Equal(9, s.social(member.ID).PartyID)
	s.Equal([]string{leader.ID, member.ID}, s.party(9).MemberIDs())

	party.RemoveMember(member.ID)
	s.replicator.DetachFromParty(s.ctx, party, member.ID)

	s.Zero(s.character(member.ID).PartyID)
	s.Zero(s.social(member.ID).PartyID)
	s.Equal([]string{leader.ID}, s.party(9).MemberIDs())
	s.Equal(9, s.character(leader.ID).PartyID)
}

func (s *ReplicatorTestSuite) TestForgetParty() {
	leader := s.seedCharacter("char-1", "Alice")
	party := entities.NewParty(9, false, false, leader.ID)
	party.AddMember(entities.NewSocialCharacter(leader))
	s.replicator.SyncParty(s.ctx, party)

	s.replicator.ForgetParty(s.ctx, party)

	result, err := s.cache.Parties.Get(s.ctx, 9)
	s.Require().NoError(err)
	s.False(result.HasValue())
	s.Zero(s.character(leader.ID).PartyID)
	s.Zero(s.social(leader.ID).PartyID)
}

func (s *ReplicatorTestSuite) TestUncachedCharacterIsNotSeeded() {
	party := entities.NewParty(9, false, false, "char-1")
	party.AddMember(entities.SocialCharacter{ID: "char-1", Name: "Alice"})
	s.replicator.SyncParty(s.ctx, party)

	result, err := s.cache.PlayerCharacters.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.False(result.HasValue())
	s.Equal(9, s.social("char-1").PartyID)
}

func (s *ReplicatorTestSuite) TestSyncCharacterRefreshesEmbeddedCopies() {
	character := s.seedCharacter("char-1", "Alice")
	party := entities.NewParty(9, false, false, character.ID)
	party.AddMember(entities.NewSocialCharacter(character))
	guild := entities.NewGuild(5, "Foo", character.ID, roles)
	s.Require().NoError(guild.AddMember(entities.NewSocialCharacter(character), entities.LeaderRole))
	s.replicator.SyncParty(s.ctx, party)
	s.replicator.SyncGuild(s.ctx, guild)

	character.PartyID = 9
	character.GuildID = 5
	character.Level = 11
	s.replicator.SyncCharacter(s.ctx, character)

	s.Equal(11, s.character(character.ID).Level)
	s.Equal(11, s.social(character.ID).Level)
	inParty, _ := s.party(9).Member(character.ID)
	s.Equal(11, inParty.Level)
	inGuild, _ := s.guild(5).Member(character.ID)
	s.Equal(11, inGuild.Level)
	s.Equal(entities.LeaderRole, inGuild.GuildRole)
}

func (s *ReplicatorTestSuite) TestForgetCharacter() {
	s.seedCharacter("char-1", "Alice")

	s.replicator.ForgetCharacter(s.ctx, "char-1")

	pc, err := s.cache.PlayerCharacters.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.False(pc.HasValue())
	social, err := s.cache.SocialCharacters.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.False(social.HasValue())
}

func (s *ReplicatorTestSuite) TestBackendFailuresAreSwallowed() {
	ctrl := gomock.NewController(s.T())
	backend := mockcache.NewMockBackend(ctrl)
	failing := replicator.New(&replicator.Config{Cache: cache.New(&cache.Config{Backend: backend})})
	down := errors.New("cache down")

	backend.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, down).AnyTimes()
	backend.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(down).AnyTimes()
	backend.EXPECT().SetMany(gomock.Any(), gomock.Any()).Return(down).AnyTimes()
	backend.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(down).AnyTimes()

	guild := entities.NewGuild(5, "Foo", "char-1", roles)
	s.Require().NoError(guild.AddMember(entities.SocialCharacter{ID: "char-1"}, entities.LeaderRole))

	s.NotPanics(func() {
		failing.SyncGuild(s.ctx, guild)
		failing.DetachFromGuild(s.ctx, guild, "char-1")
		failing.ForgetGuild(s.ctx, guild)
		failing.ForgetCharacter(s.ctx, "char-1")
	})
}

func (s *ReplicatorTestSuite) TestGuildRoleChangeKeepsPartyMembership() {
	leader := s.seedCharacter("char-1", "Alice")
	member := s.seedCharacter("char-2", "Bob")

	guild := entities.NewGuild(5, "Foo", leader.ID, roles)
	s.Require().NoError(guild.AddMember(entities.NewSocialCharacter(leader), entities.LeaderRole))
	s.Require().NoError(guild.AddMember(entities.NewSocialCharacter(member), 2))
	s.replicator.SyncGuild(s.ctx, guild)

	party := entities.NewParty(9, false, false, member.ID)
	party.AddMember(s.social(member.ID))
	s.replicator.SyncParty(s.ctx, party)

	// the guild still holds the copy taken before the party existed
	guild = s.guild(5)
	s.Require().NoError(guild.SetMemberRole(member.ID, 1))
	s.replicator.SyncGuild(s.ctx, guild, member.ID)

	s.Equal(9, s.social(member.ID).PartyID)
	s.Equal(9, s.character(member.ID).PartyID)
	s.Equal(1, s.social(member.ID).GuildRole)
	s.Equal(1, s.character(member.ID).GuildRole)

	inParty, ok := s.party(9).Member(member.ID)
	s.Require().True(ok)
	s.Equal(5, inParty.GuildID)
	s.Equal(1, inParty.GuildRole)
	s.Equal(9, inParty.PartyID)
}

func (s *ReplicatorTestSuite) TestPartyChangeKeepsGuildMembership() {
	member := s.seedCharacter("char-2", "Bob")

	party := entities.NewParty(9, false, false, member.ID)
	party.AddMember(entities.NewSocialCharacter(member))
	s.replicator.SyncParty(s.ctx, party)

	guild := entities.NewGuild(5, "Foo", member.ID, roles)
	s.Require().NoError(guild.AddMember(s.social(member.ID), entities.LeaderRole))
	s.replicator.SyncGuild(s.ctx, guild)

	inGuild, _ := s.guild(5).Member(member.ID)
	s.Equal(9, inGuild.PartyID)
	inParty, _ := s.party(9).Member(member.ID)
	s.Equal(5, inParty.GuildID)

	// the party still holds the copy taken before the guild existed
	party = s.party(9)
	party.Setting(true, true)
	s.replicator.SyncParty(s.ctx, party)

	s.Equal(5, s.social(member.ID).GuildID)
	s.Equal(entities.LeaderRole, s.social(member.ID).GuildRole)
	s.Equal(5, s.character(member.ID).GuildID)
	s.Equal(9, s.social(member.ID).PartyID)
}

func (s *ReplicatorTestSuite) TestLeavingPartyClearsGuildCopy() {
	member := s.seedCharacter("char-2", "Bob")

	guild := entities.NewGuild(5, "Foo", member.ID, roles)
	s.Require().NoError(guild.AddMember(entities.NewSocialCharacter(member), entities.LeaderRole))
	s.replicator.SyncGuild(s.ctx, guild)

	party := entities.NewParty(9, false, false, member.ID)
	party.AddMember(s.social(member.ID))
	s.replicator.SyncParty(s.ctx, party)
	inGuild, _ := s.guild(5).Member(member.ID)
	s.Require().Equal(9, inGuild.PartyID)

	party.RemoveMember(member.ID)
	s.replicator.DetachFromParty(s.ctx, party, member.ID)

	inGuild, ok := s.guild(5).Member(member.ID)
	s.Require().True(ok)
	s.Zero(inGuild.PartyID)
	s.Equal(5, inGuild.GuildID)
	s.Zero(s.social(member.ID).PartyID)
	s.Equal(5, s.social(member.ID).GuildID)
}

func (s *ReplicatorTestSuite) TestLeavingGuildClearsPartyCopy() {
	member := s.seedCharacter("char-2", "Bob")

	party := entities.NewParty(9, false, false, member.ID)
	party.AddMember(entities.NewSocialCharacter(member))
	s.replicator.SyncParty(s.ctx, party)

	guild := entities.NewGuild(5, "Foo", member.ID, roles)
	s.Require().NoError(guild.AddMember(s.social(member.ID), entities.LeaderRole))
	s.replicator.SyncGuild(s.ctx, guild)

	guild.RemoveMember(member.ID)
	s.replicator.DetachFromGuild(s.ctx, guild, member.ID)

	inParty, ok := s.party(9).Member(member.ID)
	s.Require().True(ok)
	s.Zero(inParty.GuildID)
	s.Equal(9, inParty.PartyID)
	s.Equal(9, s.character(member.ID).PartyID)
}
