package characters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mock redismock.ClientMock
	repo Repository
	ctx  context.Context
}

func (s *RedisRepoTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.repo = NewRedis(client)
	s.ctx = context.Background()
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) testCharacter() *entities.PlayerCharacter {
	return &entities.PlayerCharacter{
		ID:     "char-1",
		UserID: "user-1",
		Name:   "Alice",
		Level:  5,
	}
}

func (s *RedisRepoTestSuite) TestCreate() {
	character := s.testCharacter()
	data, err := json.Marshal(character)
	s.Require().NoError(err)

	s.mock.ExpectExists("character:char-1").SetVal(0)
	s.mock.ExpectSetNX("character:name:alice", "char-1", 0).SetVal(true)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:char-1", data, 0).SetVal("OK")
	s.mock.ExpectRPush("user:user-1:characters", "char-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Create(s.ctx, character))
}

func (s *RedisRepoTestSuite) TestCreateNameTaken() {
	s.mock.ExpectExists("character:char-1").SetVal(0)
	s.mock.ExpectSetNX("character:name:alice", "char-1", 0).SetVal(false)

	err := s.repo.Create(s.ctx, s.testCharacter())
	s.True(dnderr.Is(err, dnderr.CodeAlreadyExists))
}

func (s *RedisRepoTestSuite) TestGet() {
	character := s.testCharacter()
	data, err := json.Marshal(character)
	s.Require().NoError(err)

	s.mock.ExpectGet("character:char-1").SetVal(string(data))

	loaded, err := s.repo.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Equal(character, loaded)
}

func (s *RedisRepoTestSuite) TestGetNotFound() {
	s.mock.ExpectGet("character:char-1").RedisNil()

	_, err := s.repo.Get(s.ctx, "char-1")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGetError() {
	s.mock.ExpectGet("character:char-1").SetErr(errors.New("connection refused"))

	_, err := s.repo.Get(s.ctx, "char-1")
	s.Error(err)
	s.False(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestUpdateGuildMovesIndex() {
	character := s.testCharacter()
	character.GuildID = 2
	character.GuildRole = 1
	before, err := json.Marshal(character)
	s.Require().NoError(err)

	moved := character.Clone()
	moved.GuildID = 3
	moved.GuildRole = 4
	after, err := json.Marshal(moved)
	s.Require().NoError(err)

	s.mock.ExpectGet("character:char-1").SetVal(string(before))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:char-1", after, 0).SetVal("OK")
	s.mock.ExpectSRem("guild:2:members", "char-1").SetVal(1)
	s.mock.ExpectSAdd("guild:3:members", "char-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.UpdateGuild(s.ctx, "char-1", 3, 4))
}

func (s *RedisRepoTestSuite) TestUpdateUnmuteTime() {
	character := s.testCharacter()
	before, err := json.Marshal(character)
	s.Require().NoError(err)
	muted := character.Clone()
	muted.UnmuteTime = 1700000600
	after, err := json.Marshal(muted)
	s.Require().NoError(err)

	s.mock.ExpectGet("character:char-1").SetVal(string(before))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:char-1", after, 0).SetVal("OK")
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.UpdateUnmuteTime(s.ctx, "char-1", 1700000600))
}

func (s *RedisRepoTestSuite) TestListByPartyKeepsJoinOrder() {
	second := s.testCharacter()
	second.ID, second.Name, second.PartyID = "char-2", "Bob", 8
	first := s.testCharacter()
	first.PartyID = 8
	firstData, err := json.Marshal(first)
	s.Require().NoError(err)
	secondData, err := json.Marshal(second)
	s.Require().NoError(err)

	s.mock.ExpectLRange("party:8:members", 0, -1).SetVal([]string{"char-2", "gone", "char-1"})
	s.mock.ExpectGet("character:char-2").SetVal(string(secondData))
	s.mock.ExpectGet("character:gone").RedisNil()
	s.mock.ExpectGet("character:char-1").SetVal(string(firstData))

	members, err := s.repo.ListByParty(s.ctx, 8)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
	s.Equal("char-2", members[0].ID)
	s.Equal("char-1", members[1].ID)
}
