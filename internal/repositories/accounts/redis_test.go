package accounts

import (
	"context"
	"encoding/json"
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

func (s *RedisRepoTestSuite) testAccount() *entities.UserAccount {
	return &entities.UserAccount{
		ID:           "user-1",
		Username:     "Alice",
		PasswordHash: "hash",
		Email:        "alice@example.com",
		Gold:         10,
	}
}

func (s *RedisRepoTestSuite) TestCreate() {
	account := s.testAccount()
	data, err := json.Marshal(toAccountData(account))
	s.Require().NoError(err)

	s.mock.ExpectSetNX("account:username:alice", "user-1", 0).SetVal(true)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("account:user-1", data, 0).SetVal("OK")
	s.mock.ExpectHSet("account:user-1:wallet", fieldGold, 10, fieldCash, 0).SetVal(2)
	s.mock.ExpectSet("account:email:alice@example.com", "user-1", 0).SetVal("OK")
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Create(s.ctx, account))
}

func (s *RedisRepoTestSuite) TestCreateUsernameTaken() {
	s.mock.ExpectSetNX("account:username:alice", "user-1", 0).SetVal(false)

	err := s.repo.Create(s.ctx, s.testAccount())
	s.True(dnderr.Is(err, dnderr.CodeAlreadyExists))
}

func (s *RedisRepoTestSuite) TestGetReadsWallet() {
	data, err := json.Marshal(toAccountData(s.testAccount()))
	s.Require().NoError(err)

	s.mock.ExpectGet("account:user-1").SetVal(string(data))
	s.mock.ExpectHGet("account:user-1:wallet", fieldGold).SetVal("150")
	s.mock.ExpectHGet("account:user-1:wallet", fieldCash).RedisNil()

	account, err := s.repo.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("Alice", account.Username)
	s.Equal(150, account.Gold)
	s.Zero(account.Cash)
}

func (s *RedisRepoTestSuite) TestGetByUsernameUnknown() {
	s.mock.ExpectGet("account:username:bob").RedisNil()

	_, err := s.repo.GetByUsername(s.ctx, "Bob")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestFindEmailIgnoresCase() {
	s.mock.ExpectExists("account:email:alice@example.com").SetVal(1)

	found, err := s.repo.FindEmail(s.ctx, "Alice@Example.com")
	s.Require().NoError(err)
	s.True(found)
}

func (s *RedisRepoTestSuite) TestChangeCash() {
	s.mock.ExpectExists("account:user-1").SetVal(1)
	s.mock.ExpectHIncrBy("account:user-1:wallet", fieldCash, -5).SetVal(20)

	cash, err := s.repo.ChangeCash(s.ctx, "user-1", -5)
	s.Require().NoError(err)
	s.Equal(20, cash)
}

func (s *RedisRepoTestSuite) TestChangeGoldUnknownUser() {
	s.mock.ExpectExists("account:user-1").SetVal(0)

	_, err := s.repo.ChangeGold(s.ctx, "user-1", 5)
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestSetUnbanTime() {
	before, err := json.Marshal(toAccountData(s.testAccount()))
	s.Require().NoError(err)
	banned := toAccountData(s.testAccount())
	banned.UnbanTime = 1700000000
	after, err := json.Marshal(banned)
	s.Require().NoError(err)

	s.mock.ExpectGet("account:user-1").SetVal(string(before))
	s.mock.ExpectSet("account:user-1", after, 0).SetVal("OK")

	s.NoError(s.repo.SetUnbanTime(s.ctx, "user-1", 1700000000))
}
