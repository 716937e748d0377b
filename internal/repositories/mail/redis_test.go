package mail

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
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

func (s *RedisRepoTestSuite) encode(m *entities.Mail) []byte {
	data, err := json.Marshal(m)
	s.Require().NoError(err)
	return data
}

func (s *RedisRepoTestSuite) TestCreate() {
	mail := &entities.Mail{ReceiverID: "user-1", Title: "Reward", Gold: 100, SentTime: 1700000000}
	stored := *mail
	stored.ID = 5

	s.mock.ExpectIncr(nextIDKey).SetVal(5)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("mail:5", s.encode(&stored), 0).SetVal("OK")
	s.mock.ExpectZAdd("user:user-1:mails", redis.Z{Score: 5, Member: "5"}).SetVal(1)
	s.mock.ExpectTxPipelineExec()

	id, err := s.repo.Create(s.ctx, mail)
	s.Require().NoError(err)
	s.Equal(int64(5), id)
}

func (s *RedisRepoTestSuite) TestCreateNeedsReceiver() {
	_, err := s.repo.Create(s.ctx, &entities.Mail{Title: "nobody"})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestCreateIDFailure() {
	s.mock.ExpectIncr(nextIDKey).SetErr(errors.New("connection refused"))

	_, err := s.repo.Create(s.ctx, &entities.Mail{ReceiverID: "user-1"})
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestGet() {
	s.mock.ExpectGet("mail:5").SetVal(string(s.encode(&entities.Mail{ID: 5, ReceiverID: "user-1", Title: "Reward"})))

	mail, err := s.repo.Get(s.ctx, 5)
	s.Require().NoError(err)
	s.Equal("Reward", mail.Title)
	s.Equal("user-1", mail.ReceiverID)
}

func (s *RedisRepoTestSuite) TestGetNotFound() {
	s.mock.ExpectGet("mail:5").RedisNil()

	_, err := s.repo.Get(s.ctx, 5)
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestListSkipsMissingAndFiltersRead() {
	read := &entities.Mail{ID: 6, ReceiverID: "user-1", IsRead: true}
	unread := &entities.Mail{ID: 4, ReceiverID: "user-1"}

	s.mock.ExpectZRevRange("user:user-1:mails", 0, -1).SetVal([]string{"6", "5", "4"})
	s.mock.ExpectGet("mail:6").SetVal(string(s.encode(read)))
	s.mock.ExpectGet("mail:5").RedisNil()
	s.mock.ExpectGet("mail:4").SetVal(string(s.encode(unread)))

	list, err := s.repo.List(s.ctx, "user-1", true)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(int64(4), list[0].ID)
}

func (s *RedisRepoTestSuite) TestCountUnread() {
	s.mock.ExpectZRevRange("user:user-1:mails", 0, -1).SetVal([]string{"2", "1"})
	s.mock.ExpectGet("mail:2").SetVal(string(s.encode(&entities.Mail{ID: 2, ReceiverID: "user-1"})))
	s.mock.ExpectGet("mail:1").SetVal(string(s.encode(&entities.Mail{ID: 1, ReceiverID: "user-1", IsDelete: true})))

	count, err := s.repo.CountUnread(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(1, count)
}
