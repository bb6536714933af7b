//go:build integration

package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"amparo/pkg/testutil/containers"
)

type RedisListSuite struct {
	suite.Suite
	redis *containers.Redis
	list  *RedisList
	ctx   context.Context
}

func TestRedisListSuite(t *testing.T) {
	suite.Run(t, new(RedisListSuite))
}

func (s *RedisListSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.list = NewRedisList(s.redis.Client)
	s.ctx = context.Background()
}

func (s *RedisListSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisListSuite) TestRevokeAndCheck() {
	revoked, err := s.list.IsTokenRevoked(s.ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.list.Revoke(s.ctx, "jti-1", time.Minute))
	revoked, err = s.list.IsTokenRevoked(s.ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	ttl, err := s.redis.Client.TTL(s.ctx, keyPrefix+"jti-1").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *RedisListSuite) TestEntriesExpireWithTheToken() {
	s.Require().NoError(s.list.Revoke(s.ctx, "short", 100*time.Millisecond))
	s.Eventually(func() bool {
		revoked, err := s.list.IsTokenRevoked(s.ctx, "short")
		return err == nil && !revoked
	}, 5*time.Second, 50*time.Millisecond)
}
