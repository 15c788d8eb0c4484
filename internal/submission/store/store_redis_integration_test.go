//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"intake/internal/submission/store"
	"intake/pkg/platform/sentinel"
	"intake/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedisStore(s.redis.Client, "")
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestEmptyBeforeAppend() {
	subs, err := s.store.ReadAll(context.Background())
	s.Require().NoError(err)
	s.NotNil(subs)
	s.Empty(subs)
}

func (s *RedisStoreSuite) TestRoundTripPreservesOrder() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.store.Append(ctx, sampleSubmission(i)))
	}

	subs, err := s.store.ReadAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(subs, 5)
	for i, sub := range subs {
		s.Equal(sampleSubmission(i), sub)
	}

	n, err := s.redis.Client.LLen(ctx, store.DefaultRedisKey).Result()
	s.Require().NoError(err)
	s.EqualValues(5, n)
}

func (s *RedisStoreSuite) TestCorruptEntryIsInvalidState() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.RPush(ctx, store.DefaultRedisKey, "{broken").Err())

	_, err := s.store.ReadAll(ctx)
	s.ErrorIs(err, sentinel.ErrInvalidState)
}
