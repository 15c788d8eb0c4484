//go:build integration

package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"intake/internal/submission"
	"intake/internal/submission/store"
	"intake/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	st, err := store.NewPostgresStore(context.Background(), s.postgres.DB)
	s.Require().NoError(err)
	s.store = st
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "submissions"))
}

func sampleSubmission(i int) submission.Submission {
	return submission.New(submission.PersonalData{
		Name:   fmt.Sprintf("User %d", i),
		Email:  fmt.Sprintf("user%d@example.com", i),
		Age:    18 + i,
		Gender: submission.GenderFemale,
	}, time.Date(2026, 3, 1, 12, 0, i, 0, time.UTC))
}

func (s *PostgresStoreSuite) TestEmptyBeforeAppend() {
	subs, err := s.store.ReadAll(context.Background())
	s.Require().NoError(err)
	s.NotNil(subs)
	s.Empty(subs)
}

func (s *PostgresStoreSuite) TestRoundTripPreservesOrder() {
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
}

func (s *PostgresStoreSuite) TestMigrationIsRepeatable() {
	_, err := store.NewPostgresStore(context.Background(), s.postgres.DB)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestConcurrentAppends() {
	ctx := context.Background()
	const writers = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s.NoError(s.store.Append(ctx, sampleSubmission(idx)))
		}(i)
	}
	wg.Wait()

	subs, err := s.store.ReadAll(ctx)
	s.Require().NoError(err)
	s.Len(subs, writers)
}
