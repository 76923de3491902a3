package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/lucasmr/learnpulse/internal/repository"
	"github.com/lucasmr/learnpulse/internal/repository/sqlite"
	"github.com/lucasmr/learnpulse/internal/testutil"
)

type AchievementRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.AchievementRepository
}

func (s *AchievementRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAchievementRepository(s.db)
}

func (s *AchievementRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *AchievementRepositorySuite) TestInsertIfNew() {
	ctx := context.Background()
	earnedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	inserted, err := s.repo.InsertIfNew(ctx, "user-1", "first-steps", earnedAt)
	s.Require().NoError(err)
	s.Assert().True(inserted)

	// Same code again is a no-op.
	inserted, err = s.repo.InsertIfNew(ctx, "user-1", "first-steps", earnedAt.Add(time.Hour))
	s.Require().NoError(err)
	s.Assert().False(inserted)

	// Same code for another user is independent.
	inserted, err = s.repo.InsertIfNew(ctx, "user-2", "first-steps", earnedAt)
	s.Require().NoError(err)
	s.Assert().True(inserted)
}

func (s *AchievementRepositorySuite) TestListForUser() {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.repo.InsertIfNew(ctx, "user-1", "week-streak", base.Add(time.Hour))
	s.Require().NoError(err)
	_, err = s.repo.InsertIfNew(ctx, "user-1", "first-steps", base)
	s.Require().NoError(err)
	_, err = s.repo.InsertIfNew(ctx, "user-2", "first-steps", base)
	s.Require().NoError(err)

	achievements, err := s.repo.ListForUser(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(achievements, 2)
	// ordered by earned_at ascending
	s.Assert().Equal("first-steps", achievements[0].Code)
	s.Assert().Equal("week-streak", achievements[1].Code)
}

func (s *AchievementRepositorySuite) TestListForUser_Empty() {
	achievements, err := s.repo.ListForUser(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Assert().Empty(achievements)
}

func TestAchievementRepositorySuite(t *testing.T) {
	suite.Run(t, new(AchievementRepositorySuite))
}
