package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/lucasmr/learnpulse/internal/models"
)

// MockAchievementRepository is a mock implementation of repository.AchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) ListForUser(ctx context.Context, userID string) ([]models.Achievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) InsertIfNew(ctx context.Context, userID, code string, earnedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, code, earnedAt)
	return args.Bool(0), args.Error(1)
}
