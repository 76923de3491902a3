package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/lucasmr/learnpulse/internal/models"
)

// MockLearnerRepository is a mock implementation of repository.LearnerRepository
type MockLearnerRepository struct {
	mock.Mock
}

func (m *MockLearnerRepository) Get(ctx context.Context, userID string) (*models.Learner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) Insert(ctx context.Context, learner models.Learner) error {
	args := m.Called(ctx, learner)
	return args.Error(0)
}
