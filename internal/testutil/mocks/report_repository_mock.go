package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/lucasmr/learnpulse/internal/models"
)

// MockReportRepository is a mock implementation of repository.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Get(ctx context.Context, userID string) (*models.AnalyticsReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsReport), args.Error(1)
}

func (m *MockReportRepository) Upsert(ctx context.Context, report models.AnalyticsReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
