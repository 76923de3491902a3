package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/lucasmr/learnpulse/internal/errors"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/services"
	"github.com/lucasmr/learnpulse/internal/testutil/mocks"
)

func TestRecordAttempt_Validation(t *testing.T) {
	tests := []struct {
		name    string
		attempt models.Attempt
	}{
		{"missing user id", models.Attempt{ActivityID: "a-1"}},
		{"missing activity id", models.Attempt{UserID: "user-1"}},
		{"negative time spent", models.Attempt{UserID: "user-1", ActivityID: "a-1", TimeSpentMs: -1}},
		{"score above one", models.Attempt{UserID: "user-1", ActivityID: "a-1", Score: ptr(1.5)}},
		{"malformed attempt uid", models.Attempt{UserID: "user-1", ActivityID: "a-1", AttemptUID: "not-a-uuid"}},
	}

	svc := services.NewAttemptService(new(mocks.MockAttemptRepository), new(mocks.MockJobQueue))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordAttempt(context.Background(), tt.attempt)

			require.Error(t, err)
			appErr, ok := err.(*apperrors.AppError)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestRecordAttempt_InsertsAndTriggersRecompute(t *testing.T) {
	ctx := context.Background()

	attemptRepo := new(mocks.MockAttemptRepository)
	attemptRepo.On("NextAttemptNumber", ctx, "user-1", "loops-1").Return(3, nil)
	attemptRepo.On("Insert", ctx, mock.MatchedBy(func(a models.Attempt) bool {
		return a.UserID == "user-1" && a.AttemptNumber == 3 && a.AttemptUID != "" && !a.CreatedAt.IsZero()
	})).Return(int64(42), nil)

	jobQueue := new(mocks.MockJobQueue)
	jobQueue.On("EnqueueRecompute", "user-1").Return(nil)

	svc := services.NewAttemptService(attemptRepo, jobQueue)

	attempt, err := svc.RecordAttempt(ctx, models.Attempt{
		UserID:       "user-1",
		ActivityID:   "loops-1",
		ActivityType: "quiz",
		Correct:      true,
		TimeSpentMs:  30000,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), attempt.ID)
	assert.Equal(t, 3, attempt.AttemptNumber)
	attemptRepo.AssertExpectations(t)
	jobQueue.AssertExpectations(t)
}

func TestRecordAttempt_IdempotentOnKnownUID(t *testing.T) {
	ctx := context.Background()
	uid := uuid.NewString()

	existing := &models.Attempt{
		ID:            7,
		AttemptUID:    uid,
		UserID:        "user-1",
		ActivityID:    "loops-1",
		AttemptNumber: 1,
		CreatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	attemptRepo := new(mocks.MockAttemptRepository)
	attemptRepo.On("GetByUID", ctx, uid).Return(existing, nil)

	jobQueue := new(mocks.MockJobQueue)

	svc := services.NewAttemptService(attemptRepo, jobQueue)

	attempt, err := svc.RecordAttempt(ctx, models.Attempt{
		UserID:     "user-1",
		ActivityID: "loops-1",
		AttemptUID: uid,
	})

	require.NoError(t, err)
	assert.Equal(t, existing, attempt)
	attemptRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	jobQueue.AssertNotCalled(t, "EnqueueRecompute", mock.Anything)
}

func TestRecordAttempt_UnknownUIDIsInserted(t *testing.T) {
	ctx := context.Background()
	uid := uuid.NewString()

	attemptRepo := new(mocks.MockAttemptRepository)
	attemptRepo.On("GetByUID", ctx, uid).Return(nil, sql.ErrNoRows)
	attemptRepo.On("Insert", ctx, mock.Anything).Return(int64(1), nil)

	jobQueue := new(mocks.MockJobQueue)
	jobQueue.On("EnqueueRecompute", "user-1").Return(nil)

	svc := services.NewAttemptService(attemptRepo, jobQueue)

	_, err := svc.RecordAttempt(ctx, models.Attempt{
		UserID:        "user-1",
		ActivityID:    "loops-1",
		AttemptUID:    uid,
		AttemptNumber: 1,
	})

	require.NoError(t, err)
	attemptRepo.AssertExpectations(t)
}

func TestRecordAttempt_WrappedNoRowsIsInserted(t *testing.T) {
	ctx := context.Background()
	uid := uuid.NewString()

	attemptRepo := new(mocks.MockAttemptRepository)
	attemptRepo.On("GetByUID", ctx, uid).Return(nil, fmt.Errorf("get attempt: %w", sql.ErrNoRows))
	attemptRepo.On("Insert", ctx, mock.Anything).Return(int64(1), nil)

	jobQueue := new(mocks.MockJobQueue)
	jobQueue.On("EnqueueRecompute", "user-1").Return(nil)

	svc := services.NewAttemptService(attemptRepo, jobQueue)

	_, err := svc.RecordAttempt(ctx, models.Attempt{
		UserID:        "user-1",
		ActivityID:    "loops-1",
		AttemptUID:    uid,
		AttemptNumber: 1,
	})

	require.NoError(t, err)
	attemptRepo.AssertExpectations(t)
}

func TestRecordAttempt_EnqueueFailureDoesNotFailIngestion(t *testing.T) {
	ctx := context.Background()

	attemptRepo := new(mocks.MockAttemptRepository)
	attemptRepo.On("Insert", ctx, mock.Anything).Return(int64(1), nil)

	jobQueue := new(mocks.MockJobQueue)
	jobQueue.On("EnqueueRecompute", "user-1").Return(assert.AnError)

	svc := services.NewAttemptService(attemptRepo, jobQueue)

	_, err := svc.RecordAttempt(ctx, models.Attempt{
		UserID:        "user-1",
		ActivityID:    "loops-1",
		AttemptNumber: 1,
	})

	require.NoError(t, err)
}

func TestRecordAttempt_KeepsExplicitAttemptNumber(t *testing.T) {
	ctx := context.Background()

	attemptRepo := new(mocks.MockAttemptRepository)
	attemptRepo.On("Insert", ctx, mock.MatchedBy(func(a models.Attempt) bool {
		return a.AttemptNumber == 5
	})).Return(int64(1), nil)

	jobQueue := new(mocks.MockJobQueue)
	jobQueue.On("EnqueueRecompute", "user-1").Return(nil)

	svc := services.NewAttemptService(attemptRepo, jobQueue)

	_, err := svc.RecordAttempt(ctx, models.Attempt{
		UserID:        "user-1",
		ActivityID:    "loops-1",
		AttemptNumber: 5,
	})

	require.NoError(t, err)
	attemptRepo.AssertNotCalled(t, "NextAttemptNumber", mock.Anything, mock.Anything, mock.Anything)
}
