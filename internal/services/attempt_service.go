package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/lucasmr/learnpulse/internal/errors"
	"github.com/lucasmr/learnpulse/internal/jobs"
	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/repository"
)

// AttemptService handles attempt ingestion and queries
type AttemptService interface {
	// RecordAttempt stores an attempt and triggers a debounced analytics
	// recompute. Ingestion is idempotent on the attempt UID: replaying a
	// known UID returns the stored attempt without a second write.
	RecordAttempt(ctx context.Context, attempt models.Attempt) (*models.Attempt, error)
	ListAttempts(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, int, error)
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
	jobQueue    jobs.JobQueue
	clock       func() time.Time
}

// NewAttemptService creates a new AttemptService
func NewAttemptService(attemptRepo repository.AttemptRepository, jobQueue jobs.JobQueue) AttemptService {
	return &attemptService{
		attemptRepo: attemptRepo,
		jobQueue:    jobQueue,
		clock:       time.Now,
	}
}

func (s *attemptService) RecordAttempt(ctx context.Context, attempt models.Attempt) (*models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording attempt: user_id=%s, activity_id=%s", attempt.UserID, attempt.ActivityID)

	if attempt.UserID == "" {
		return nil, errors.NewValidationError("user_id", "must not be empty")
	}
	if attempt.ActivityID == "" {
		return nil, errors.NewValidationError("activity_id", "must not be empty")
	}
	if attempt.TimeSpentMs < 0 {
		return nil, errors.NewValidationError("time_spent_ms", "must not be negative")
	}
	if attempt.Score != nil && (*attempt.Score < 0 || *attempt.Score > 1) {
		return nil, errors.NewValidationError("score", "must be between 0 and 1")
	}

	if attempt.AttemptUID == "" {
		attempt.AttemptUID = uuid.NewString()
	} else {
		if _, err := uuid.Parse(attempt.AttemptUID); err != nil {
			return nil, errors.NewValidationError("attempt_uid", "must be a valid UUID")
		}
		existing, err := s.attemptRepo.GetByUID(ctx, attempt.AttemptUID)
		if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
			log.Error("failed to check attempt uid: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if existing != nil {
			log.Debug("attempt already recorded: attempt_uid=%s", attempt.AttemptUID)
			return existing, nil
		}
	}

	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = s.clock().UTC()
	}
	if attempt.AttemptNumber == 0 {
		next, err := s.attemptRepo.NextAttemptNumber(ctx, attempt.UserID, attempt.ActivityID)
		if err != nil {
			log.Error("failed to resolve attempt number: %v", err)
			return nil, errors.NewInternalError(err)
		}
		attempt.AttemptNumber = next
	}

	id, err := s.attemptRepo.Insert(ctx, attempt)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	attempt.ID = id

	// Analytics is downstream of ingestion: a failed enqueue must never
	// fail the write that triggered it.
	if err := s.jobQueue.EnqueueRecompute(attempt.UserID); err != nil {
		log.Warn("failed to enqueue analytics recompute: %v", err)
	}

	return &attempt, nil
}

func (s *attemptService) ListAttempts(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing attempts: user_id=%s", filter.UserID)

	attempts, err := s.attemptRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.attemptRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count attempts: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return attempts, totalCount, nil
}
