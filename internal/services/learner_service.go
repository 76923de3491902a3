package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/lucasmr/learnpulse/internal/errors"
	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/repository"
)

// LearnerService handles learner-related business logic
type LearnerService interface {
	RegisterLearner(ctx context.Context, userID, displayName string) (*models.Learner, error)
	GetLearner(ctx context.Context, userID string) (*models.Learner, error)
	ListLearners(ctx context.Context) ([]models.Learner, error)
}

type learnerService struct {
	learnerRepo repository.LearnerRepository
	clock       func() time.Time
}

// NewLearnerService creates a new LearnerService
func NewLearnerService(learnerRepo repository.LearnerRepository) LearnerService {
	return &learnerService{learnerRepo: learnerRepo, clock: time.Now}
}

func (s *learnerService) RegisterLearner(ctx context.Context, userID, displayName string) (*models.Learner, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering learner: user_id=%s", userID)

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "must not be empty")
	}

	existing, err := s.learnerRepo.Get(ctx, userID)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		log.Error("failed to check existing learner: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("learner", userID)
	}

	learner := models.Learner{
		UserID:      userID,
		DisplayName: displayName,
		CreatedAt:   s.clock().UTC(),
	}
	if err := s.learnerRepo.Insert(ctx, learner); err != nil {
		log.Error("failed to insert learner: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &learner, nil
}

func (s *learnerService) GetLearner(ctx context.Context, userID string) (*models.Learner, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting learner: user_id=%s", userID)

	learner, err := s.learnerRepo.Get(ctx, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("learner", userID)
		}
		log.Error("failed to get learner: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return learner, nil
}

func (s *learnerService) ListLearners(ctx context.Context) ([]models.Learner, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing learners")

	learners, err := s.learnerRepo.List(ctx)
	if err != nil {
		log.Error("failed to list learners: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return learners, nil
}
