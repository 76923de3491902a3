package services

import (
	"context"

	"github.com/lucasmr/learnpulse/internal/errors"
	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/repository"
)

// AchievementService serves earned achievements
type AchievementService interface {
	ListForLearner(ctx context.Context, userID string) ([]models.Achievement, error)
}

type achievementService struct {
	achievementRepo repository.AchievementRepository
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(achievementRepo repository.AchievementRepository) AchievementService {
	return &achievementService{achievementRepo: achievementRepo}
}

func (s *achievementService) ListForLearner(ctx context.Context, userID string) ([]models.Achievement, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing achievements: user_id=%s", userID)

	achievements, err := s.achievementRepo.ListForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return achievements, nil
}
