package repository

import (
	"context"
	"time"

	"github.com/lucasmr/learnpulse/internal/models"
)

// LearnerRepository handles learner data access
type LearnerRepository interface {
	Get(ctx context.Context, userID string) (*models.Learner, error)
	List(ctx context.Context) ([]models.Learner, error)
	Insert(ctx context.Context, learner models.Learner) error
}

// AttemptRepository handles attempt data access. Attempts are append-only;
// there are no update or delete operations.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) (int64, error)
	GetByUID(ctx context.Context, attemptUID string) (*models.Attempt, error)
	List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error)
	Count(ctx context.Context, filter models.AttemptFilter) (int, error)
	ListForUserSince(ctx context.Context, userID string, since time.Time) ([]models.Attempt, error)
	NextAttemptNumber(ctx context.Context, userID, activityID string) (int, error)
}

// ReportRepository handles analytics report storage. Upsert is a
// full-document replace keyed by user id; no history is kept.
type ReportRepository interface {
	Get(ctx context.Context, userID string) (*models.AnalyticsReport, error)
	Upsert(ctx context.Context, report models.AnalyticsReport) error
}

// AchievementRepository handles earned-achievement storage.
type AchievementRepository interface {
	ListForUser(ctx context.Context, userID string) ([]models.Achievement, error)
	// InsertIfNew records an achievement unless the user already holds it.
	// It reports whether a row was inserted.
	InsertIfNew(ctx context.Context, userID, code string, earnedAt time.Time) (bool, error)
}
