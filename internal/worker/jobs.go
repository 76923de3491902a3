package worker

import (
	"context"
	"fmt"

	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
)

// AnalyticsRecomputer recomputes and persists the analytics report for a
// learner. Implemented by services.AnalyticsService.
type AnalyticsRecomputer interface {
	Recompute(ctx context.Context, userID string) (*models.AnalyticsReport, error)
}

// AchievementEvaluator awards achievements from a fresh report.
// Implemented by achievements.Evaluator.
type AchievementEvaluator interface {
	EvaluateAndRecord(ctx context.Context, report *models.AnalyticsReport) ([]string, error)
}

// RecomputeAnalyticsJob rebuilds one learner's analytics report and then
// runs achievement evaluation on the result. Achievement failures never
// fail the recompute; the report is already stored at that point.
type RecomputeAnalyticsJob struct {
	Analytics    AnalyticsRecomputer
	Achievements AchievementEvaluator
	UserID       string
}

func (j *RecomputeAnalyticsJob) Name() string {
	return fmt.Sprintf("recompute-analytics(%s)", j.UserID)
}

func (j *RecomputeAnalyticsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	report, err := j.Analytics.Recompute(ctx, j.UserID)
	if err != nil {
		return fmt.Errorf("recompute analytics for %s: %w", j.UserID, err)
	}
	log.Debug("report recomputed: user_id=%s, attempts=%d", j.UserID, report.DataQuality.AttemptCount)

	if j.Achievements == nil {
		return nil
	}
	earned, err := j.Achievements.EvaluateAndRecord(ctx, report)
	if err != nil {
		log.Warn("achievement evaluation failed: %v", err)
		return nil
	}
	if len(earned) > 0 {
		log.Info("achievements earned: user_id=%s, codes=%v", j.UserID, earned)
	}
	return nil
}
