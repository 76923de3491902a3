package achievements

import (
	"context"

	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/repository"
)

// Achievement codes awarded from analytics reports.
const (
	CodeFirstSteps       = "first-steps"
	CodeCommittedLearner = "committed-learner"
	CodeWeekStreak       = "week-streak"
	CodeMonthStreak      = "month-streak"
	CodeSharpShooter     = "sharp-shooter"
	CodeComeback         = "comeback"
	CodeExplorer         = "explorer"
)

// Evaluator derives earned achievements from a freshly computed analytics
// report. Evaluation is threshold-based and idempotent: an already-held
// achievement is never awarded twice.
type Evaluator struct {
	repo repository.AchievementRepository
}

// NewEvaluator creates a new Evaluator
func NewEvaluator(repo repository.AchievementRepository) *Evaluator {
	return &Evaluator{repo: repo}
}

// EvaluateAndRecord computes the achievements the report qualifies for and
// persists the ones the user does not hold yet, returning the newly earned
// codes.
func (e *Evaluator) EvaluateAndRecord(ctx context.Context, report *models.AnalyticsReport) ([]string, error) {
	log := logger.FromContext(ctx)

	var earned []string
	for _, code := range Evaluate(report) {
		inserted, err := e.repo.InsertIfNew(ctx, report.UserID, code, report.ComputedAt)
		if err != nil {
			return earned, err
		}
		if inserted {
			earned = append(earned, code)
		}
	}
	if len(earned) > 0 {
		log.Debug("new achievements: user_id=%s, codes=%v", report.UserID, earned)
	}
	return earned, nil
}

// Evaluate returns every achievement code the report qualifies for,
// regardless of what the user already holds.
func Evaluate(report *models.AnalyticsReport) []string {
	var codes []string

	if report.SummaryStats.TotalAttempts >= 1 {
		codes = append(codes, CodeFirstSteps)
	}
	if report.SummaryStats.TotalAttempts >= 50 {
		codes = append(codes, CodeCommittedLearner)
	}
	if report.EngagementPatterns.RecordStreakDays >= 7 {
		codes = append(codes, CodeWeekStreak)
	}
	if report.EngagementPatterns.RecordStreakDays >= 30 {
		codes = append(codes, CodeMonthStreak)
	}

	// Skill-based awards need a meaningful sample behind them.
	if report.DataQuality.HasEnoughData {
		if report.PersistenceMetrics.OverallAccuracy >= 0.9 {
			codes = append(codes, CodeSharpShooter)
		}
		if report.PersistenceMetrics.ImprovementRate >= 0.3 {
			codes = append(codes, CodeComeback)
		}
	}
	if report.SummaryStats.DistinctTopics >= 5 {
		codes = append(codes, CodeExplorer)
	}

	return codes
}
