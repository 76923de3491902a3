package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/lucasmr/learnpulse/internal/analytics"
	"github.com/lucasmr/learnpulse/internal/models"
)

func persistenceOf(t *testing.T, attempts []models.Attempt) models.PersistenceMetrics {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	report := analytics.BuildReport("user-1", attempts, now, windowEnding(now), 1)
	return report.PersistenceMetrics
}

func TestPersistence_RetryThenSucceed(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	attempts := []models.Attempt{
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 1, Correct: false, Score: ptr(0), CreatedAt: now.Add(-2 * time.Hour)},
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 2, Correct: true, Score: ptr(1), CreatedAt: now.Add(-1 * time.Hour)},
	}

	metrics := persistenceOf(t, attempts)

	assert.Equal(t, 2.0, metrics.AvgAttemptsBeforeSuccess)
	assert.Equal(t, 1.0, metrics.RetryAfterFailureRate)
	assert.Equal(t, 0.0, metrics.GiveUpRate)
	assert.Equal(t, 1.0, metrics.ImprovementRate)
	assert.Equal(t, 0.5, metrics.OverallAccuracy)
}

func TestPersistence_GiveUpRate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// a1: single failed attempt (a give-up). a2: single correct attempt.
	// a3: failed then abandoned after a retry (not a give-up).
	attempts := []models.Attempt{
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 1, Correct: false, CreatedAt: now.Add(-5 * time.Hour)},
		{ActivityID: "a2", ActivityType: "quiz", AttemptNumber: 1, Correct: true, CreatedAt: now.Add(-4 * time.Hour)},
		{ActivityID: "a3", ActivityType: "quiz", AttemptNumber: 1, Correct: false, CreatedAt: now.Add(-3 * time.Hour)},
		{ActivityID: "a3", ActivityType: "quiz", AttemptNumber: 2, Correct: false, CreatedAt: now.Add(-2 * time.Hour)},
	}

	metrics := persistenceOf(t, attempts)

	// 1 give-up over 3 distinct activities.
	assert.Equal(t, 0.33, metrics.GiveUpRate)
	// Two activities failed on the first try; one of them was retried.
	assert.Equal(t, 0.5, metrics.RetryAfterFailureRate)
}

func TestPersistence_AvgAttemptsBeforeSuccessRounding(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// First success on attempt 1 for a1, on attempt 2 for a2: average 1.5.
	attempts := []models.Attempt{
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 1, Correct: true, CreatedAt: now.Add(-4 * time.Hour)},
		{ActivityID: "a2", ActivityType: "quiz", AttemptNumber: 1, Correct: false, CreatedAt: now.Add(-3 * time.Hour)},
		{ActivityID: "a2", ActivityType: "quiz", AttemptNumber: 2, Correct: true, CreatedAt: now.Add(-2 * time.Hour)},
	}

	metrics := persistenceOf(t, attempts)

	assert.Equal(t, 1.5, metrics.AvgAttemptsBeforeSuccess)
}

func TestPersistence_OutOfOrderAttemptNumbers(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Stored order does not match attempt order; grouping must sort first.
	attempts := []models.Attempt{
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 3, Correct: true, Score: ptr(0.9), CreatedAt: now.Add(-1 * time.Hour)},
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 1, Correct: false, Score: ptr(0.2), CreatedAt: now.Add(-3 * time.Hour)},
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 2, Correct: false, Score: ptr(0.4), CreatedAt: now.Add(-2 * time.Hour)},
	}

	metrics := persistenceOf(t, attempts)

	assert.Equal(t, 3.0, metrics.AvgAttemptsBeforeSuccess)
	assert.Equal(t, 0.7, metrics.ImprovementRate) // 0.9 - 0.2
}

func TestPersistence_NoSuccessesLeavesAverageZero(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	attempts := []models.Attempt{
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 1, Correct: false, CreatedAt: now.Add(-2 * time.Hour)},
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 2, Correct: false, CreatedAt: now.Add(-1 * time.Hour)},
	}

	metrics := persistenceOf(t, attempts)

	assert.Equal(t, 0.0, metrics.AvgAttemptsBeforeSuccess)
	assert.Equal(t, 0.0, metrics.OverallAccuracy)
	assert.Equal(t, 1.0, metrics.RetryAfterFailureRate)
}

func TestPersistence_ImprovementCanBeNegative(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	attempts := []models.Attempt{
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 1, Correct: true, Score: ptr(0.9), CreatedAt: now.Add(-2 * time.Hour)},
		{ActivityID: "a1", ActivityType: "quiz", AttemptNumber: 2, Correct: false, Score: ptr(0.3), CreatedAt: now.Add(-1 * time.Hour)},
	}

	metrics := persistenceOf(t, attempts)

	assert.Equal(t, -0.6, metrics.ImprovementRate)
}
