package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/lucasmr/learnpulse/internal/analytics"
	"github.com/lucasmr/learnpulse/internal/models"
)

func ptr(v float64) *float64 { return &v }

func windowEnding(now time.Time) analytics.Window {
	return analytics.Window{Start: now.AddDate(0, 0, -analytics.DefaultWindowDays), End: now}
}

func TestBuildReport_EmptyInput(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	report := analytics.BuildReport("user-1", nil, now, windowEnding(now), 1)

	assert.Equal(t, "user-1", report.UserID)
	assert.Equal(t, 1, report.ComputeVersion)
	assert.Equal(t, now, report.ComputedAt)

	assert.False(t, report.DataQuality.HasEnoughData)
	assert.Equal(t, 0, report.DataQuality.AttemptCount)

	assert.Empty(t, report.LearningStyle.Primary)
	assert.Empty(t, report.LearningStyle.Secondary)
	assert.Zero(t, report.LearningStyle.Confidence)
	assert.Empty(t, report.LearningStyle.Breakdown)

	assert.Empty(t, report.StrengthAreas)
	assert.Empty(t, report.GrowthAreas)

	assert.Zero(t, report.EngagementPatterns.CurrentStreakDays)
	assert.Zero(t, report.EngagementPatterns.RecordStreakDays)
	assert.Zero(t, report.EngagementPatterns.SessionCount)
	assert.Empty(t, report.EngagementPatterns.PreferredTimeWindows)

	assert.Zero(t, report.PersistenceMetrics.OverallAccuracy)
	assert.Zero(t, report.PersistenceMetrics.GiveUpRate)

	assert.Zero(t, report.SummaryStats.TotalAttempts)
	assert.Equal(t, windowEnding(now).Start, report.SummaryStats.WindowStart)
	assert.Equal(t, now, report.SummaryStats.WindowEnd)
}

func TestBuildReport_DataQualityThreshold(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		attempts int
		enough   bool
	}{
		{"nine attempts is not enough", 9, false},
		{"ten attempts is enough", 10, true},
		{"many attempts is enough", 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := make([]models.Attempt, tt.attempts)
			for i := range attempts {
				attempts[i] = models.Attempt{
					ActivityID:    "act-1",
					ActivityType:  "quiz",
					Correct:       true,
					AttemptNumber: i + 1,
					CreatedAt:     now.Add(-time.Duration(i) * time.Hour),
				}
			}

			report := analytics.BuildReport("user-1", attempts, now, windowEnding(now), 1)

			assert.Equal(t, tt.enough, report.DataQuality.HasEnoughData)
			assert.Equal(t, tt.attempts, report.DataQuality.AttemptCount)
		})
	}
}

func TestBuildReport_AccuracyBounds(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	attempts := []models.Attempt{
		{ActivityID: "a-1", ActivityType: "quiz", Correct: true, Score: ptr(0.9), AttemptNumber: 1, CreatedAt: now.Add(-3 * time.Hour)},
		{ActivityID: "a-1", ActivityType: "quiz", Correct: false, Score: ptr(0.4), AttemptNumber: 2, CreatedAt: now.Add(-2 * time.Hour)},
		{ActivityID: "b-1", ActivityType: "diagram", Correct: true, AttemptNumber: 1, CreatedAt: now.Add(-1 * time.Hour)},
	}

	report := analytics.BuildReport("user-1", attempts, now, windowEnding(now), 1)

	acc := report.PersistenceMetrics.OverallAccuracy
	assert.GreaterOrEqual(t, acc, 0.0)
	assert.LessOrEqual(t, acc, 1.0)
	assert.LessOrEqual(t, report.SummaryStats.TotalCorrect, report.SummaryStats.TotalAttempts)
}

func TestBuildReport_Idempotent(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	attempts := []models.Attempt{
		{ActivityID: "loops-1", ActivityType: "fill-blank", LessonID: "loops", Correct: true, Score: ptr(0.9), AttemptNumber: 1, TimeSpentMs: 60000, CreatedAt: now.AddDate(0, 0, -2)},
		{ActivityID: "loops-2", ActivityType: "sequencing", LessonID: "loops", Correct: false, Score: ptr(0.4), AttemptNumber: 1, TimeSpentMs: 90000, CreatedAt: now.AddDate(0, 0, -1)},
		{ActivityID: "loops-2", ActivityType: "sequencing", LessonID: "loops", Correct: true, Score: ptr(0.8), AttemptNumber: 2, TimeSpentMs: 45000, CreatedAt: now.Add(-2 * time.Hour)},
	}

	first := analytics.BuildReport("user-1", attempts, now, windowEnding(now), 1)
	second := analytics.BuildReport("user-1", attempts, now, windowEnding(now), 1)

	require.Equal(t, first, second)
}

func TestBuildReport_SummaryStats(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	attempts := []models.Attempt{
		{ActivityID: "loops-1", ActivityType: "quiz", LessonID: "loops", CourseID: "cs101", Correct: true, Score: ptr(1), AttemptNumber: 1, TimeSpentMs: 120000, CreatedAt: now.Add(-2 * time.Hour)},
		{ActivityID: "loops-2", ActivityType: "quiz", LessonID: "loops", CourseID: "cs101", Correct: false, Score: ptr(0.5), AttemptNumber: 1, TimeSpentMs: 60000, CreatedAt: now.Add(-1 * time.Hour)},
		{ActivityID: "sets-1", ActivityType: "diagram", LessonID: "sets", CourseID: "math200", Correct: true, Score: ptr(0.75), AttemptNumber: 1, TimeSpentMs: 90000, CreatedAt: now.Add(-30 * time.Minute)},
	}

	report := analytics.BuildReport("user-1", attempts, now, windowEnding(now), 1)

	assert.Equal(t, 3, report.SummaryStats.TotalAttempts)
	assert.Equal(t, 2, report.SummaryStats.TotalCorrect)
	assert.Equal(t, 3, report.SummaryStats.DistinctActivities)
	assert.Equal(t, 2, report.SummaryStats.DistinctTopics)
	assert.Equal(t, 2, report.SummaryStats.DistinctCourses)
	assert.Equal(t, 0.75, report.SummaryStats.AvgScore)
	assert.Equal(t, 5, report.SummaryStats.TotalTimeMinutes) // 270000ms = 4.5min, rounds to 5
}
