package analytics

import (
	"math"
	"time"

	"github.com/lucasmr/learnpulse/internal/models"
)

// DefaultWindowDays is the trailing analysis window applied when the
// caller does not ask for a specific one.
const DefaultWindowDays = 30

// minAttemptsForSignal is the sample size below which a report is flagged
// as not having enough data to be meaningful.
const minAttemptsForSignal = 10

// Window is the time span a report was computed over.
type Window struct {
	Start time.Time
	End   time.Time
}

// BuildReport computes a full analytics report from the attempts inside the
// analysis window. It is a pure function of its inputs: the same attempts at
// the same instant always produce the same report. Empty input yields the
// zero-value report sections rather than an error.
func BuildReport(userID string, attempts []models.Attempt, now time.Time, window Window, computeVersion int) models.AnalyticsReport {
	strengths, growths := classifyTopics(attempts)

	return models.AnalyticsReport{
		UserID:             userID,
		ComputeVersion:     computeVersion,
		ComputedAt:         now,
		LearningStyle:      classifyLearningStyle(attempts),
		StrengthAreas:      strengths,
		GrowthAreas:        growths,
		EngagementPatterns: extractEngagement(attempts, now),
		PersistenceMetrics: extractPersistence(attempts),
		SummaryStats:       summarize(attempts, window),
		DataQuality: models.DataQuality{
			HasEnoughData: len(attempts) >= minAttemptsForSignal,
			AttemptCount:  len(attempts),
		},
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
