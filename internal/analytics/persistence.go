package analytics

import (
	"sort"

	"github.com/lucasmr/learnpulse/internal/models"
)

// extractPersistence measures retry behavior per activity: how many tries a
// learner needs before the first success, whether they retry after failing,
// and how much scores improve between first and last attempts.
func extractPersistence(attempts []models.Attempt) models.PersistenceMetrics {
	var metrics models.PersistenceMetrics
	if len(attempts) == 0 {
		return metrics
	}

	totalCorrect := 0
	for _, a := range attempts {
		if a.Correct {
			totalCorrect++
		}
	}
	metrics.OverallAccuracy = round2(float64(totalCorrect) / float64(len(attempts)))

	byActivity := make(map[string][]models.Attempt)
	for _, a := range attempts {
		byActivity[a.ActivityID] = append(byActivity[a.ActivityID], a)
	}

	var (
		successPositionSum int
		successCount       int
		giveUps            int
		failedFirst        int
		retriedAfterFail   int
		improvementSum     float64
		improvementCount   int
	)

	for _, group := range byActivity {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].AttemptNumber < group[j].AttemptNumber
		})

		for i, a := range group {
			if a.Correct {
				successPositionSum += i + 1
				successCount++
				break
			}
		}

		if len(group) == 1 && !group[0].Correct {
			giveUps++
		}

		if !group[0].Correct {
			failedFirst++
			if len(group) >= 2 {
				retriedAfterFail++
			}
		}

		if len(group) >= 2 {
			first := group[0].EffectiveScore()
			last := group[len(group)-1].EffectiveScore()
			improvementSum += last - first
			improvementCount++
		}
	}

	if successCount > 0 {
		metrics.AvgAttemptsBeforeSuccess = round1(float64(successPositionSum) / float64(successCount))
	}
	// Give-ups are measured against distinct activities, not raw attempts.
	metrics.GiveUpRate = round2(float64(giveUps) / float64(len(byActivity)))
	if failedFirst > 0 {
		metrics.RetryAfterFailureRate = round2(float64(retriedAfterFail) / float64(failedFirst))
	}
	if improvementCount > 0 {
		metrics.ImprovementRate = round2(improvementSum / float64(improvementCount))
	}

	return metrics
}
