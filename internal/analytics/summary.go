package analytics

import (
	"math"

	"github.com/lucasmr/learnpulse/internal/models"
)

// summarize rolls up window-wide counters: distinct activities, topics and
// courses, mean score and total time spent.
func summarize(attempts []models.Attempt, window Window) models.SummaryStats {
	stats := models.SummaryStats{
		WindowStart: window.Start,
		WindowEnd:   window.End,
	}
	if len(attempts) == 0 {
		return stats
	}

	activities := make(map[string]struct{})
	topics := make(map[string]struct{})
	courses := make(map[string]struct{})
	var scoreSum float64
	var totalTimeMs int64

	for _, a := range attempts {
		activities[a.ActivityID] = struct{}{}
		if key := a.TopicKey(); key != "" {
			topics[key] = struct{}{}
		}
		if a.CourseID != "" {
			courses[a.CourseID] = struct{}{}
		}
		if a.Correct {
			stats.TotalCorrect++
		}
		scoreSum += a.EffectiveScore()
		totalTimeMs += a.TimeSpentMs
	}

	stats.TotalAttempts = len(attempts)
	stats.DistinctActivities = len(activities)
	stats.DistinctTopics = len(topics)
	stats.DistinctCourses = len(courses)
	stats.AvgScore = round2(scoreSum / float64(len(attempts)))
	stats.TotalTimeMinutes = int(math.Round(float64(totalTimeMs) / 60000))

	return stats
}
