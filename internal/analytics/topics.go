package analytics

import (
	"sort"
	"time"

	"github.com/lucasmr/learnpulse/internal/models"
)

const (
	strengthMinScore    = 0.80
	strengthMinAttempts = 3
	growthMaxScore      = 0.60
	growthMinAttempts   = 2
)

type topicAccumulator struct {
	sum    float64
	n      int
	latest time.Time
}

// classifyTopics splits topics into strength areas (high mean score with a
// minimum sample) and growth areas (low mean score with a minimum sample).
// A topic can be neither; a low-scoring topic with a single attempt is
// excluded from growth areas entirely.
func classifyTopics(attempts []models.Attempt) (strengths, growths []models.TopicSummary) {
	strengths = []models.TopicSummary{}
	growths = []models.TopicSummary{}

	byTopic := make(map[string]*topicAccumulator)
	for _, a := range attempts {
		key := a.TopicKey()
		if key == "" {
			continue
		}
		acc := byTopic[key]
		if acc == nil {
			acc = &topicAccumulator{}
			byTopic[key] = acc
		}
		acc.sum += a.EffectiveScore()
		acc.n++
		if a.CreatedAt.After(acc.latest) {
			acc.latest = a.CreatedAt
		}
	}

	// Name order first, then a stable sort by score, so equal-scoring
	// topics always come out in the same order.
	names := make([]string, 0, len(byTopic))
	for name := range byTopic {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		acc := byTopic[name]
		mean := acc.sum / float64(acc.n)
		summary := models.TopicSummary{
			Topic:          name,
			AvgScore:       round2(mean),
			Attempts:       acc.n,
			LastActivityAt: acc.latest,
		}
		switch {
		case mean >= strengthMinScore && acc.n >= strengthMinAttempts:
			strengths = append(strengths, summary)
		case mean < growthMaxScore && acc.n >= growthMinAttempts:
			summary.SuggestedResource = name + "-basics"
			growths = append(growths, summary)
		}
	}

	sort.SliceStable(strengths, func(i, j int) bool {
		return strengths[i].AvgScore > strengths[j].AvgScore
	})
	sort.SliceStable(growths, func(i, j int) bool {
		return growths[i].AvgScore < growths[j].AvgScore
	})

	return strengths, growths
}
