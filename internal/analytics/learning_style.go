package analytics

import (
	"sort"
	"strings"

	"github.com/lucasmr/learnpulse/internal/models"
)

// modalityByType maps normalized activity types to coarse learning-style
// modalities. Types missing from the table fall back to defaultModality.
var modalityByType = map[string]string{
	"fill-blank":        "reading",
	"fill-in-blank":     "reading",
	"multiple-choice":   "reading",
	"quiz":              "reading",
	"scenario":          "reading",
	"scenario-analysis": "reading",
	"reflection":        "writing",
	"journal":           "writing",
	"diagram":           "visual",
	"animation":         "visual",
	"matching":          "visual",
	"video":             "visual",
	"audio":             "auditory",
	"podcast":           "auditory",
	"sequencing":        "kinesthetic",
	"drag-drop":         "kinesthetic",
	"play-designer":     "kinesthetic",
	"simulation":        "kinesthetic",
}

const defaultModality = "reading"

var typeNormalizer = strings.NewReplacer(" ", "-", "\t", "-", "_", "-")

func normalizeActivityType(t string) string {
	return typeNormalizer.Replace(strings.ToLower(strings.TrimSpace(t)))
}

type scoreAccumulator struct {
	sum float64
	n   int
}

// classifyLearningStyle groups attempts by normalized activity type, maps
// each type onto a modality and ranks modalities by attempt-count-weighted
// average score. Confidence grows with sample size only and is capped at
// 0.95; score quality never affects it.
func classifyLearningStyle(attempts []models.Attempt) models.LearningStyle {
	style := models.LearningStyle{Breakdown: []models.ModalityScore{}}
	if len(attempts) == 0 {
		return style
	}

	byType := make(map[string]*scoreAccumulator)
	for _, a := range attempts {
		key := normalizeActivityType(a.ActivityType)
		acc := byType[key]
		if acc == nil {
			acc = &scoreAccumulator{}
			byType[key] = acc
		}
		acc.sum += a.EffectiveScore()
		acc.n++
	}

	// Weighting each per-type average by its attempt count and folding
	// into the modality bucket.
	byModality := make(map[string]*scoreAccumulator)
	for typ, acc := range byType {
		modality := modalityByType[typ]
		if modality == "" {
			modality = defaultModality
		}
		m := byModality[modality]
		if m == nil {
			m = &scoreAccumulator{}
			byModality[modality] = m
		}
		avg := acc.sum / float64(acc.n)
		m.sum += avg * float64(acc.n)
		m.n += acc.n
	}

	for modality, acc := range byModality {
		style.Breakdown = append(style.Breakdown, models.ModalityScore{
			Modality: modality,
			AvgScore: round2(acc.sum / float64(acc.n)),
			Attempts: acc.n,
		})
	}

	// Ties on average score go to the modality with more attempts, then to
	// the lexicographically smaller name, so ranking is stable across runs.
	sort.Slice(style.Breakdown, func(i, j int) bool {
		a, b := style.Breakdown[i], style.Breakdown[j]
		if a.AvgScore != b.AvgScore {
			return a.AvgScore > b.AvgScore
		}
		if a.Attempts != b.Attempts {
			return a.Attempts > b.Attempts
		}
		return a.Modality < b.Modality
	})

	style.Primary = style.Breakdown[0].Modality
	if len(style.Breakdown) > 1 {
		style.Secondary = style.Breakdown[1].Modality
	}

	confidence := 0.5 + float64(len(attempts))/200*0.5
	if confidence > 0.95 {
		confidence = 0.95
	}
	style.Confidence = round2(confidence)

	return style
}
