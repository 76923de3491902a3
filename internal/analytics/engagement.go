package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lucasmr/learnpulse/internal/models"
)

// sessionGap is the inter-attempt silence that starts a new session.
const sessionGap = 30 * time.Minute

type timeBucket struct {
	count    int
	scoreSum float64
}

// extractEngagement derives time-of-day/day-of-week preferences, streaks,
// consistency and session structure from attempt timestamps. Timestamps are
// interpreted in the location of `now` so streak days follow the caller's
// calendar.
func extractEngagement(attempts []models.Attempt, now time.Time) models.EngagementPatterns {
	patterns := models.EngagementPatterns{PreferredTimeWindows: []string{}}
	if len(attempts) == 0 {
		return patterns
	}

	loc := now.Location()

	var hours [24]timeBucket
	var days [7]timeBucket
	var totalTimeMs int64
	timestamps := make([]time.Time, 0, len(attempts))

	for _, a := range attempts {
		t := a.CreatedAt.In(loc)
		score := a.EffectiveScore()
		hours[t.Hour()].count++
		hours[t.Hour()].scoreSum += score
		days[int(t.Weekday())].count++
		days[int(t.Weekday())].scoreSum += score
		totalTimeMs += a.TimeSpentMs
		timestamps = append(timestamps, t)
	}

	patterns.PeakHour = peakBucket(hours[:])
	patterns.PeakDay = peakBucket(days[:])
	patterns.PreferredTimeWindows = preferredWindows(hours)

	current, record, consistency := streaks(timestamps, now)
	patterns.CurrentStreakDays = current
	patterns.RecordStreakDays = record
	patterns.ConsistencyScore = consistency

	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })
	sessions := 1
	for i := 1; i < len(timestamps); i++ {
		if timestamps[i].Sub(timestamps[i-1]) > sessionGap {
			sessions++
		}
	}
	patterns.SessionCount = sessions
	patterns.AvgSessionMinutes = int(math.Round(float64(totalTimeMs) / float64(sessions) / 60000))

	return patterns
}

// peakBucket returns the index with the highest mean score. Ties go to the
// bucket with the higher count, then to the earliest index.
func peakBucket(buckets []timeBucket) int {
	best := 0
	bestMean := -1.0
	bestCount := 0
	for i, b := range buckets {
		if b.count == 0 {
			continue
		}
		mean := b.scoreSum / float64(b.count)
		if mean > bestMean || (mean == bestMean && b.count > bestCount) {
			best = i
			bestMean = mean
			bestCount = b.count
		}
	}
	return best
}

// preferredWindows picks the two busiest non-overlapping contiguous 2-hour
// blocks, formatted as "HH:00-HH:00".
func preferredWindows(hours [24]timeBucket) []string {
	windows := []string{}
	taken := -1
	for pick := 0; pick < 2; pick++ {
		bestStart := -1
		bestCount := 0
		for h := 0; h < 23; h++ {
			if taken >= 0 && h >= taken-1 && h <= taken+1 {
				continue
			}
			count := hours[h].count + hours[h+1].count
			if count > bestCount {
				bestStart = h
				bestCount = count
			}
		}
		if bestStart < 0 {
			break
		}
		windows = append(windows, fmt.Sprintf("%02d:00-%02d:00", bestStart, bestStart+2))
		taken = bestStart
	}
	return windows
}

// streaks collapses timestamps to calendar dates and measures consecutive-day
// runs. The current streak only counts if the last active day is today or
// yesterday relative to `now`.
func streaks(timestamps []time.Time, now time.Time) (current, record int, consistency float64) {
	loc := now.Location()
	seen := make(map[time.Time]struct{})
	for _, t := range timestamps {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		seen[d] = struct{}{}
	}
	if len(seen) == 0 {
		return 0, 0, 0
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	run := 1
	record = 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			run++
		} else {
			run = 1
		}
		if run > record {
			record = run
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	last := dates[len(dates)-1]
	if last.Equal(today) || last.AddDate(0, 0, 1).Equal(today) {
		current = run
	}

	first := dates[0]
	spanDays := int(math.Round(last.Sub(first).Hours()/24)) + 1
	consistency = float64(len(dates)) / float64(spanDays)
	if consistency > 1 {
		consistency = 1
	}
	return current, record, round2(consistency)
}
