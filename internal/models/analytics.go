package models

import "time"

// ModalityScore is one row of the learning-style breakdown: a coarse
// modality label with its attempt-count-weighted average score.
type ModalityScore struct {
	Modality string  `json:"modality"`
	AvgScore float64 `json:"avg_score"`
	Attempts int     `json:"attempts"`
}

type LearningStyle struct {
	Primary    string          `json:"primary"`
	Secondary  string          `json:"secondary"`
	Confidence float64         `json:"confidence"`
	Breakdown  []ModalityScore `json:"breakdown"`
}

// TopicSummary describes one topic's performance inside the analysis window.
// SuggestedResource is only populated for growth areas.
type TopicSummary struct {
	Topic             string    `json:"topic"`
	AvgScore          float64   `json:"avg_score"`
	Attempts          int       `json:"attempts"`
	LastActivityAt    time.Time `json:"last_activity_at"`
	SuggestedResource string    `json:"suggested_resource,omitempty"`
}

type EngagementPatterns struct {
	PeakHour             int      `json:"peak_hour"`
	PeakDay              int      `json:"peak_day"` // 0=Sunday .. 6=Saturday
	PreferredTimeWindows []string `json:"preferred_time_windows"`
	CurrentStreakDays    int      `json:"current_streak_days"`
	RecordStreakDays     int      `json:"record_streak_days"`
	ConsistencyScore     float64  `json:"consistency_score"`
	SessionCount         int      `json:"session_count"`
	AvgSessionMinutes    int      `json:"avg_session_minutes"`
}

type PersistenceMetrics struct {
	AvgAttemptsBeforeSuccess float64 `json:"avg_attempts_before_success"`
	GiveUpRate               float64 `json:"give_up_rate"`
	RetryAfterFailureRate    float64 `json:"retry_after_failure_rate"`
	ImprovementRate          float64 `json:"improvement_rate"`
	OverallAccuracy          float64 `json:"overall_accuracy"`
}

type SummaryStats struct {
	TotalAttempts      int       `json:"total_attempts"`
	TotalCorrect       int       `json:"total_correct"`
	DistinctActivities int       `json:"distinct_activities"`
	DistinctTopics     int       `json:"distinct_topics"`
	DistinctCourses    int       `json:"distinct_courses"`
	AvgScore           float64   `json:"avg_score"`
	TotalTimeMinutes   int       `json:"total_time_minutes"`
	WindowStart        time.Time `json:"window_start"`
	WindowEnd          time.Time `json:"window_end"`
}

type DataQuality struct {
	HasEnoughData bool `json:"has_enough_data"`
	AttemptCount  int  `json:"attempt_count"`
}

// AnalyticsReport is derived data: fully recomputed on each trigger and
// upserted per user, replacing the previous report. It is a pure function
// of the attempts inside the analysis window plus the computation instant
// (the current-streak recency check).
type AnalyticsReport struct {
	UserID             string             `json:"user_id"`
	ComputeVersion     int                `json:"compute_version"`
	ComputedAt         time.Time          `json:"computed_at"`
	LearningStyle      LearningStyle      `json:"learning_style"`
	StrengthAreas      []TopicSummary     `json:"strength_areas"`
	GrowthAreas        []TopicSummary     `json:"growth_areas"`
	EngagementPatterns EngagementPatterns `json:"engagement_patterns"`
	PersistenceMetrics PersistenceMetrics `json:"persistence_metrics"`
	SummaryStats       SummaryStats       `json:"summary_stats"`
	DataQuality        DataQuality        `json:"data_quality"`
}
