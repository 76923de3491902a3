package models

import "time"

type Learner struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Attempt is one recorded interaction with a learning activity.
// Attempts are immutable once written; analytics only ever reads them in aggregate.
type Attempt struct {
	ID            int64     `json:"id"`
	AttemptUID    string    `json:"attempt_uid"`
	UserID        string    `json:"user_id"`
	ActivityID    string    `json:"activity_id"`
	ActivityType  string    `json:"activity_type"`
	LessonID      string    `json:"lesson_id"`
	CourseID      string    `json:"course_id"`
	Correct       bool      `json:"correct"`
	Score         *float64  `json:"score,omitempty"`
	AttemptNumber int       `json:"attempt_number"`
	TimeSpentMs   int64     `json:"time_spent_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

// EffectiveScore resolves the mixed score/correct semantics of attempt
// records: explicit score wins, otherwise correctness maps to 1 or 0.
func (a Attempt) EffectiveScore() float64 {
	if a.Score != nil {
		return *a.Score
	}
	if a.Correct {
		return 1
	}
	return 0
}

// TopicKey returns the topic grouping key for an attempt: the explicit
// lesson id when present, otherwise the activity id prefix before the
// first hyphen.
func (a Attempt) TopicKey() string {
	if a.LessonID != "" {
		return a.LessonID
	}
	for i := 0; i < len(a.ActivityID); i++ {
		if a.ActivityID[i] == '-' {
			return a.ActivityID[:i]
		}
	}
	return a.ActivityID
}

type AttemptFilter struct {
	UserID       string
	ActivityID   string
	ActivityType string
	CourseID     string
	Since        *time.Time
	Until        *time.Time
	Limit        int
	Offset       int
}

type Achievement struct {
	ID       int64     `json:"id"`
	UserID   string    `json:"user_id"`
	Code     string    `json:"code"`
	EarnedAt time.Time `json:"earned_at"`
}
