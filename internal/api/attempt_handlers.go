package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
)

type recordAttemptRequest struct {
	AttemptUID    string    `json:"attempt_uid"`
	UserID        string    `json:"user_id"`
	ActivityID    string    `json:"activity_id"`
	ActivityType  string    `json:"activity_type"`
	LessonID      string    `json:"lesson_id"`
	CourseID      string    `json:"course_id"`
	Correct       bool      `json:"correct"`
	Score         *float64  `json:"score"`
	AttemptNumber int       `json:"attempt_number"`
	TimeSpentMs   int64     `json:"time_spent_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *Server) handleRecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req recordAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	attempt, err := s.AttemptService.RecordAttempt(r.Context(), models.Attempt{
		AttemptUID:    req.AttemptUID,
		UserID:        req.UserID,
		ActivityID:    req.ActivityID,
		ActivityType:  req.ActivityType,
		LessonID:      req.LessonID,
		CourseID:      req.CourseID,
		Correct:       req.Correct,
		Score:         req.Score,
		AttemptNumber: req.AttemptNumber,
		TimeSpentMs:   req.TimeSpentMs,
		CreatedAt:     req.CreatedAt,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, attempt)
}

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := r.URL.Query()

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	perPage := 25
	switch q.Get("per_page") {
	case "10":
		perPage = 10
	case "25":
		perPage = 25
	case "50":
		perPage = 50
	case "100":
		perPage = 100
	}

	filter := models.AttemptFilter{
		UserID:       q.Get("user_id"),
		ActivityID:   q.Get("activity_id"),
		ActivityType: q.Get("activity_type"),
		CourseID:     q.Get("course_id"),
		Limit:        perPage,
		Offset:       (page - 1) * perPage,
	}
	if since := q.Get("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			handleError(w, r, invalidTimeParam("since"))
			return
		}
		filter.Since = &t
	}
	if until := q.Get("until"); until != "" {
		t, err := time.Parse(time.RFC3339, until)
		if err != nil {
			handleError(w, r, invalidTimeParam("until"))
			return
		}
		filter.Until = &t
	}

	attempts, totalCount, err := s.AttemptService.ListAttempts(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	totalPages := totalCount / perPage
	if totalCount%perPage != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	log.Debug("found %d attempts", len(attempts))
	respondJSON(w, r, http.StatusOK, map[string]any{
		"attempts":    attempts,
		"page":        page,
		"per_page":    perPage,
		"total_pages": totalPages,
		"total_count": totalCount,
	})
}
