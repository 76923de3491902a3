package api

import (
	"net/http"

	"github.com/lucasmr/learnpulse/internal/services"
	"github.com/lucasmr/learnpulse/internal/worker"
)

type Server struct {
	LearnerService     services.LearnerService
	AttemptService     services.AttemptService
	AnalyticsService   services.AnalyticsService
	AchievementService services.AchievementService
	AnalyticsPool      *worker.Pool
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{
		"status":     "ok",
		"queue_size": s.AnalyticsPool.QueueSize(),
	})
}
