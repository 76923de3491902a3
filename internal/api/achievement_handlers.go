package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lucasmr/learnpulse/internal/logger"
)

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID := chi.URLParam(r, "userID")

	achievements, err := s.AchievementService.ListForLearner(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("found %d achievements", len(achievements))
	respondJSON(w, r, http.StatusOK, map[string]any{
		"achievements": achievements,
		"count":        len(achievements),
	})
}
