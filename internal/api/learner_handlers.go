package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lucasmr/learnpulse/internal/logger"
)

type registerLearnerRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

func (s *Server) handleRegisterLearner(w http.ResponseWriter, r *http.Request) {
	var req registerLearnerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.RegisterLearner(r.Context(), req.UserID, req.DisplayName)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, learner)
}

func (s *Server) handleGetLearner(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	learner, err := s.LearnerService.GetLearner(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, learner)
}

func (s *Server) handleListLearners(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	learners, err := s.LearnerService.ListLearners(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("found %d learners", len(learners))
	respondJSON(w, r, http.StatusOK, map[string]any{
		"learners": learners,
		"count":    len(learners),
	})
}
