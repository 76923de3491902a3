package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lucasmr/learnpulse/internal/errors"
	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/services"
)

func (s *Server) handleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	report, err := s.AnalyticsService.GetReport(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, report)
}

// handleRefreshAnalytics recomputes the report inline and returns it, skipping
// the debounce path. An optional ?days= overrides the analysis window.
func (s *Server) handleRefreshAnalytics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID := chi.URLParam(r, "userID")

	opts := services.ComputeOptions{}
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil || days <= 0 {
			handleError(w, r, errors.NewValidationError("days", "must be a positive integer"))
			return
		}
		opts.DaysToAnalyze = days
	}

	log.Info("manually refreshing analytics: user_id=%s", userID)

	report, err := s.AnalyticsService.ComputeForLearner(r.Context(), userID, opts)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, report)
}
