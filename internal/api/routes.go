package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/learners", s.handleRegisterLearner)
		r.Get("/learners", s.handleListLearners)
		r.Get("/learners/{userID}", s.handleGetLearner)

		r.Post("/attempts", s.handleRecordAttempt)
		r.Get("/attempts", s.handleListAttempts)

		r.Get("/learners/{userID}/analytics", s.handleGetAnalytics)
		r.Post("/learners/{userID}/analytics/refresh", s.handleRefreshAnalytics)
		r.Get("/learners/{userID}/achievements", s.handleListAchievements)
	})

	return r
}
