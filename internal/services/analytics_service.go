package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/lucasmr/learnpulse/internal/analytics"
	"github.com/lucasmr/learnpulse/internal/errors"
	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/repository"
)

// ComputeOptions tunes a single report computation. The zero value means
// "default window, wall-clock now".
type ComputeOptions struct {
	DaysToAnalyze int
	Now           time.Time // test override for the computation instant
}

// AnalyticsService computes, stores and serves per-learner analytics reports
type AnalyticsService interface {
	ComputeForLearner(ctx context.Context, userID string, opts ComputeOptions) (*models.AnalyticsReport, error)
	// Recompute is ComputeForLearner with defaults; it satisfies
	// worker.AnalyticsRecomputer.
	Recompute(ctx context.Context, userID string) (*models.AnalyticsReport, error)
	GetReport(ctx context.Context, userID string) (*models.AnalyticsReport, error)
}

type analyticsService struct {
	attemptRepo       repository.AttemptRepository
	reportRepo        repository.ReportRepository
	computeVersion    int
	defaultWindowDays int
	clock             func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(attemptRepo repository.AttemptRepository, reportRepo repository.ReportRepository, computeVersion, defaultWindowDays int) AnalyticsService {
	if defaultWindowDays <= 0 {
		defaultWindowDays = analytics.DefaultWindowDays
	}
	return &analyticsService{
		attemptRepo:       attemptRepo,
		reportRepo:        reportRepo,
		computeVersion:    computeVersion,
		defaultWindowDays: defaultWindowDays,
		clock:             time.Now,
	}
}

func (s *analyticsService) ComputeForLearner(ctx context.Context, userID string, opts ComputeOptions) (*models.AnalyticsReport, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "must not be empty")
	}

	days := opts.DaysToAnalyze
	if days <= 0 {
		days = s.defaultWindowDays
	}
	now := opts.Now
	if now.IsZero() {
		now = s.clock().UTC()
	}
	windowStart := now.AddDate(0, 0, -days)

	log.Debug("computing analytics: user_id=%s, window_days=%d", userID, days)

	attempts, err := s.attemptRepo.ListForUserSince(ctx, userID, windowStart)
	if err != nil {
		log.Error("failed to read attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}

	report := analytics.BuildReport(userID, attempts, now, analytics.Window{Start: windowStart, End: now}, s.computeVersion)

	if err := s.reportRepo.Upsert(ctx, report); err != nil {
		log.Error("failed to store report: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("analytics report computed: user_id=%s, attempts=%d, has_enough_data=%v",
		userID, report.DataQuality.AttemptCount, report.DataQuality.HasEnoughData)
	return &report, nil
}

func (s *analyticsService) Recompute(ctx context.Context, userID string) (*models.AnalyticsReport, error) {
	return s.ComputeForLearner(ctx, userID, ComputeOptions{})
}

func (s *analyticsService) GetReport(ctx context.Context, userID string) (*models.AnalyticsReport, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting report: user_id=%s", userID)

	report, err := s.reportRepo.Get(ctx, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("analytics report", userID)
		}
		log.Error("failed to get report: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return report, nil
}
