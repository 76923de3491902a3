package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository implementation.
// Reports are stored as one JSON document per user and replaced wholesale
// on every recomputation.
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Get(ctx context.Context, userID string) (*models.AnalyticsReport, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("getting report: user_id=%s", userID)

	var doc string
	err := r.db.QueryRowContext(ctx, `
SELECT report
FROM analytics_reports
WHERE user_id = ?
`, userID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("report not found: user_id=%s", userID)
		} else {
			log.Error("failed to get report: %v", err)
		}
		return nil, err
	}

	var report models.AnalyticsReport
	if err := json.Unmarshal([]byte(doc), &report); err != nil {
		log.Error("failed to decode stored report: %v", err)
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Upsert(ctx context.Context, report models.AnalyticsReport) error {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("upserting report: user_id=%s, compute_version=%d", report.UserID, report.ComputeVersion)

	doc, err := json.Marshal(report)
	if err != nil {
		log.Error("failed to encode report: %v", err)
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO analytics_reports (user_id, compute_version, computed_at, report)
VALUES (?, ?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET
    compute_version = excluded.compute_version,
    computed_at = excluded.computed_at,
    report = excluded.report
`, report.UserID, report.ComputeVersion, report.ComputedAt, string(doc))
	if err != nil {
		log.Error("failed to upsert report: %v", err)
	}
	return err
}
