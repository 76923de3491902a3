package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const attemptColumns = "id, attempt_uid, user_id, activity_id, activity_type, lesson_id, course_id, correct, score, attempt_number, time_spent_ms, created_at"

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, attempt models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: user_id=%s, activity_id=%s, attempt_number=%d", attempt.UserID, attempt.ActivityID, attempt.AttemptNumber)

	var score sql.NullFloat64
	if attempt.Score != nil {
		score = sql.NullFloat64{Float64: *attempt.Score, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO attempts (attempt_uid, user_id, activity_id, activity_type, lesson_id, course_id, correct, score, attempt_number, time_spent_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, attempt.AttemptUID, attempt.UserID, attempt.ActivityID, attempt.ActivityType, attempt.LessonID, attempt.CourseID, attempt.Correct, score, attempt.AttemptNumber, attempt.TimeSpentMs, attempt.CreatedAt)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *attemptRepository) GetByUID(ctx context.Context, attemptUID string) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("getting attempt: attempt_uid=%s", attemptUID)

	row := r.db.QueryRowContext(ctx, `
SELECT `+attemptColumns+`
FROM attempts
WHERE attempt_uid = ?
`, attemptUID)
	attempt, err := scanAttempt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("attempt not found: attempt_uid=%s", attemptUID)
		} else {
			log.Error("failed to get attempt: %v", err)
		}
		return nil, err
	}
	return attempt, nil
}

func (r *attemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: user_id=%s, activity_type=%s, course_id=%s", filter.UserID, filter.ActivityType, filter.CourseID)

	query := applyAttemptFilter(sqlBuilder.Select(attemptColumns).From("attempts"), filter).
		OrderBy("created_at ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build attempts query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, *attempt)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

func (r *attemptRepository) Count(ctx context.Context, filter models.AttemptFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	sqlStr, args, err := applyAttemptFilter(sqlBuilder.Select("COUNT(*)").From("attempts"), filter).ToSql()
	if err != nil {
		log.Error("failed to build attempts count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count attempts: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *attemptRepository) ListForUserSince(ctx context.Context, userID string, since time.Time) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts for analytics: user_id=%s, since=%v", userID, since)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+attemptColumns+`
FROM attempts
WHERE user_id = ? AND created_at >= ?
ORDER BY created_at ASC
`, userID, since)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, *attempt)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

func (r *attemptRepository) NextAttemptNumber(ctx context.Context, userID, activityID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
SELECT MAX(attempt_number)
FROM attempts
WHERE user_id = ? AND activity_id = ?
`, userID, activityID).Scan(&max)
	if err != nil {
		log.Error("failed to resolve next attempt number: %v", err)
		return 0, err
	}
	return int(max.Int64) + 1, nil
}

func applyAttemptFilter(query squirrel.SelectBuilder, filter models.AttemptFilter) squirrel.SelectBuilder {
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.ActivityID != "" {
		query = query.Where(squirrel.Eq{"activity_id": filter.ActivityID})
	}
	if filter.ActivityType != "" {
		query = query.Where(squirrel.Eq{"activity_type": filter.ActivityType})
	}
	if filter.CourseID != "" {
		query = query.Where(squirrel.Eq{"course_id": filter.CourseID})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": *filter.Since})
	}
	if filter.Until != nil {
		query = query.Where(squirrel.LtOrEq{"created_at": *filter.Until})
	}
	return query
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*models.Attempt, error) {
	var a models.Attempt
	var score sql.NullFloat64
	err := row.Scan(&a.ID, &a.AttemptUID, &a.UserID, &a.ActivityID, &a.ActivityType, &a.LessonID, &a.CourseID, &a.Correct, &score, &a.AttemptNumber, &a.TimeSpentMs, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if score.Valid {
		a.Score = &score.Float64
	}
	return &a, nil
}
