package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/repository"
)

type learnerRepository struct {
	db *sql.DB
}

// NewLearnerRepository creates a new LearnerRepository implementation
func NewLearnerRepository(db *sql.DB) repository.LearnerRepository {
	return &learnerRepository{db: db}
}

func (r *learnerRepository) Get(ctx context.Context, userID string) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("getting learner: user_id=%s", userID)

	var l models.Learner
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, display_name, created_at
FROM learners
WHERE user_id = ?
`, userID).Scan(&l.UserID, &l.DisplayName, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("learner not found: user_id=%s", userID)
		} else {
			log.Error("failed to get learner: %v", err)
		}
		return nil, err
	}
	return &l, nil
}

func (r *learnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("listing learners")

	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, display_name, created_at
FROM learners
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to query learners: %v", err)
		return nil, err
	}
	defer rows.Close()

	var learners []models.Learner
	for rows.Next() {
		var l models.Learner
		if err := rows.Scan(&l.UserID, &l.DisplayName, &l.CreatedAt); err != nil {
			log.Error("failed to scan learner row: %v", err)
			return nil, err
		}
		learners = append(learners, l)
	}
	log.Debug("found %d learners", len(learners))
	return learners, rows.Err()
}

func (r *learnerRepository) Insert(ctx context.Context, learner models.Learner) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("inserting learner: user_id=%s", learner.UserID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO learners (user_id, display_name, created_at)
VALUES (?, ?, ?)
`, learner.UserID, learner.DisplayName, learner.CreatedAt)
	if err != nil {
		log.Error("failed to insert learner: %v", err)
	}
	return err
}
