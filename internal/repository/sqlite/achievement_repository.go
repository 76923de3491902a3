package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/models"
	"github.com/lucasmr/learnpulse/internal/repository"
)

type achievementRepository struct {
	db *sql.DB
}

// NewAchievementRepository creates a new AchievementRepository implementation
func NewAchievementRepository(db *sql.DB) repository.AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) ListForUser(ctx context.Context, userID string) ([]models.Achievement, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")
	log.Debug("listing achievements: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, code, earned_at
FROM achievements
WHERE user_id = ?
ORDER BY earned_at ASC, id ASC
`, userID)
	if err != nil {
		log.Error("failed to query achievements: %v", err)
		return nil, err
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Code, &a.EarnedAt); err != nil {
			log.Error("failed to scan achievement row: %v", err)
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (r *achievementRepository) InsertIfNew(ctx context.Context, userID, code string, earnedAt time.Time) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")
	log.Debug("recording achievement: user_id=%s, code=%s", userID, code)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO achievements (user_id, code, earned_at)
VALUES (?, ?, ?)
ON CONFLICT (user_id, code) DO NOTHING
`, userID, code, earnedAt)
	if err != nil {
		log.Error("failed to insert achievement: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
