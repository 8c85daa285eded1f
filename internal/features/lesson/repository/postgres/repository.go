package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"yap-backend/internal/features/lesson/models"
	"yap-backend/internal/features/lesson/repository"
	rewardmodels "yap-backend/internal/features/reward/models"
)

const completionColumns = `id, user_id, lesson_id, completed_at, tokens_earned, reward_status, reward_reference`

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) repository.LessonRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) RecordCompletion(ctx context.Context, c *models.Completion) (bool, error) {
	query := `
		INSERT INTO user_lessons (user_id, lesson_id, completed_at, tokens_earned, reward_status, reward_reference)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, lesson_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		c.UserID, c.LessonID, c.CompletedAt, c.TokensEarned, c.RewardStatus, c.RewardReference)
	if err != nil {
		return false, fmt.Errorf("failed to record completion: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

func (r *postgresRepository) HasCompletion(ctx context.Context, userID, lessonID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_lessons WHERE user_id = $1 AND lesson_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, lessonID); err != nil {
		return false, fmt.Errorf("failed to check completion: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ListCompletions(ctx context.Context, userID string) ([]models.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM user_lessons WHERE user_id = $1 ORDER BY completed_at DESC, id DESC`

	completions := make([]models.Completion, 0)
	if err := r.db.SelectContext(ctx, &completions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return completions, nil
}

func (r *postgresRepository) CountRecent(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM user_lessons WHERE user_id = $1 AND completed_at >= $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, since); err != nil {
		return 0, fmt.Errorf("failed to count recent completions: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	query := `
		SELECT COUNT(*) AS total_lessons, COALESCE(SUM(tokens_earned), 0) AS total_tokens
		FROM user_lessons
		WHERE user_id = $1`

	var stats models.Stats
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &stats, nil
}

func (r *postgresRepository) ListFailedRewards(ctx context.Context, limit int) ([]models.PendingReward, error) {
	query := `
		SELECT ul.user_id, ul.lesson_id, u.wallet_address, ul.completed_at
		FROM user_lessons ul
		JOIN users u ON u.id = ul.user_id
		WHERE ul.reward_status = $1 AND ul.reward_reference = $2
		ORDER BY ul.completed_at
		LIMIT $3`

	pending := make([]models.PendingReward, 0)
	err := r.db.SelectContext(ctx, &pending, query,
		string(rewardmodels.StatusFailed), rewardmodels.RefTransferFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed rewards: %w", err)
	}
	return pending, nil
}

func (r *postgresRepository) UpdateReward(ctx context.Context, userID, lessonID, fromStatus, status, reference string) (bool, error) {
	query := `
		UPDATE user_lessons
		SET reward_status = $4, reward_reference = $5
		WHERE user_id = $1 AND lesson_id = $2 AND reward_status = $3`

	res, err := r.db.ExecContext(ctx, query, userID, lessonID, fromStatus, status, reference)
	if err != nil {
		return false, fmt.Errorf("failed to update reward: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}
