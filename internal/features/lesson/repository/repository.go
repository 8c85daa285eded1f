package repository

import (
	"context"
	"time"

	"yap-backend/internal/features/lesson/models"
)

// LessonRepository is the completion ledger. (user_id, lesson_id) is unique.
type LessonRepository interface {
	// RecordCompletion inserts c unless the pair already exists. created is
	// false for a duplicate and the stored row is left untouched.
	RecordCompletion(ctx context.Context, c *models.Completion) (created bool, err error)
	HasCompletion(ctx context.Context, userID, lessonID string) (bool, error)
	// ListCompletions returns the user's completions newest first.
	ListCompletions(ctx context.Context, userID string) ([]models.Completion, error)
	CountRecent(ctx context.Context, userID string, since time.Time) (int, error)
	Stats(ctx context.Context, userID string) (*models.Stats, error)

	// ListFailedRewards returns completions whose transfer never reached the
	// chain, oldest first.
	ListFailedRewards(ctx context.Context, limit int) ([]models.PendingReward, error)
	// UpdateReward moves a row from fromStatus to status. It reports false
	// when the row was no longer in fromStatus.
	UpdateReward(ctx context.Context, userID, lessonID, fromStatus, status, reference string) (bool, error)
}
