package service

import (
	"context"

	"github.com/shopspring/decimal"

	"yap-backend/internal/features/lesson/models"
	rewardmodels "yap-backend/internal/features/reward/models"
	usermodels "yap-backend/internal/features/user/models"
)

type LessonService interface {
	CompleteLesson(ctx context.Context, req models.CompleteLessonRequest) (*models.CompletionResponse, error)
	ListCompletions(ctx context.Context, walletAddress string) ([]models.Completion, error)
	Stats(ctx context.Context, walletAddress string) (*models.Stats, error)
	Streak(ctx context.Context, walletAddress string) (*models.Streak, error)
}

// UserDirectory resolves wallets to users.
type UserDirectory interface {
	ResolveOrCreate(ctx context.Context, walletAddress string) (*usermodels.User, error)
	FindByWallet(ctx context.Context, walletAddress string) (*usermodels.User, error)
}

// RewardIssuer never fails; the outcome is carried by the Result.
type RewardIssuer interface {
	Issue(ctx context.Context, walletAddress string, amount decimal.Decimal) rewardmodels.Result
}

// ClaimStore grants the right to issue the reward of one (user, lesson) pair.
type ClaimStore interface {
	Claim(ctx context.Context, userID, lessonID string) (bool, error)
	Release(ctx context.Context, userID, lessonID string) error
}
