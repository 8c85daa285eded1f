package models

import "time"

// Completion is one row of the completion ledger.
type Completion struct {
	ID              int64     `db:"id" json:"-"`
	UserID          string    `db:"user_id" json:"-"`
	LessonID        string    `db:"lesson_id" json:"lessonId" example:"spanish-basics-1"`
	CompletedAt     time.Time `db:"completed_at" json:"completedAt"`
	TokensEarned    int       `db:"tokens_earned" json:"tokensEarned" example:"1"`
	RewardStatus    string    `db:"reward_status" json:"rewardStatus" example:"issued"`
	RewardReference string    `db:"reward_reference" json:"rewardReference,omitempty"`
}

// PendingReward is a stored completion whose transfer failed before broadcast.
type PendingReward struct {
	UserID        string    `db:"user_id"`
	LessonID      string    `db:"lesson_id"`
	WalletAddress string    `db:"wallet_address"`
	CompletedAt   time.Time `db:"completed_at"`
}

// Stats aggregates the ledger of one user
// @Description Learner statistics
type Stats struct {
	TotalLessons int `db:"total_lessons" json:"totalLessons" example:"12"`
	TotalTokens  int `db:"total_tokens" json:"totalTokens" example:"12"`
}

// Streak counts completions inside the trailing window
// @Description Learner streak
type Streak struct {
	Streak int `json:"streak" example:"3"`
}
