package models

// CompleteLessonRequest is the body of a lesson completion
// @Description Lesson completion request
type CompleteLessonRequest struct {
	WalletAddress string `json:"walletAddress" example:"0x52908400098527886e0f7030069857d2e4169ee7"`
	LessonID      string `json:"lessonId" example:"spanish-basics-1"`
}

// CompletionResponse reports the outcome of a completion request
// @Description Lesson completion result
type CompletionResponse struct {
	Success              bool   `json:"success" example:"true"`
	TokensEarned         int    `json:"tokensEarned" example:"1"`
	TransactionReference string `json:"transactionReference" example:"0x5f2c8e0c9b1f4b7a2d6e3c1a0f9e8d7c6b5a4f3e2d1c0b9a8f7e6d5c4b3a2f1e"`
	AlreadyCompleted     bool   `json:"alreadyCompleted" example:"false"`
	RewardStatus         string `json:"rewardStatus" example:"issued"`
}
