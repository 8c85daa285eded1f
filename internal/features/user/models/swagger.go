package models

// SignupRequest registers email credentials for a wallet
type SignupRequest struct {
	WalletAddress   string `json:"walletAddress" binding:"required" example:"0x52908400098527886e0f7030069857d2e4169ee7"`
	Name            string `json:"name" binding:"required" example:"Ana"`
	Email           string `json:"email" binding:"required" example:"learner@example.com"`
	Password        string `json:"password" binding:"required" example:"correct horse battery"`
	LanguageToLearn string `json:"languageToLearn" example:"spanish"`
}

// LoginRequest authenticates with email and password
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"learner@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery"`
}

// UpdateProfileRequest changes the editable profile fields
type UpdateProfileRequest struct {
	Name            string `json:"name" binding:"required" example:"Ana"`
	LanguageToLearn string `json:"languageToLearn" example:"portuguese"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Success bool     `json:"success" example:"true"`
	UserID  string   `json:"userId" example:"6f1c2b8e-8a43-4f0e-9d55-3c1b7b7e2a10"`
	Profile *Profile `json:"profile"`
}
