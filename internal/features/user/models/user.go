package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table. WalletAddress is always lowercase.
type User struct {
	ID              string         `db:"id"`
	WalletAddress   string         `db:"wallet_address"`
	Name            string         `db:"name"`
	LanguageToLearn string         `db:"language_to_learn"`
	Email           sql.NullString `db:"email"`
	PasswordHash    sql.NullString `db:"password_hash"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// HasCredentials reports whether the user completed email signup.
func (u *User) HasCredentials() bool {
	return u.Email.Valid && u.PasswordHash.Valid
}

// Profile is the public view of a user
// @Description Public user profile
type Profile struct {
	UserID          string    `json:"userId" example:"6f1c2b8e-8a43-4f0e-9d55-3c1b7b7e2a10"`
	WalletAddress   string    `json:"walletAddress" example:"0x52908400098527886e0f7030069857d2e4169ee7"`
	Name            string    `json:"name" example:"User_0x5290"`
	LanguageToLearn string    `json:"languageToLearn" example:"spanish"`
	Email           string    `json:"email,omitempty" example:"learner@example.com"`
	CreatedAt       time.Time `json:"createdAt" example:"2025-03-15T14:30:00Z"`
}
