package repository

import (
	"context"
	"errors"

	"yap-backend/internal/features/user/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	// ErrAlreadyRegistered is returned when credentials are already set for a user.
	ErrAlreadyRegistered = errors.New("account already registered")
)

type UserRepository interface {
	GetByWallet(ctx context.Context, walletAddress string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateIfAbsent inserts user unless its wallet is already known and
	// returns the stored row. created is false when another row won.
	CreateIfAbsent(ctx context.Context, user *models.User) (stored *models.User, created bool, err error)
	UpdateProfile(ctx context.Context, walletAddress, name, languageToLearn string) (*models.User, error)
	SetCredentials(ctx context.Context, userID, email, passwordHash, name, languageToLearn string) (*models.User, error)
}
