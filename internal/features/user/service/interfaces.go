package service

import (
	"context"

	"yap-backend/internal/features/user/models"
)

// UserService is the user directory: wallet address to canonical user.
type UserService interface {
	ResolveOrCreate(ctx context.Context, walletAddress string) (*models.User, error)
	FindByWallet(ctx context.Context, walletAddress string) (*models.User, error)
	GetProfile(ctx context.Context, walletAddress string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, walletAddress string, req models.UpdateProfileRequest) (*models.Profile, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
}
