package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"yap-backend/internal/common/cache"
	apperrors "yap-backend/internal/common/errors"
	"yap-backend/internal/common/validation"
	"yap-backend/internal/features/user/mapper"
	"yap-backend/internal/features/user/models"
	"yap-backend/internal/features/user/repository"
)

const (
	profileCachePrefix = "user:profile:"
	displayNamePrefix  = "User_"
	displayNameChars   = 6
)

type userService struct {
	repo         repository.UserRepository
	cache        *cache.CacheService
	profileTTL   time.Duration
	passwordCost int
	logger       *zap.Logger
}

// NewUserService builds the directory. cache may be nil.
func NewUserService(repo repository.UserRepository, profileCache *cache.CacheService, profileTTL time.Duration, logger *zap.Logger) UserService {
	return &userService{
		repo:         repo,
		cache:        profileCache,
		profileTTL:   profileTTL,
		passwordCost: bcrypt.DefaultCost,
		logger:       logger,
	}
}

// DisplayName derives the placeholder name for a new wallet, e.g. User_0x5290.
func DisplayName(walletAddress string) string {
	if len(walletAddress) > displayNameChars {
		walletAddress = walletAddress[:displayNameChars]
	}
	return displayNamePrefix + walletAddress
}

func normalizeWallet(walletAddress string) (string, error) {
	wallet, err := validation.NormalizeWalletAddress(walletAddress)
	if err != nil {
		return "", apperrors.NewValidationError("walletAddress", err.Error())
	}
	return wallet, nil
}

func (s *userService) ResolveOrCreate(ctx context.Context, walletAddress string) (*models.User, error) {
	wallet, err := normalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByWallet(ctx, wallet)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperrors.NewStorageError("get user by wallet", err)
	}

	user, created, err := s.repo.CreateIfAbsent(ctx, &models.User{
		ID:            uuid.NewString(),
		WalletAddress: wallet,
		Name:          DisplayName(wallet),
	})
	if err != nil {
		return nil, apperrors.NewStorageError("create user", err)
	}

	if created {
		s.logger.Info("User created",
			zap.String("user_id", user.ID),
			zap.String("wallet_address", wallet),
		)
	}
	return user, nil
}

func (s *userService) FindByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	wallet, err := normalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", wallet)
		}
		return nil, apperrors.NewStorageError("get user by wallet", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, walletAddress string) (*models.Profile, error) {
	wallet, err := normalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	err = s.cache.GetOrSet(ctx, profileCachePrefix+wallet, &profile, s.profileTTL, func() (interface{}, error) {
		user, err := s.FindByWallet(ctx, wallet)
		if err != nil {
			return nil, err
		}
		return mapper.ToProfile(user), nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, walletAddress string, req models.UpdateProfileRequest) (*models.Profile, error) {
	wallet, err := normalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if err := validation.ValidateName(name); err != nil {
		return nil, apperrors.NewValidationError("name", err.Error())
	}
	language := strings.TrimSpace(req.LanguageToLearn)
	if err := validation.ValidateLanguage(language); err != nil {
		return nil, apperrors.NewValidationError("languageToLearn", err.Error())
	}

	user, err := s.repo.UpdateProfile(ctx, wallet, name, language)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", wallet)
		}
		return nil, apperrors.NewStorageError("update profile", err)
	}

	s.invalidate(ctx, wallet)
	return mapper.ToProfile(user), nil
}

// Signup attaches email credentials to the wallet's user, creating the user
// when the wallet is new. A wallet can be registered once.
func (s *userService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	language := strings.TrimSpace(req.LanguageToLearn)

	if err := validation.ValidateName(name); err != nil {
		return nil, apperrors.NewValidationError("name", err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperrors.NewValidationError("email", err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationError("password", err.Error())
	}
	if err := validation.ValidateLanguage(language); err != nil {
		return nil, apperrors.NewValidationError("languageToLearn", err.Error())
	}

	user, err := s.ResolveOrCreate(ctx, req.WalletAddress)
	if err != nil {
		return nil, err
	}
	if user.HasCredentials() {
		return nil, apperrors.NewConflictError("wallet", "account already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.passwordCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	user, err = s.repo.SetCredentials(ctx, user.ID, email, string(hash), name, language)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewConflictError("email", "email already registered")
		}
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return nil, apperrors.NewConflictError("wallet", "account already registered")
		}
		return nil, apperrors.NewStorageError("set credentials", err)
	}

	s.invalidate(ctx, user.WalletAddress)
	s.logger.Info("User signed up",
		zap.String("user_id", user.ID),
		zap.String("wallet_address", user.WalletAddress),
	)

	return &models.AuthResponse{Success: true, UserID: user.ID, Profile: mapper.ToProfile(user)}, nil
}

func (s *userService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("email", "email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, apperrors.NewStorageError("get user by email", err)
	}
	if !user.PasswordHash.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash.String), []byte(req.Password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	return &models.AuthResponse{Success: true, UserID: user.ID, Profile: mapper.ToProfile(user)}, nil
}

func (s *userService) invalidate(ctx context.Context, wallet string) {
	if err := s.cache.Delete(ctx, profileCachePrefix+wallet); err != nil {
		s.logger.Warn("Failed to invalidate profile cache",
			zap.String("wallet_address", wallet),
			zap.Error(err),
		)
	}
}
