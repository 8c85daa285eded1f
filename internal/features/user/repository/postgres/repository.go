package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"yap-backend/internal/features/user/models"
	"yap-backend/internal/features/user/repository"
	pgplatform "yap-backend/internal/platform/postgres"
)

const userColumns = `id, wallet_address, name, language_to_learn, email, password_hash, created_at, updated_at`

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE wallet_address = $1`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, walletAddress); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by wallet: %w", err)
	}
	return &user, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// CreateIfAbsent relies on the wallet unique constraint: a concurrent insert
// for the same wallet makes ours a no-op and the winner is read back.
func (r *postgresRepository) CreateIfAbsent(ctx context.Context, user *models.User) (*models.User, bool, error) {
	query := `
		INSERT INTO users (id, wallet_address, name, language_to_learn)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (wallet_address) DO NOTHING
		RETURNING ` + userColumns

	var stored models.User
	err := r.db.GetContext(ctx, &stored, query, user.ID, user.WalletAddress, user.Name, user.LanguageToLearn)
	switch {
	case err == nil:
		return &stored, true, nil
	case errors.Is(err, sql.ErrNoRows), pgplatform.IsUniqueViolation(err):
		existing, getErr := r.GetByWallet(ctx, user.WalletAddress)
		if getErr != nil {
			return nil, false, fmt.Errorf("failed to re-read user after conflict: %w", getErr)
		}
		return existing, false, nil
	default:
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, walletAddress, name, languageToLearn string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $2, language_to_learn = $3, updated_at = NOW()
		WHERE wallet_address = $1
		RETURNING ` + userColumns

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, walletAddress, name, languageToLearn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

func (r *postgresRepository) SetCredentials(ctx context.Context, userID, email, passwordHash, name, languageToLearn string) (*models.User, error) {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, name = $4, language_to_learn = $5, updated_at = NOW()
		WHERE id = $1 AND password_hash IS NULL
		RETURNING ` + userColumns

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID, email, passwordHash, name, languageToLearn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.credentialsMiss(ctx, userID)
		}
		if pgplatform.IsUniqueViolation(err) {
			return nil, repository.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to set credentials: %w", err)
	}
	return &user, nil
}

// credentialsMiss tells a missing user apart from one registered concurrently.
func (r *postgresRepository) credentialsMiss(ctx context.Context, userID string) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID); err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return repository.ErrUserNotFound
	}
	return repository.ErrAlreadyRegistered
}
