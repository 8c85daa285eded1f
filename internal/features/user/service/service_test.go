package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"yap-backend/internal/common/cache"
	apperrors "yap-backend/internal/common/errors"
	"yap-backend/internal/features/user/models"
	"yap-backend/internal/features/user/repository"
)

const wallet = "0x52908400098527886e0f7030069857d2e4169ee7"

// memoryRepo mimics the unique constraints of the users table.
type memoryRepo struct {
	mu       sync.Mutex
	byWallet map[string]*models.User
	inserts  int
	reads    int
	err      error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byWallet: make(map[string]*models.User)}
}

func (r *memoryRepo) GetByWallet(_ context.Context, walletAddress string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byWallet[walletAddress]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byWallet {
		if u.Email.Valid && strings.EqualFold(u.Email.String, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memoryRepo) CreateIfAbsent(_ context.Context, user *models.User) (*models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, false, r.err
	}
	if existing, ok := r.byWallet[user.WalletAddress]; ok {
		cp := *existing
		return &cp, false, nil
	}
	cp := *user
	cp.CreatedAt = time.Now()
	r.byWallet[user.WalletAddress] = &cp
	r.inserts++
	out := cp
	return &out, true, nil
}

func (r *memoryRepo) UpdateProfile(_ context.Context, walletAddress, name, languageToLearn string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byWallet[walletAddress]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Name, u.LanguageToLearn = name, languageToLearn
	cp := *u
	return &cp, nil
}

func (r *memoryRepo) SetCredentials(_ context.Context, userID, email, passwordHash, name, languageToLearn string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var target *models.User
	for _, u := range r.byWallet {
		if u.Email.Valid && strings.EqualFold(u.Email.String, email) && u.ID != userID {
			return nil, repository.ErrEmailTaken
		}
		if u.ID == userID {
			target = u
		}
	}
	if target == nil {
		return nil, repository.ErrUserNotFound
	}
	if target.PasswordHash.Valid {
		return nil, repository.ErrAlreadyRegistered
	}
	target.Email = sql.NullString{String: email, Valid: true}
	target.PasswordHash = sql.NullString{String: passwordHash, Valid: true}
	target.Name, target.LanguageToLearn = name, languageToLearn
	cp := *target
	return &cp, nil
}

func newTestService(t *testing.T, repo repository.UserRepository) (*userService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewUserService(repo, cache.NewCacheService(client), time.Minute, zap.NewNop()).(*userService)
	svc.passwordCost = bcrypt.MinCost
	return svc, mr
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "User_0x5290", DisplayName(wallet))
	assert.Equal(t, "User_0x1", DisplayName("0x1"))
}

func TestResolveOrCreate_CreatesOnce(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	first, err := svc.ResolveOrCreate(ctx, wallet[:2]+strings.ToUpper(wallet[2:]))
	require.NoError(t, err)
	assert.Equal(t, wallet, first.WalletAddress)
	assert.Equal(t, "User_0x5290", first.Name)
	assert.NotEmpty(t, first.ID)

	second, err := svc.ResolveOrCreate(ctx, wallet)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.inserts)
}

func TestResolveOrCreate_Concurrent(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(t, repo)

	const workers = 16
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := svc.ResolveOrCreate(context.Background(), wallet)
			if assert.NoError(t, err) {
				ids[i] = u.ID
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, repo.inserts)
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestResolveOrCreate_Errors(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(t, repo)

	_, err := svc.ResolveOrCreate(context.Background(), "not-a-wallet")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	repo.err = errors.New("connection refused")
	_, err = svc.ResolveOrCreate(context.Background(), wallet)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}

func TestGetProfile_CacheAside(t *testing.T) {
	repo := newMemoryRepo()
	svc, mr := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, wallet)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, mr.Exists(profileCachePrefix+wallet))

	_, err = svc.ResolveOrCreate(ctx, wallet)
	require.NoError(t, err)

	readsBefore := repo.reads
	p1, err := svc.GetProfile(ctx, wallet)
	require.NoError(t, err)
	p2, err := svc.GetProfile(ctx, wallet)
	require.NoError(t, err)

	assert.Equal(t, p1.UserID, p2.UserID)
	assert.Equal(t, readsBefore+1, repo.reads)
	assert.True(t, mr.Exists(profileCachePrefix+wallet))
}

func TestUpdateProfile_InvalidatesCache(t *testing.T) {
	repo := newMemoryRepo()
	svc, mr := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.ResolveOrCreate(ctx, wallet)
	require.NoError(t, err)
	_, err = svc.GetProfile(ctx, wallet)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, wallet, models.UpdateProfileRequest{Name: " Ana ", LanguageToLearn: "spanish"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.False(t, mr.Exists(profileCachePrefix+wallet))

	profile, err := svc.GetProfile(ctx, wallet)
	require.NoError(t, err)
	assert.Equal(t, "spanish", profile.LanguageToLearn)

	_, err = svc.UpdateProfile(ctx, "0x0000000000000000000000000000000000000001", models.UpdateProfileRequest{Name: "Bo"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.UpdateProfile(ctx, wallet, models.UpdateProfileRequest{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSignupAndLogin(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	signup := models.SignupRequest{
		WalletAddress:   wallet,
		Name:            "Ana",
		Email:           "Learner@Example.com",
		Password:        "correct horse",
		LanguageToLearn: "spanish",
	}

	resp, err := svc.Signup(ctx, signup)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "learner@example.com", resp.Profile.Email)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "learner@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, login.UserID)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "learner@example.com", Password: "wrong password"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Signup(ctx, signup)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSignup_EmailTakenByOtherWallet(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	req := models.SignupRequest{WalletAddress: wallet, Name: "Ana", Email: "a@example.com", Password: "password1"}
	_, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	req.WalletAddress = "0x0000000000000000000000000000000000000002"
	_, err = svc.Signup(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSignup_ConcurrentSameWallet(t *testing.T) {
	repo := newMemoryRepo()
	svc, _ := newTestService(t, repo)

	const workers = 6
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Signup(context.Background(), models.SignupRequest{
				WalletAddress: wallet,
				Name:          "Ana",
				Email:         fmt.Sprintf("learner%d@example.com", i),
				Password:      "password1",
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
}

func TestSignup_Validation(t *testing.T) {
	svc, _ := newTestService(t, newMemoryRepo())

	tests := []struct {
		name string
		req  models.SignupRequest
	}{
		{name: "bad email", req: models.SignupRequest{WalletAddress: wallet, Name: "Ana", Email: "nope", Password: "password1"}},
		{name: "short password", req: models.SignupRequest{WalletAddress: wallet, Name: "Ana", Email: "a@example.com", Password: "short"}},
		{name: "bad wallet", req: models.SignupRequest{WalletAddress: "0x12", Name: "Ana", Email: "a@example.com", Password: "password1"}},
		{name: "empty name", req: models.SignupRequest{WalletAddress: wallet, Email: "a@example.com", Password: "password1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}
