package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"yap-backend/internal/common/cache"
	apperrors "yap-backend/internal/common/errors"
	"yap-backend/internal/common/metrics"
	"yap-backend/internal/common/validation"
	"yap-backend/internal/features/lesson/models"
	"yap-backend/internal/features/lesson/repository"
	rewardmodels "yap-backend/internal/features/reward/models"
)

const (
	statsCachePrefix = "lesson:stats:"

	// TokensPerLesson is the ledger credit of one completion.
	TokensPerLesson = 1
)

// Completion states, logged on every transition.
const (
	stateStart           = "START"
	stateUserResolved    = "USER_RESOLVED"
	stateRewardAttempted = "REWARD_ATTEMPTED"
	stateRecorded        = "RECORDED"
	stateDone            = "DONE"
	stateFailed          = "FAILED"
)

type Config struct {
	RewardAmount     decimal.Decimal
	StreakWindowDays int
	StatsTTL         time.Duration
}

type lessonService struct {
	repo   repository.LessonRepository
	users  UserDirectory
	issuer RewardIssuer
	claims ClaimStore
	cache  *cache.CacheService
	cfg    Config
	now    func() time.Time
	logger *zap.Logger
}

// NewLessonService wires the completion flow. claims and statsCache may be nil
// when Redis is disabled.
func NewLessonService(
	repo repository.LessonRepository,
	users UserDirectory,
	issuer RewardIssuer,
	claims ClaimStore,
	statsCache *cache.CacheService,
	cfg Config,
	logger *zap.Logger,
) LessonService {
	return &lessonService{
		repo:   repo,
		users:  users,
		issuer: issuer,
		claims: claims,
		cache:  statsCache,
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
	}
}

// CompleteLesson resolves the user, attempts the reward and records the
// completion. Reward problems never fail the request; storage problems do.
func (s *lessonService) CompleteLesson(ctx context.Context, req models.CompleteLessonRequest) (*models.CompletionResponse, error) {
	lessonID := strings.TrimSpace(req.LessonID)
	if err := validation.ValidateLessonID(lessonID); err != nil {
		metrics.RecordCompletion("invalid")
		return nil, apperrors.NewValidationError("lessonId", err.Error())
	}
	wallet, err := validation.NormalizeWalletAddress(req.WalletAddress)
	if err != nil {
		metrics.RecordCompletion("invalid")
		return nil, apperrors.NewValidationError("walletAddress", err.Error())
	}

	log := s.logger.With(zap.String("wallet_address", wallet), zap.String("lesson_id", lessonID))
	log.Debug("Lesson completion", zap.String("state", stateStart))

	user, err := s.users.ResolveOrCreate(ctx, wallet)
	if err != nil {
		return nil, s.fail(log, stateStart, "resolve user", err)
	}
	log = log.With(zap.String("user_id", user.ID))
	log.Debug("Lesson completion", zap.String("state", stateUserResolved))

	// A transfer may be in flight from here on; finish even if the client leaves.
	ctx = context.WithoutCancel(ctx)

	reward, claimed, err := s.attemptReward(ctx, log, user.ID, wallet, lessonID)
	if err != nil {
		return nil, s.fail(log, stateUserResolved, "check completion", err)
	}
	log.Debug("Lesson completion",
		zap.String("state", stateRewardAttempted),
		zap.String("reward_status", string(reward.Status)),
		zap.String("reward_reference", reward.Reference),
	)

	created, err := s.repo.RecordCompletion(ctx, &models.Completion{
		UserID:          user.ID,
		LessonID:        lessonID,
		CompletedAt:     s.now().UTC(),
		TokensEarned:    TokensPerLesson,
		RewardStatus:    string(reward.Status),
		RewardReference: reward.Reference,
	})
	if err != nil {
		if claimed && !onChain(reward) {
			s.releaseClaim(ctx, log, user.ID, lessonID)
		}
		if onChain(reward) {
			log.Error("Reward sent but completion not recorded", zap.String("tx_hash", reward.Reference))
		}
		return nil, s.fail(log, stateRewardAttempted, "record completion", err)
	}
	log.Debug("Lesson completion", zap.String("state", stateRecorded), zap.Bool("created", created))

	if created {
		metrics.RecordCompletion("created")
		s.invalidateStats(ctx, log, user.ID)
	} else {
		metrics.RecordCompletion("duplicate")
		if reward.Status == rewardmodels.StatusIssued {
			log.Error("Reward issued for a duplicate completion", zap.String("tx_hash", reward.Reference))
		}
	}

	log.Debug("Lesson completion", zap.String("state", stateDone))
	return &models.CompletionResponse{
		Success:              true,
		TokensEarned:         TokensPerLesson,
		TransactionReference: reward.Reference,
		AlreadyCompleted:     !created,
		RewardStatus:         string(reward.Status),
	}, nil
}

// attemptReward issues the lesson reward at most once per (user, lesson).
// claimed reports whether this call holds the issuance claim.
func (s *lessonService) attemptReward(ctx context.Context, log *zap.Logger, userID, wallet, lessonID string) (rewardmodels.Result, bool, error) {
	done, err := s.repo.HasCompletion(ctx, userID, lessonID)
	if err != nil {
		return rewardmodels.Result{}, false, err
	}
	if done {
		return rewardmodels.Skipped(rewardmodels.RefAlreadyCompleted), false, nil
	}

	claimed := false
	if s.claims != nil {
		won, err := s.claims.Claim(ctx, userID, lessonID)
		switch {
		case err != nil:
			log.Warn("Reward claim unavailable, issuing without claim", zap.Error(err))
		case !won:
			return rewardmodels.Skipped(rewardmodels.RefClaimPending), false, nil
		default:
			claimed = true
		}
	}

	reward := s.issuer.Issue(ctx, wallet, s.cfg.RewardAmount)
	if reward.Status == rewardmodels.StatusFailed {
		log.Warn("RewardIssuanceDegraded",
			zap.String("reward_reference", reward.Reference),
			zap.Error(reward.Err),
		)
	}
	return reward, claimed, nil
}

func onChain(r rewardmodels.Result) bool {
	return r.Status == rewardmodels.StatusIssued || (r.Status == rewardmodels.StatusFailed && !r.Retryable())
}

func (s *lessonService) fail(log *zap.Logger, from, operation string, err error) error {
	metrics.RecordCompletion("failed")
	log.Debug("Lesson completion", zap.String("state", stateFailed), zap.String("from", from))
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.NewStorageError(operation, err)
}

func (s *lessonService) releaseClaim(ctx context.Context, log *zap.Logger, userID, lessonID string) {
	if s.claims == nil {
		return
	}
	if err := s.claims.Release(ctx, userID, lessonID); err != nil {
		log.Warn("Failed to release reward claim", zap.Error(err))
	}
}

func (s *lessonService) invalidateStats(ctx context.Context, log *zap.Logger, userID string) {
	if err := s.cache.Delete(ctx, statsCachePrefix+userID); err != nil {
		log.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}

// lookup returns nil without error for a well-formed wallet nobody has used.
func (s *lessonService) lookup(ctx context.Context, walletAddress string) (string, error) {
	user, err := s.users.FindByWallet(ctx, walletAddress)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.IsNotFound() {
			return "", nil
		}
		return "", err
	}
	return user.ID, nil
}

func (s *lessonService) ListCompletions(ctx context.Context, walletAddress string) ([]models.Completion, error) {
	userID, err := s.lookup(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return []models.Completion{}, nil
	}

	completions, err := s.repo.ListCompletions(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorageError("list completions", err)
	}
	return completions, nil
}

func (s *lessonService) Stats(ctx context.Context, walletAddress string) (*models.Stats, error) {
	userID, err := s.lookup(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return &models.Stats{}, nil
	}

	var stats models.Stats
	err = s.cache.GetOrSet(ctx, statsCachePrefix+userID, &stats, s.cfg.StatsTTL, func() (interface{}, error) {
		st, err := s.repo.Stats(ctx, userID)
		if err != nil {
			return nil, apperrors.NewStorageError("get stats", err)
		}
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Streak counts completions in the trailing StreakWindowDays window.
func (s *lessonService) Streak(ctx context.Context, walletAddress string) (*models.Streak, error) {
	userID, err := s.lookup(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return &models.Streak{}, nil
	}

	since := s.now().Add(-time.Duration(s.cfg.StreakWindowDays) * 24 * time.Hour)
	count, err := s.repo.CountRecent(ctx, userID, since)
	if err != nil {
		return nil, apperrors.NewStorageError("count recent completions", err)
	}
	return &models.Streak{Streak: count}, nil
}
