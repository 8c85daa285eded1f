package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	lessonmodels "yap-backend/internal/features/lesson/models"
	"yap-backend/internal/features/reward/models"
)

// RewardStore is the part of the completion ledger the worker needs.
type RewardStore interface {
	ListFailedRewards(ctx context.Context, limit int) ([]lessonmodels.PendingReward, error)
	UpdateReward(ctx context.Context, userID, lessonID, fromStatus, status, reference string) (bool, error)
}

type Issuer interface {
	Issue(ctx context.Context, walletAddress string, amount decimal.Decimal) models.Result
}

// RetryWorker periodically re-issues rewards whose transfer never reached the
// chain. Each row is moved to retrying first, so only one worker sends it.
type RetryWorker struct {
	store  RewardStore
	issuer Issuer
	amount decimal.Decimal
	batch  int
	cron   *cron.Cron
	logger *zap.Logger
}

func NewRetryWorker(store RewardStore, issuer Issuer, amount decimal.Decimal, batch int, logger *zap.Logger) *RetryWorker {
	return &RetryWorker{
		store:  store,
		issuer: issuer,
		amount: amount,
		batch:  batch,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
}

// Start schedules RunOnce with a cron spec such as "@every 5m".
func (w *RetryWorker) Start(schedule string) error {
	if _, err := w.cron.AddFunc(schedule, func() {
		if _, err := w.RunOnce(context.Background()); err != nil {
			w.logger.Error("Reward retry run failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	w.cron.Start()
	w.logger.Info("Reward retry worker started", zap.String("schedule", schedule))
	return nil
}

// Stop waits for a running job until ctx is done.
func (w *RetryWorker) Stop(ctx context.Context) {
	done := w.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		w.logger.Warn("Reward retry worker did not stop in time")
	}
}

// RunOnce processes one batch and returns the number of rewards issued.
func (w *RetryWorker) RunOnce(ctx context.Context) (int, error) {
	pending, err := w.store.ListFailedRewards(ctx, w.batch)
	if err != nil {
		return 0, err
	}

	issued := 0
	for _, p := range pending {
		log := w.logger.With(
			zap.String("user_id", p.UserID),
			zap.String("lesson_id", p.LessonID),
		)

		owned, err := w.store.UpdateReward(ctx, p.UserID, p.LessonID,
			string(models.StatusFailed), string(models.StatusRetrying), models.RefTransferFailed)
		if err != nil {
			log.Error("Failed to claim reward for retry", zap.Error(err))
			continue
		}
		if !owned {
			continue
		}

		start := time.Now()
		result := w.issuer.Issue(ctx, p.WalletAddress, w.amount)

		status, reference := result.Status, result.Reference
		if status == models.StatusSkipped {
			// Issuer lost its configuration; keep the row eligible.
			status, reference = models.StatusFailed, models.RefTransferFailed
		}

		if _, err := w.store.UpdateReward(ctx, p.UserID, p.LessonID,
			string(models.StatusRetrying), string(status), reference); err != nil {
			log.Error("Failed to store retried reward",
				zap.String("reward_status", string(status)),
				zap.String("reward_reference", reference),
				zap.Error(err),
			)
			continue
		}

		if status == models.StatusIssued {
			issued++
			log.Info("Reward retry succeeded",
				zap.String("tx_hash", reference),
				zap.Duration("duration", time.Since(start)),
			)
		} else {
			log.Warn("Reward retry failed", zap.String("reward_reference", reference), zap.Error(result.Err))
		}
	}

	return issued, nil
}
