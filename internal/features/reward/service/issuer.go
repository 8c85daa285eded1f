package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"yap-backend/internal/common/metrics"
	"yap-backend/internal/features/reward/models"
)

// TokenLedger moves reward tokens on the external ledger and returns the
// transaction reference.
type TokenLedger interface {
	Transfer(ctx context.Context, to string, amount decimal.Decimal) (string, error)
}

// Issuer wraps a TokenLedger so that every call ends in exactly one tagged
// Result. It never returns an error and never blocks longer than timeout.
type Issuer struct {
	ledger     TokenLedger
	configured bool
	timeout    time.Duration
	logger     *zap.Logger
}

// NewIssuer returns a configured issuer backed by ledger.
func NewIssuer(ledger TokenLedger, timeout time.Duration, logger *zap.Logger) *Issuer {
	return &Issuer{
		ledger:     ledger,
		configured: ledger != nil,
		timeout:    timeout,
		logger:     logger,
	}
}

// NewUnconfiguredIssuer returns an issuer that skips every transfer.
func NewUnconfiguredIssuer(logger *zap.Logger) *Issuer {
	return &Issuer{logger: logger}
}

func (i *Issuer) Configured() bool {
	return i.configured
}

func (i *Issuer) Issue(ctx context.Context, walletAddress string, amount decimal.Decimal) (result models.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = models.Failed(fmt.Errorf("reward transfer panicked: %v", r), "")
		}
		metrics.RecordReward(string(result.Status), time.Since(start))
	}()

	if !i.configured {
		return models.Skipped(models.RefNoTransferNeeded)
	}
	if !amount.IsPositive() {
		return models.Skipped(models.RefNoTransferNeeded)
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	ref, err := i.ledger.Transfer(ctx, walletAddress, amount)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("reward transfer timed out after %s: %w", i.timeout, err)
		}
		return models.Failed(err, ref)
	}

	i.logger.Info("Reward issued",
		zap.String("wallet_address", walletAddress),
		zap.String("amount", amount.String()),
		zap.String("tx_hash", ref),
		zap.Duration("duration", time.Since(start)),
	)
	return models.Issued(ref)
}
