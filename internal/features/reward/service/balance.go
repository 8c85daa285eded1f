package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	apperrors "yap-backend/internal/common/errors"
	"yap-backend/internal/common/validation"
	"yap-backend/internal/features/reward/models"
)

var ErrLedgerNotConfigured = errors.New("token contract is not configured")

// BalanceReader reads token balances from the ledger.
type BalanceReader interface {
	BalanceOf(ctx context.Context, owner string) (decimal.Decimal, error)
}

type BalanceService struct {
	reader BalanceReader
}

// NewBalanceService accepts a nil reader when no token contract is configured.
func NewBalanceService(reader BalanceReader) *BalanceService {
	return &BalanceService{reader: reader}
}

func (s *BalanceService) GetBalance(ctx context.Context, walletAddress string) (*models.Balance, error) {
	wallet, err := validation.NormalizeWalletAddress(walletAddress)
	if err != nil {
		return nil, apperrors.NewValidationError("walletAddress", err.Error())
	}
	if s.reader == nil {
		return nil, apperrors.NewExternalAPIError("token ledger", ErrLedgerNotConfigured)
	}

	balance, err := s.reader.BalanceOf(ctx, wallet)
	if err != nil {
		return nil, apperrors.NewExternalAPIError("token ledger", err)
	}
	return &models.Balance{WalletAddress: wallet, Balance: balance}, nil
}
