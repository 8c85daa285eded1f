package models

import "github.com/shopspring/decimal"

// Status tags the outcome of one reward issuance attempt.
type Status string

const (
	StatusIssued  Status = "issued"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	// StatusRetrying marks a stored failed reward picked up by the retry worker.
	StatusRetrying Status = "retrying"
)

// Sentinel references used when no on-chain transaction hash exists.
const (
	RefNoTransferNeeded = "no-transfer-needed"
	RefAlreadyCompleted = "lesson-already-completed"
	RefClaimPending     = "reward-claim-pending"
	RefTransferFailed   = "transfer-failed"
)

// Result is the tagged outcome of Issuer.Issue. Reference is a transaction
// hash or one of the sentinels above; Err is set only for StatusFailed.
type Result struct {
	Status    Status
	Reference string
	Err       error
}

func Issued(txHash string) Result {
	return Result{Status: StatusIssued, Reference: txHash}
}

func Skipped(reference string) Result {
	return Result{Status: StatusSkipped, Reference: reference}
}

// Failed records a failed transfer. txHash is non-empty when the transaction
// was broadcast but not confirmed.
func Failed(err error, txHash string) Result {
	ref := txHash
	if ref == "" {
		ref = RefTransferFailed
	}
	return Result{Status: StatusFailed, Reference: ref, Err: err}
}

// Retryable reports whether the transfer never reached the chain.
func (r Result) Retryable() bool {
	return r.Status == StatusFailed && r.Reference == RefTransferFailed
}

// Balance is the token balance of a wallet
// @Description Reward token balance
type Balance struct {
	WalletAddress string          `json:"walletAddress" example:"0x52908400098527886e0f7030069857d2e4169ee7"`
	Balance       decimal.Decimal `json:"balance" swaggertype:"string" example:"12.5"`
}
