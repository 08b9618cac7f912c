package wallet

import (
	"context"
	"time"

	"mesa/internal/models"
	"mesa/internal/repositories"

	"github.com/shopspring/decimal"
)

// Service is the wallet ledger.
type Service interface {
	// Lookups
	GetWallet(ctx context.Context, walletID uint) (*models.Wallet, error)
	GetByOwner(ctx context.Context, ownerID uint, role string) (*models.Wallet, error)

	// EnsureWallet returns the owner's wallet, creating an empty one if it
	// does not exist yet.
	EnsureWallet(ctx context.Context, ownerID uint, role string) (*models.Wallet, error)

	// ApplyDelta performs a single CAS attempt at the given version.
	// Returns ErrVersionConflict (retryable) or ErrInsufficientBalance
	// (terminal) on a zero-row update.
	ApplyDelta(ctx context.Context, walletID uint, delta decimal.Decimal, expectedVersion uint64) (*models.Wallet, error)

	// Credit and Debit wrap ApplyDelta in the bounded retry loop.
	Credit(ctx context.Context, walletID uint, amount decimal.Decimal) (*models.Wallet, error)
	Debit(ctx context.Context, walletID uint, amount decimal.Decimal) (*models.Wallet, error)

	// Bind returns a ledger backed by the given repository, used to scope
	// mutations to a caller's database transaction.
	Bind(repo repositories.WalletRepository) Service
}

// CacheOperator is the external read-through cache collaborator. Entries are
// invalidated after every successful mutation.
type CacheOperator interface {
	GetWallet(ctx context.Context, walletID uint) (*models.Wallet, bool, error)
	SetWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, walletID uint) error
}

// MetricsCollector records ledger operation outcomes.
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordRetry(operation string)
}
