package repositories

import (
	"context"
	"fmt"
	"time"

	"mesa/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository is the durable wallet store. ApplyDelta is the single
// atomic conditional-update primitive the whole ledger's correctness rests
// on; everything else is plain reads and inserts.
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByID(ctx context.Context, id uint) (*models.Wallet, error)
	GetByOwner(ctx context.Context, ownerID uint, role string) (*models.Wallet, error)

	// ApplyDelta adds delta to the balance and bumps the version in one
	// conditional statement guarded by the expected version and a
	// non-negative resulting balance. On success it returns the updated row.
	// A zero-row result (nil, false) is ambiguous between a stale version
	// and insufficient funds and must be disambiguated by the caller.
	ApplyDelta(ctx context.Context, id uint, delta decimal.Decimal, expectedVersion uint64) (*models.Wallet, bool, error)
}

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a gorm-backed wallet repository. Store.Wallets
// returns the same implementation; this constructor exists for callers that
// wire the ledger without going through a Store.
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByID(ctx context.Context, id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).First(&wallet, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByOwner(ctx context.Context, ownerID uint, role string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND owner_role = ?", ownerID, role).
		First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) ApplyDelta(ctx context.Context, id uint, delta decimal.Decimal, expectedVersion uint64) (*models.Wallet, bool, error) {
	var wallet models.Wallet
	result := r.db.WithContext(ctx).
		Model(&wallet).
		Clauses(clause.Returning{}).
		Where("id = ? AND version = ? AND balance + ? >= 0", id, expectedVersion, delta).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to apply wallet delta: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return &wallet, true, nil
}
