package repositories

import (
	"context"
	"fmt"

	"mesa/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository persists ledger transactions. Rows are inserted once
// and only their status fields are updated afterwards.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.LedgerTransaction) error
	GetByID(ctx context.Context, id uint) (*models.LedgerTransaction, error)
	GetByReference(ctx context.Context, reference string) (*models.LedgerTransaction, error)
	Update(ctx context.Context, txn *models.LedgerTransaction) error
	ListByWallet(ctx context.Context, walletID uint, limit, offset int) ([]models.LedgerTransaction, error)
	ListByOrder(ctx context.Context, orderID uint) ([]models.LedgerTransaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.LedgerTransaction) error {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.LedgerTransaction, error) {
	var txn models.LedgerTransaction
	if err := r.db.WithContext(ctx).First(&txn, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*models.LedgerTransaction, error) {
	var txn models.LedgerTransaction
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&txn).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) Update(ctx context.Context, txn *models.LedgerTransaction) error {
	if err := r.db.WithContext(ctx).Save(txn).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) ListByWallet(ctx context.Context, walletID uint, limit, offset int) ([]models.LedgerTransaction, error) {
	var txns []models.LedgerTransaction
	err := r.db.WithContext(ctx).
		Where("source_wallet_id = ? OR destination_wallet_id = ?", walletID, walletID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (r *transactionRepository) ListByOrder(ctx context.Context, orderID uint) ([]models.LedgerTransaction, error) {
	var txns []models.LedgerTransaction
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list order transactions: %w", err)
	}
	return txns, nil
}
