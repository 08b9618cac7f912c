package transaction

import (
	"context"
	"errors"
	"fmt"

	"mesa/internal/models"
	"mesa/internal/repositories"

	"github.com/shopspring/decimal"
)

// Service exposes the one-leg wallet movements and transaction lookups built
// on top of the Processor.
type Service interface {
	Deposit(ctx context.Context, walletID uint, amount decimal.Decimal, description string) (*models.LedgerTransaction, error)
	Withdraw(ctx context.Context, walletID uint, amount decimal.Decimal, description string) (*models.LedgerTransaction, error)
	GetByReference(ctx context.Context, reference string) (*models.LedgerTransaction, error)
	History(ctx context.Context, walletID uint, limit, offset int) ([]models.LedgerTransaction, error)
}

type service struct {
	store     repositories.Store
	processor *Processor
}

// NewService creates a transaction service.
func NewService(store repositories.Store, processor *Processor) Service {
	if store == nil {
		panic("store is required")
	}
	if processor == nil {
		panic("processor is required")
	}
	return &service{
		store:     store,
		processor: processor,
	}
}

func (s *service) Deposit(ctx context.Context, walletID uint, amount decimal.Decimal, description string) (*models.LedgerTransaction, error) {
	return s.processor.Run(ctx, Request{
		Type:                models.TransactionTypeDeposit,
		Amount:              amount,
		DestinationWalletID: walletID,
		Description:         description,
	})
}

func (s *service) Withdraw(ctx context.Context, walletID uint, amount decimal.Decimal, description string) (*models.LedgerTransaction, error) {
	return s.processor.Run(ctx, Request{
		Type:                models.TransactionTypeWithdraw,
		Amount:              amount,
		SourceWalletID:      &walletID,
		DestinationWalletID: walletID,
		Description:         description,
	})
}

func (s *service) GetByReference(ctx context.Context, reference string) (*models.LedgerTransaction, error) {
	txn, err := s.store.Transactions().GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

func (s *service) History(ctx context.Context, walletID uint, limit, offset int) ([]models.LedgerTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.store.Transactions().ListByWallet(ctx, walletID, limit, offset)
}
