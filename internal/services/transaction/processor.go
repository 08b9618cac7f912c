// Package transaction creates ledger transaction records and drives their
// wallet legs. Cross-leg atomicity is the database transaction's job: legs
// run inside the caller's unit of work and a failed second leg rolls back
// the first. CAS retries stay within a single leg.
package transaction

import (
	"context"
	"fmt"

	"mesa/internal/models"
	"mesa/internal/repositories"
	"mesa/internal/services/wallet"

	"github.com/google/uuid"
)

// Processor turns Requests into processed LedgerTransactions.
type Processor struct {
	store  repositories.Store
	ledger wallet.Service
}

// NewProcessor creates a transaction processor.
func NewProcessor(store repositories.Store, ledger wallet.Service) *Processor {
	if store == nil {
		panic("store is required")
	}
	if ledger == nil {
		panic("ledger is required")
	}
	return &Processor{
		store:  store,
		ledger: ledger,
	}
}

// Create inserts a PENDING transaction row through the given store, which
// may be bound to an outer database transaction. It never commits anything
// on its own.
func (p *Processor) Create(ctx context.Context, store repositories.Store, req Request) (*models.LedgerTransaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	txn := &models.LedgerTransaction{
		Reference:           uuid.NewString(),
		Type:                req.Type,
		Amount:              req.Amount,
		SourceWalletID:      req.SourceWalletID,
		DestinationWalletID: req.DestinationWalletID,
		OrderID:             req.OrderID,
		Description:         req.Description,
		Status:              models.TransactionStatusPending,
	}
	if err := store.Transactions().Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// Process executes the applicable legs in fixed order, debit before credit,
// so a shortage of funds is detected before anything is credited. The store
// must be the same unit of work the transaction was created in.
func (p *Processor) Process(ctx context.Context, store repositories.Store, txn *models.LedgerTransaction) (*models.LedgerTransaction, error) {
	if txn.Status != models.TransactionStatusPending {
		return nil, ErrAlreadyProcessed
	}

	led := p.ledger.Bind(store.Wallets())
	var last *models.Wallet

	if txn.Type == models.TransactionTypeWithdraw || txn.Type == models.TransactionTypePurchase {
		w, err := led.Debit(ctx, *txn.SourceWalletID, txn.Amount)
		if err != nil {
			return nil, fmt.Errorf("debit leg: %w", err)
		}
		last = w
	}

	if txn.Type == models.TransactionTypeDeposit ||
		txn.Type == models.TransactionTypePurchase ||
		txn.Type == models.TransactionTypeRefund {
		w, err := led.Credit(ctx, txn.DestinationWalletID, txn.Amount)
		if err != nil {
			return nil, fmt.Errorf("credit leg: %w", err)
		}
		last = w
	}

	txn.Status = models.TransactionStatusCompleted
	txn.BalanceAfter = last.Balance
	if err := store.Transactions().Update(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// Settle creates and processes a transaction within the caller's store, for
// callers that already hold an open unit of work.
func (p *Processor) Settle(ctx context.Context, store repositories.Store, req Request) (*models.LedgerTransaction, error) {
	txn, err := p.Create(ctx, store, req)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, store, txn)
}

// Run settles a request in its own database transaction. On a leg failure
// the rollback erases the PENDING row and any wallet write, so the FAILED
// record written afterwards is the only durable trace.
func (p *Processor) Run(ctx context.Context, req Request) (*models.LedgerTransaction, error) {
	var txn *models.LedgerTransaction
	err := p.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		var settleErr error
		txn, settleErr = p.Settle(ctx, tx, req)
		return settleErr
	})
	if err != nil {
		return p.RecordFailure(ctx, req, err), err
	}
	return txn, nil
}

// RecordFailure persists a FAILED transaction row outside any transaction,
// keeping a durable trace of the rejected movement. Best effort: the caller
// already has the original error to return.
func (p *Processor) RecordFailure(ctx context.Context, req Request, cause error) *models.LedgerTransaction {
	txn := &models.LedgerTransaction{
		Reference:           uuid.NewString(),
		Type:                req.Type,
		Amount:              req.Amount,
		SourceWalletID:      req.SourceWalletID,
		DestinationWalletID: req.DestinationWalletID,
		OrderID:             req.OrderID,
		Description:         req.Description,
		Status:              models.TransactionStatusFailed,
	}
	if cause != nil {
		txn.Description = fmt.Sprintf("%s (failed: %v)", req.Description, cause)
	}
	if err := p.store.Transactions().Create(ctx, txn); err != nil {
		return nil
	}
	return txn
}

func validateRequest(req Request) error {
	if req.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	switch req.Type {
	case models.TransactionTypeDeposit, models.TransactionTypeRefund:
		if req.DestinationWalletID == 0 {
			return ErrInvalidParties
		}
	case models.TransactionTypeWithdraw:
		if req.SourceWalletID == nil || *req.SourceWalletID == 0 {
			return ErrInvalidParties
		}
	case models.TransactionTypePurchase:
		if req.SourceWalletID == nil || *req.SourceWalletID == 0 || req.DestinationWalletID == 0 {
			return ErrInvalidParties
		}
		if *req.SourceWalletID == req.DestinationWalletID {
			return ErrInvalidParties
		}
	default:
		return ErrInvalidType
	}
	return nil
}
