package transaction

import (
	"context"
	"testing"

	"mesa/internal/models"
	"mesa/internal/repositories/memstore"
	"mesa/internal/services/wallet"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopCache struct{}

func (noopCache) GetWallet(context.Context, uint) (*models.Wallet, bool, error) { return nil, false, nil }
func (noopCache) SetWallet(context.Context, *models.Wallet) error               { return nil }
func (noopCache) InvalidateWallet(context.Context, uint) error                  { return nil }

func newTestProcessor(t *testing.T) (*Processor, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	ledger := wallet.NewService(store.Wallets(), noopCache{}, nil)
	return NewProcessor(store, ledger), store
}

func TestProcessor_PurchaseMovesFundsAtomically(t *testing.T) {
	p, store := newTestProcessor(t)
	source := store.AddWallet(1, models.WalletOwnerCustomer, decimal.NewFromInt(100))
	dest := store.AddWallet(2, models.WalletOwnerRestaurant, decimal.NewFromInt(10))

	txn, err := p.Run(context.Background(), Request{
		Type:                models.TransactionTypePurchase,
		Amount:              decimal.NewFromInt(30),
		SourceWalletID:      &source.ID,
		DestinationWalletID: dest.ID,
		Description:         "purchase",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
	assert.NotEmpty(t, txn.Reference)

	srcAfter, err := store.Wallets().GetByID(context.Background(), source.ID)
	require.NoError(t, err)
	dstAfter, err := store.Wallets().GetByID(context.Background(), dest.ID)
	require.NoError(t, err)

	assert.True(t, srcAfter.Balance.Equal(decimal.NewFromInt(70)))
	assert.True(t, dstAfter.Balance.Equal(decimal.NewFromInt(40)))
	assert.True(t, txn.BalanceAfter.Equal(dstAfter.Balance))

	// The sum across wallets is unchanged by the transfer.
	total := srcAfter.Balance.Add(dstAfter.Balance)
	assert.True(t, total.Equal(decimal.NewFromInt(110)))
}

func TestProcessor_InsufficientFundsLeavesFailedTrace(t *testing.T) {
	p, store := newTestProcessor(t)
	source := store.AddWallet(1, models.WalletOwnerCustomer, decimal.NewFromInt(5))
	dest := store.AddWallet(2, models.WalletOwnerRestaurant, decimal.Zero)

	_, err := p.Run(context.Background(), Request{
		Type:                models.TransactionTypePurchase,
		Amount:              decimal.NewFromInt(30),
		SourceWalletID:      &source.ID,
		DestinationWalletID: dest.ID,
		Description:         "purchase",
	})
	assert.ErrorIs(t, err, wallet.ErrInsufficientBalance)

	// Neither wallet moved.
	srcAfter, _ := store.Wallets().GetByID(context.Background(), source.ID)
	dstAfter, _ := store.Wallets().GetByID(context.Background(), dest.ID)
	assert.True(t, srcAfter.Balance.Equal(decimal.NewFromInt(5)))
	assert.True(t, dstAfter.Balance.IsZero())

	// The rollback erased the PENDING row; the FAILED record written
	// afterwards is the only trace.
	traces, err := store.Transactions().ListByWallet(context.Background(), source.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, models.TransactionStatusFailed, traces[0].Status)
	assert.Contains(t, traces[0].Description, "insufficient balance")
}

func TestProcessor_DepositAndWithdraw(t *testing.T) {
	p, store := newTestProcessor(t)
	w := store.AddWallet(1, models.WalletOwnerCustomer, decimal.NewFromInt(20))

	txn, err := p.Run(context.Background(), Request{
		Type:                models.TransactionTypeDeposit,
		Amount:              decimal.NewFromInt(80),
		DestinationWalletID: w.ID,
	})
	require.NoError(t, err)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(100)))

	txn, err = p.Run(context.Background(), Request{
		Type:                models.TransactionTypeWithdraw,
		Amount:              decimal.NewFromInt(25),
		SourceWalletID:      &w.ID,
		DestinationWalletID: w.ID,
	})
	require.NoError(t, err)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(75)))
}

func TestProcessor_ProcessRejectsNonPending(t *testing.T) {
	p, store := newTestProcessor(t)
	w := store.AddWallet(1, models.WalletOwnerCustomer, decimal.Zero)

	txn, err := p.Run(context.Background(), Request{
		Type:                models.TransactionTypeDeposit,
		Amount:              decimal.NewFromInt(10),
		DestinationWalletID: w.ID,
	})
	require.NoError(t, err)

	_, err = p.Process(context.Background(), store, txn)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestProcessor_ValidateRequest(t *testing.T) {
	one := uint(1)
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"zero amount", Request{Type: models.TransactionTypeDeposit, DestinationWalletID: 1}, ErrInvalidAmount},
		{"negative amount", Request{Type: models.TransactionTypeDeposit, Amount: decimal.NewFromInt(-1), DestinationWalletID: 1}, ErrInvalidAmount},
		{"unknown type", Request{Type: "TRANSMUTE", Amount: decimal.NewFromInt(1), DestinationWalletID: 1}, ErrInvalidType},
		{"deposit without destination", Request{Type: models.TransactionTypeDeposit, Amount: decimal.NewFromInt(1)}, ErrInvalidParties},
		{"withdraw without source", Request{Type: models.TransactionTypeWithdraw, Amount: decimal.NewFromInt(1)}, ErrInvalidParties},
		{"purchase without source", Request{Type: models.TransactionTypePurchase, Amount: decimal.NewFromInt(1), DestinationWalletID: 1}, ErrInvalidParties},
		{"purchase to self", Request{Type: models.TransactionTypePurchase, Amount: decimal.NewFromInt(1), SourceWalletID: &one, DestinationWalletID: 1}, ErrInvalidParties},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, validateRequest(tt.req), tt.want)
		})
	}
}

func TestService_DepositAndHistory(t *testing.T) {
	p, store := newTestProcessor(t)
	svc := NewService(store, p)
	w := store.AddWallet(1, models.WalletOwnerCustomer, decimal.Zero)

	txn, err := svc.Deposit(context.Background(), w.ID, decimal.NewFromInt(50), "card deposit")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)

	byRef, err := svc.GetByReference(context.Background(), txn.Reference)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, byRef.ID)

	history, err := svc.History(context.Background(), w.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = svc.GetByReference(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
