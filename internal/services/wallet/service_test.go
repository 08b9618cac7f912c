package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mesa/internal/models"
	"mesa/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWalletRepo is an in-memory wallet store with the same conditional
// update semantics as the SQL implementation. Setting races makes the next
// n update attempts lose to a simulated concurrent writer.
type fakeWalletRepo struct {
	mu      sync.Mutex
	wallets map[uint]*models.Wallet
	nextID  uint
	races   int
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{wallets: make(map[uint]*models.Wallet), nextID: 1}
}

func (r *fakeWalletRepo) seed(balance decimal.Decimal) *models.Wallet {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := &models.Wallet{
		ID:        r.nextID,
		OwnerID:   r.nextID,
		OwnerRole: models.WalletOwnerCustomer,
		Balance:   balance,
	}
	r.wallets[w.ID] = w
	r.nextID++
	copied := *w
	return &copied
}

func (r *fakeWalletRepo) Create(_ context.Context, wallet *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet.ID = r.nextID
	r.nextID++
	copied := *wallet
	r.wallets[wallet.ID] = &copied
	return nil
}

func (r *fakeWalletRepo) GetByID(_ context.Context, id uint) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWalletRepo) GetByOwner(_ context.Context, ownerID uint, role string) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.OwnerID == ownerID && w.OwnerRole == role {
			copied := *w
			return &copied, nil
		}
	}
	return nil, repositories.ErrWalletNotFound
}

func (r *fakeWalletRepo) ApplyDelta(_ context.Context, id uint, delta decimal.Decimal, expectedVersion uint64) (*models.Wallet, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, false, nil
	}
	if r.races > 0 {
		r.races--
		w.Version++ // the concurrent writer wins this round
		return nil, false, nil
	}
	if w.Version != expectedVersion || w.Balance.Add(delta).Sign() < 0 {
		return nil, false, nil
	}
	w.Balance = w.Balance.Add(delta)
	w.Version++
	copied := *w
	return &copied, true, nil
}

type fakeCache struct {
	mu           sync.Mutex
	invalidated  []uint
	storedWallet *models.Wallet
}

func (c *fakeCache) GetWallet(_ context.Context, walletID uint) (*models.Wallet, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.storedWallet != nil && c.storedWallet.ID == walletID {
		copied := *c.storedWallet
		return &copied, true, nil
	}
	return nil, false, nil
}

func (c *fakeCache) SetWallet(_ context.Context, wallet *models.Wallet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *wallet
	c.storedWallet = &copied
	return nil
}

func (c *fakeCache) InvalidateWallet(_ context.Context, walletID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, walletID)
	if c.storedWallet != nil && c.storedWallet.ID == walletID {
		c.storedWallet = nil
	}
	return nil
}

func newTestService(repo *fakeWalletRepo, cache *fakeCache) Service {
	return NewService(repo, cache, &NoopMetricsCollector{})
}

func TestService_CreditAndDebit(t *testing.T) {
	repo := newFakeWalletRepo()
	cache := &fakeCache{}
	svc := newTestService(repo, cache)
	w := repo.seed(decimal.Zero)

	credited, err := svc.Credit(context.Background(), w.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, credited.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, uint64(1), credited.Version)

	debited, err := svc.Debit(context.Background(), w.ID, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, debited.Balance.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, uint64(2), debited.Version)

	assert.Len(t, cache.invalidated, 2)
}

func TestService_InvalidAmounts(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := newTestService(repo, &fakeCache{})
	w := repo.seed(decimal.NewFromInt(10))

	tests := []struct {
		name   string
		run    func() error
	}{
		{"credit zero", func() error {
			_, err := svc.Credit(context.Background(), w.ID, decimal.Zero)
			return err
		}},
		{"credit negative", func() error {
			_, err := svc.Credit(context.Background(), w.ID, decimal.NewFromInt(-5))
			return err
		}},
		{"debit zero", func() error {
			_, err := svc.Debit(context.Background(), w.ID, decimal.Zero)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), ErrInvalidAmount)
		})
	}
}

func TestService_DebitInsufficientBalance(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := newTestService(repo, &fakeCache{})
	w := repo.seed(decimal.NewFromInt(25))

	_, err := svc.Debit(context.Background(), w.ID, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Terminal failure leaves the wallet untouched.
	fresh, err := repo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Balance.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, uint64(0), fresh.Version)
}

func TestService_DebitRetriesOnConflict(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := newTestService(repo, &fakeCache{})
	w := repo.seed(decimal.NewFromInt(50))

	// Two lost races still leave one attempt inside the bound.
	repo.races = MaxCASAttempts - 1

	debited, err := svc.Debit(context.Background(), w.ID, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, debited.Balance.Equal(decimal.NewFromInt(30)))
}

func TestService_DebitRetryExhausted(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := newTestService(repo, &fakeCache{})
	w := repo.seed(decimal.NewFromInt(50))

	repo.races = MaxCASAttempts

	_, err := svc.Debit(context.Background(), w.ID, decimal.NewFromInt(20))
	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestService_ConcurrentDebitsSettleOnce(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := newTestService(repo, &fakeCache{})
	w := repo.seed(decimal.NewFromInt(100))

	// Two debits of 60 race for a balance of 100. Whoever loses the CAS
	// round re-reads a balance of 40 and must fail terminally, never spin.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Debit(context.Background(), w.ID, decimal.NewFromInt(60))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, insufficient int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientBalance):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)

	final, err := repo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.True(t, final.Balance.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, uint64(1), final.Version)
}

func TestService_ApplyDeltaStaleVersion(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := newTestService(repo, &fakeCache{})
	w := repo.seed(decimal.NewFromInt(50))

	// Move the wallet past version 0 so a version-0 attempt is stale.
	_, err := svc.Credit(context.Background(), w.ID, decimal.NewFromInt(10))
	require.NoError(t, err)

	_, err = svc.ApplyDelta(context.Background(), w.ID, decimal.NewFromInt(-5), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestService_EnsureWallet(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := newTestService(repo, &fakeCache{})

	w, err := svc.EnsureWallet(context.Background(), 7, models.WalletOwnerRestaurant)
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())

	again, err := svc.EnsureWallet(context.Background(), 7, models.WalletOwnerRestaurant)
	require.NoError(t, err)
	assert.Equal(t, w.ID, again.ID)

	_, err = svc.EnsureWallet(context.Background(), 7, "accountant")
	assert.ErrorIs(t, err, ErrInvalidOwner)

	_, err = svc.EnsureWallet(context.Background(), 0, models.WalletOwnerCustomer)
	assert.ErrorIs(t, err, ErrInvalidOwner)
}

func TestService_GetWalletUsesCache(t *testing.T) {
	repo := newFakeWalletRepo()
	cache := &fakeCache{}
	svc := newTestService(repo, cache)
	w := repo.seed(decimal.NewFromInt(15))

	// First read misses and populates the cache.
	got, err := svc.GetWallet(context.Background(), w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(15)))
	require.NotNil(t, cache.storedWallet)

	// Mutations invalidate so the next read cannot serve the stale entry.
	_, err = svc.Credit(context.Background(), w.ID, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Nil(t, cache.storedWallet)

	got, err = svc.GetWallet(context.Background(), w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(20)))
}

func TestService_GetWalletNotFound(t *testing.T) {
	svc := newTestService(newFakeWalletRepo(), &fakeCache{})

	_, err := svc.GetWallet(context.Background(), 999)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}
