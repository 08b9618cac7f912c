package memstore

import (
	"context"
	"time"

	"mesa/internal/models"
	"mesa/internal/repositories"

	"github.com/shopspring/decimal"
)

type walletRepo struct{ s *Store }

func (r *walletRepo) Create(_ context.Context, wallet *models.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wallet.ID = r.s.data.nextWalletID
	r.s.data.nextWalletID++
	copied := *wallet
	r.s.data.wallets[wallet.ID] = &copied
	return nil
}

func (r *walletRepo) GetByID(_ context.Context, id uint) (*models.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.data.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *walletRepo) GetByOwner(_ context.Context, ownerID uint, role string) (*models.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.data.wallets {
		if w.OwnerID == ownerID && w.OwnerRole == role {
			copied := *w
			return &copied, nil
		}
	}
	return nil, repositories.ErrWalletNotFound
}

func (r *walletRepo) ApplyDelta(_ context.Context, id uint, delta decimal.Decimal, expectedVersion uint64) (*models.Wallet, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.data.wallets[id]
	if !ok {
		return nil, false, nil
	}
	if w.Version != expectedVersion || w.Balance.Add(delta).Sign() < 0 {
		return nil, false, nil
	}
	w.Balance = w.Balance.Add(delta)
	w.Version++
	w.UpdatedAt = time.Now()
	copied := *w
	return &copied, true, nil
}

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, txn *models.LedgerTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	txn.ID = r.s.data.nextTxnID
	r.s.data.nextTxnID++
	txn.CreatedAt = time.Now()
	copied := *txn
	r.s.data.transactions[txn.ID] = &copied
	return nil
}

func (r *transactionRepo) GetByID(_ context.Context, id uint) (*models.LedgerTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.data.transactions[id]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *transactionRepo) GetByReference(_ context.Context, reference string) (*models.LedgerTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.data.transactions {
		if t.Reference == reference {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (r *transactionRepo) Update(_ context.Context, txn *models.LedgerTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.transactions[txn.ID]; !ok {
		return repositories.ErrTransactionNotFound
	}
	copied := *txn
	r.s.data.transactions[txn.ID] = &copied
	return nil
}

func (r *transactionRepo) ListByWallet(_ context.Context, walletID uint, limit, offset int) ([]models.LedgerTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.LedgerTransaction
	for _, t := range r.s.data.transactions {
		if (t.SourceWalletID != nil && *t.SourceWalletID == walletID) || t.DestinationWalletID == walletID {
			out = append(out, *t)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *transactionRepo) ListByOrder(_ context.Context, orderID uint) ([]models.LedgerTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.LedgerTransaction
	for _, t := range r.s.data.transactions {
		if t.OrderID != nil && *t.OrderID == orderID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(_ context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order.ID = r.s.data.nextOrderID
	r.s.data.nextOrderID++
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].ID = r.s.data.nextItemID
		r.s.data.nextItemID++
		order.Items[i].OrderID = order.ID
	}
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	r.s.data.orders[order.ID] = &copied
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id uint) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}
	copied := *o
	copied.Items = append([]models.OrderItem(nil), o.Items...)
	return &copied, nil
}

func (r *orderRepo) Update(_ context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.orders[order.ID]; !ok {
		return repositories.ErrOrderNotFound
	}
	copied := *order
	copied.Items = append([]models.OrderItem(nil), order.Items...)
	copied.UpdatedAt = time.Now()
	r.s.data.orders[order.ID] = &copied
	return nil
}

func (r *orderRepo) CreateProgress(_ context.Context, progress *models.DeliveryProgress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	progress.ID = r.s.data.nextProgressID
	r.s.data.nextProgressID++
	copied := *progress
	r.s.data.progress[progress.OrderID] = &copied
	return nil
}

func (r *orderRepo) GetProgress(_ context.Context, orderID uint) (*models.DeliveryProgress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.progress[orderID]
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *orderRepo) UpdateProgress(_ context.Context, progress *models.DeliveryProgress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.progress[progress.OrderID]; !ok {
		return repositories.ErrOrderNotFound
	}
	copied := *progress
	r.s.data.progress[progress.OrderID] = &copied
	return nil
}

func (r *orderRepo) AddTip(_ context.Context, orderID uint, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[orderID]
	if !ok {
		return repositories.ErrOrderNotFound
	}
	o.TipAmount = o.TipAmount.Add(amount)
	if p, ok := r.s.data.progress[orderID]; ok {
		p.TipAmount = p.TipAmount.Add(amount)
	}
	return nil
}

type cartRepo struct{ s *Store }

func (r *cartRepo) DeleteMatching(_ context.Context, customerID uint, menuItemIDs []uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make(map[uint]bool, len(menuItemIDs))
	for _, id := range menuItemIDs {
		ids[id] = true
	}
	kept := r.s.data.carts[:0]
	for _, item := range r.s.data.carts {
		if item.CustomerID == customerID && ids[item.MenuItemID] {
			continue
		}
		kept = append(kept, item)
	}
	r.s.data.carts = kept
	return nil
}

func (r *cartRepo) ListByCustomer(_ context.Context, customerID uint) ([]models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.CartItem
	for _, item := range r.s.data.carts {
		if item.CustomerID == customerID {
			out = append(out, item)
		}
	}
	return out, nil
}

type promotionRepo struct{ s *Store }

func (r *promotionRepo) FindActiveForCategories(_ context.Context, categoryIDs models.IDList, now time.Time) ([]models.Promotion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Promotion
	for _, p := range r.s.data.promotions {
		if p.ActiveAt(now) && p.CategoryIDs.Intersects(categoryIDs) {
			out = append(out, p)
		}
	}
	return out, nil
}

type catalogRepo struct{ s *Store }

func (r *catalogRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *catalogRepo) GetRestaurant(_ context.Context, id uint) (*models.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rest, ok := r.s.data.restaurants[id]
	if !ok {
		return nil, repositories.ErrRestaurantNotFound
	}
	copied := *rest
	return &copied, nil
}

func (r *catalogRepo) GetAddress(_ context.Context, id uint) (*models.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.data.addresses[id]
	if !ok {
		return nil, repositories.ErrAddressNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *catalogRepo) GetMenuItem(_ context.Context, id uint) (*models.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.data.menuItems[id]
	if !ok {
		return nil, repositories.ErrMenuItemNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *catalogRepo) GetVariant(_ context.Context, id uint) (*models.ItemVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.variants[id]
	if !ok {
		return nil, repositories.ErrVariantNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *catalogRepo) IncrementOrderCount(_ context.Context, restaurantID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rest, ok := r.s.data.restaurants[restaurantID]
	if !ok {
		return repositories.ErrRestaurantNotFound
	}
	rest.OrderCount++
	return nil
}
