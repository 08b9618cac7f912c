package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrAddressNotFound     = errors.New("address not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrVariantNotFound     = errors.New("item variant not found")
	ErrDuplicateWallet     = errors.New("wallet already exists")
)

// Store bundles the repositories behind one transactional boundary.
// WithinTransaction hands the callback a Store bound to the transaction, so
// every repository call inside it shares the same database transaction; any
// error rolls the whole unit back.
type Store interface {
	Wallets() WalletRepository
	Transactions() TransactionRepository
	Orders() OrderRepository
	Carts() CartRepository
	Promotions() PromotionRepository
	Catalog() CatalogRepository

	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}

type sqlStore struct {
	db *gorm.DB
}

// NewStore creates a gorm-backed Store.
func NewStore(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Wallets() WalletRepository           { return &walletRepository{db: s.db} }
func (s *sqlStore) Transactions() TransactionRepository { return &transactionRepository{db: s.db} }
func (s *sqlStore) Orders() OrderRepository             { return &orderRepository{db: s.db} }
func (s *sqlStore) Carts() CartRepository               { return &cartRepository{db: s.db} }
func (s *sqlStore) Promotions() PromotionRepository     { return &promotionRepository{db: s.db} }
func (s *sqlStore) Catalog() CatalogRepository          { return &catalogRepository{db: s.db} }

func (s *sqlStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&sqlStore{db: tx})
	})
}
