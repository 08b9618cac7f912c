// Package memstore is an in-memory implementation of repositories.Store with
// the same conditional-update and rollback semantics as the SQL one. It backs
// service tests and local experiments; nothing production-facing uses it.
package memstore

import (
	"context"
	"sync"

	"mesa/internal/models"
	"mesa/internal/repositories"

	"github.com/shopspring/decimal"
)

type data struct {
	wallets      map[uint]*models.Wallet
	transactions map[uint]*models.LedgerTransaction
	orders       map[uint]*models.Order
	progress     map[uint]*models.DeliveryProgress
	carts        []models.CartItem
	promotions   []models.Promotion
	users        map[uint]*models.User
	restaurants  map[uint]*models.Restaurant
	addresses    map[uint]*models.Address
	menuItems    map[uint]*models.MenuItem
	variants     map[uint]*models.ItemVariant

	nextWalletID   uint
	nextTxnID      uint
	nextOrderID    uint
	nextItemID     uint
	nextProgressID uint
	nextCatalogID  uint
}

func newData() *data {
	return &data{
		wallets:        make(map[uint]*models.Wallet),
		transactions:   make(map[uint]*models.LedgerTransaction),
		orders:         make(map[uint]*models.Order),
		progress:       make(map[uint]*models.DeliveryProgress),
		users:          make(map[uint]*models.User),
		restaurants:    make(map[uint]*models.Restaurant),
		addresses:      make(map[uint]*models.Address),
		menuItems:      make(map[uint]*models.MenuItem),
		variants:       make(map[uint]*models.ItemVariant),
		nextWalletID:   1,
		nextTxnID:      1,
		nextOrderID:    1,
		nextItemID:     1,
		nextProgressID: 1,
		nextCatalogID:  1,
	}
}

func (d *data) clone() *data {
	c := newData()
	for id, w := range d.wallets {
		copied := *w
		c.wallets[id] = &copied
	}
	for id, t := range d.transactions {
		copied := *t
		c.transactions[id] = &copied
	}
	for id, o := range d.orders {
		copied := *o
		copied.Items = append([]models.OrderItem(nil), o.Items...)
		c.orders[id] = &copied
	}
	for id, p := range d.progress {
		copied := *p
		c.progress[id] = &copied
	}
	c.carts = append([]models.CartItem(nil), d.carts...)
	c.promotions = append([]models.Promotion(nil), d.promotions...)
	for id, u := range d.users {
		copied := *u
		c.users[id] = &copied
	}
	for id, r := range d.restaurants {
		copied := *r
		c.restaurants[id] = &copied
	}
	for id, a := range d.addresses {
		copied := *a
		c.addresses[id] = &copied
	}
	for id, m := range d.menuItems {
		copied := *m
		copied.CategoryIDs = append(models.IDList(nil), m.CategoryIDs...)
		c.menuItems[id] = &copied
	}
	for id, v := range d.variants {
		copied := *v
		c.variants[id] = &copied
	}
	c.nextWalletID = d.nextWalletID
	c.nextTxnID = d.nextTxnID
	c.nextOrderID = d.nextOrderID
	c.nextItemID = d.nextItemID
	c.nextProgressID = d.nextProgressID
	c.nextCatalogID = d.nextCatalogID
	return c
}

// Store is the in-memory Store. WithinTransaction is not reentrant.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data *data
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: newData()}
}

func (s *Store) Wallets() repositories.WalletRepository           { return &walletRepo{s} }
func (s *Store) Transactions() repositories.TransactionRepository { return &transactionRepo{s} }
func (s *Store) Orders() repositories.OrderRepository             { return &orderRepo{s} }
func (s *Store) Carts() repositories.CartRepository               { return &cartRepo{s} }
func (s *Store) Promotions() repositories.PromotionRepository     { return &promotionRepo{s} }
func (s *Store) Catalog() repositories.CatalogRepository          { return &catalogRepo{s} }

// WithinTransaction snapshots the whole dataset and restores it when fn
// fails, mirroring a database rollback.
func (s *Store) WithinTransaction(_ context.Context, fn func(tx repositories.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Seed helpers. Each stores a copy and returns the assigned record.

func (s *Store) AddWallet(ownerID uint, role string, balance decimal.Decimal) *models.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := &models.Wallet{ID: s.data.nextWalletID, OwnerID: ownerID, OwnerRole: role, Balance: balance}
	s.data.nextWalletID++
	s.data.wallets[w.ID] = w
	copied := *w
	return &copied
}

func (s *Store) AddUser(role string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{ID: s.data.nextCatalogID, Name: "user", Role: role, Status: "active"}
	s.data.nextCatalogID++
	s.data.users[u.ID] = u
	copied := *u
	return &copied
}

func (s *Store) AddAddress(userID uint) *models.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &models.Address{ID: s.data.nextCatalogID, UserID: userID, Line1: "1 Main St", City: "Town"}
	s.data.nextCatalogID++
	s.data.addresses[a.ID] = a
	copied := *a
	return &copied
}

func (s *Store) AddRestaurant(ownerID, addressID uint, accepting bool) *models.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &models.Restaurant{ID: s.data.nextCatalogID, OwnerID: ownerID, Name: "restaurant", AddressID: addressID, AcceptingOrders: accepting}
	s.data.nextCatalogID++
	s.data.restaurants[r.ID] = r
	copied := *r
	return &copied
}

func (s *Store) AddMenuItem(restaurantID uint, price decimal.Decimal, categories models.IDList) *models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &models.MenuItem{ID: s.data.nextCatalogID, RestaurantID: restaurantID, Name: "item", Price: price, CategoryIDs: categories}
	s.data.nextCatalogID++
	s.data.menuItems[m.ID] = m
	copied := *m
	return &copied
}

func (s *Store) AddVariant(menuItemID uint, price decimal.Decimal) *models.ItemVariant {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := &models.ItemVariant{ID: s.data.nextCatalogID, MenuItemID: menuItemID, Name: "variant", Price: price}
	s.data.nextCatalogID++
	s.data.variants[v.ID] = v
	copied := *v
	return &copied
}

func (s *Store) AddPromotion(p models.Promotion) models.Promotion {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.data.nextCatalogID
	s.data.nextCatalogID++
	s.data.promotions = append(s.data.promotions, p)
	return p
}

func (s *Store) AddCartItem(customerID, menuItemID uint, quantity int) models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := models.CartItem{ID: s.data.nextCatalogID, CustomerID: customerID, MenuItemID: menuItemID, Quantity: quantity}
	s.data.nextCatalogID++
	s.data.carts = append(s.data.carts, item)
	return item
}

// RaceWalletOnce bumps the wallet version outside any expected-version
// check, simulating a concurrent writer winning a CAS round.
func (s *Store) RaceWalletOnce(walletID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.data.wallets[walletID]; ok {
		w.Version++
	}
}
