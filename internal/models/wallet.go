package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet owner roles
const (
	WalletOwnerCustomer   = "customer"
	WalletOwnerRestaurant = "restaurant"
	WalletOwnerDriver     = "driver"
)

// Wallet holds a single balance with an optimistic-lock version counter.
// Version increments by exactly one per successful mutation; all mutations
// go through the ledger service, never through a plain Save.
type Wallet struct {
	ID        uint            `gorm:"primarykey"`
	OwnerID   uint            `gorm:"uniqueIndex:idx_wallet_owner;not null"`
	OwnerRole string          `gorm:"uniqueIndex:idx_wallet_owner;not null;default:'customer'"`
	Balance   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Version   uint64          `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
