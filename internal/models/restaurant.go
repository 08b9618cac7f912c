package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurant is the minimal restaurant aggregate needed by order settlement:
// who owns its wallet, whether it accepts orders, and its running counter.
type Restaurant struct {
	ID              uint   `gorm:"primarykey"`
	OwnerID         uint   `gorm:"index;not null"`
	Name            string `gorm:"not null"`
	AddressID       uint   `gorm:"not null"`
	AcceptingOrders bool   `gorm:"not null;default:true"`
	OrderCount      uint   `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MenuItem is a resolvable order-item reference with its category set used
// for promotion matching. Menu management itself lives elsewhere.
type MenuItem struct {
	ID           uint            `gorm:"primarykey"`
	RestaurantID uint            `gorm:"index;not null"`
	Name         string          `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CategoryIDs  IDList          `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemVariant is an optional size/option variant of a menu item with its own
// price.
type ItemVariant struct {
	ID         uint            `gorm:"primarykey"`
	MenuItemID uint            `gorm:"index;not null"`
	Name       string          `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}
