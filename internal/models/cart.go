package models

import "time"

// CartItem is a customer's saved item; matching entries are deleted when the
// order that contains them settles.
type CartItem struct {
	ID         uint  `gorm:"primarykey"`
	CustomerID uint  `gorm:"index;not null"`
	MenuItemID uint  `gorm:"index;not null"`
	VariantID  *uint ``
	Quantity   int   `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
