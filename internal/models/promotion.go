package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion discount kinds
const (
	PromotionTypePercentage = "PERCENTAGE"
	PromotionTypeFixed      = "FIXED"
)

// Promotion statuses
const (
	PromotionStatusActive   = "ACTIVE"
	PromotionStatusInactive = "INACTIVE"
)

// Promotion applies a discount to items whose category set intersects
// CategoryIDs while the promotion is ACTIVE and now is inside its window.
type Promotion struct {
	ID          uint            `gorm:"primarykey"`
	Name        string          `gorm:"not null"`
	Type        string          `gorm:"not null"`
	Value       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CategoryIDs IDList          `gorm:"type:jsonb"`
	Status      string          `gorm:"not null;default:'ACTIVE'"`
	StartDate   time.Time       `gorm:"not null"`
	EndDate     time.Time       `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ActiveAt reports whether the promotion can be applied at the given time.
func (p *Promotion) ActiveAt(now time.Time) bool {
	return p.Status == PromotionStatusActive &&
		!now.Before(p.StartDate) && !now.After(p.EndDate)
}
