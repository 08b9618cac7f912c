package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger transaction types
const (
	TransactionTypeDeposit  = "DEPOSIT"
	TransactionTypeWithdraw = "WITHDRAW"
	TransactionTypePurchase = "PURCHASE"
	TransactionTypeRefund   = "REFUND"
)

// Ledger transaction statuses
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
	TransactionStatusCancelled = "CANCELLED"
)

// LedgerTransaction is the append-only record of a monetary movement.
// A PURCHASE carries both a source and a destination leg; DEPOSIT, WITHDRAW
// and REFUND have one leg. Rows are created PENDING and transitioned once to
// COMPLETED or FAILED, never mutated afterwards.
type LedgerTransaction struct {
	ID                  uint            `gorm:"primarykey"`
	Reference           string          `gorm:"uniqueIndex;not null"`
	Type                string          `gorm:"not null"`
	Amount              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SourceWalletID      *uint           `gorm:"index"`
	DestinationWalletID uint            `gorm:"index;not null"`
	Status              string          `gorm:"not null;default:'PENDING'"`
	BalanceAfter        decimal.Decimal `gorm:"type:numeric(12,2)"`
	OrderID             *uint           `gorm:"index"`
	Description         string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Terminal reports whether the transaction has reached a final state.
func (t *LedgerTransaction) Terminal() bool {
	return t.Status == TransactionStatusCompleted ||
		t.Status == TransactionStatusFailed ||
		t.Status == TransactionStatusCancelled
}
