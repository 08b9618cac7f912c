package transaction

import (
	"github.com/shopspring/decimal"
)

// Request describes a ledger transaction to create and process.
// A PURCHASE carries both wallets; DEPOSIT and REFUND only the destination;
// WITHDRAW debits the source, which doubles as the wallet of record.
type Request struct {
	Type                string
	Amount              decimal.Decimal
	SourceWalletID      *uint
	DestinationWalletID uint
	OrderID             *uint
	Description         string
}
