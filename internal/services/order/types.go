package order

import (
	"context"

	"mesa/internal/models"
	"mesa/internal/repositories"
	"mesa/internal/services/transaction"

	"github.com/shopspring/decimal"
)

// Event channels for post-commit notifications.
const (
	EventOrderSettled    = "order.settled"
	EventTrackingUpdated = "order.tracking_updated"
)

// OrderDraft is the checked input to CreateOrder. Validation resolves every
// reference before anything is mutated.
type OrderDraft struct {
	CustomerID        uint        `json:"customer_id"`
	RestaurantID      uint        `json:"restaurant_id"`
	DeliveryAddressID uint        `json:"delivery_address_id"`
	PaymentMethod     string      `json:"payment_method"`
	Items             []DraftItem `json:"items"`
}

// DraftItem references a menu item, optionally a variant of it.
type DraftItem struct {
	MenuItemID uint  `json:"menu_item_id"`
	VariantID  *uint `json:"variant_id,omitempty"`
	Quantity   int   `json:"quantity"`
}

// SettlementResult is what CreateOrder hands back: the persisted order and,
// for wallet-funded orders, the completed purchase transaction.
type SettlementResult struct {
	Order       *models.Order             `json:"order"`
	Transaction *models.LedgerTransaction `json:"transaction,omitempty"`
}

// Snapshot is the payload published after settlement or a tracking update.
type Snapshot struct {
	OrderID             uint                `json:"order_id"`
	Status              models.OrderStatus  `json:"status"`
	TrackingInfo        models.TrackingInfo `json:"tracking_info"`
	CustomerID          uint                `json:"customer_id"`
	RestaurantID        uint                `json:"restaurant_id"`
	DeliveryAddressID   uint                `json:"delivery_address_id"`
	RestaurantAddressID uint                `json:"restaurant_address_id"`
	PaymentMethod       string              `json:"payment_method"`
	TotalAmount         decimal.Decimal     `json:"total_amount"`
	TipAmount           decimal.Decimal     `json:"tip_amount"`
	Items               []SnapshotItem      `json:"items"`
	TransactionRef      string              `json:"transaction_ref,omitempty"`
}

// SnapshotItem is one settled line of the published snapshot.
type SnapshotItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Settler is the transaction processor surface the coordinator uses.
type Settler interface {
	Settle(ctx context.Context, store repositories.Store, req transaction.Request) (*models.LedgerTransaction, error)
	RecordFailure(ctx context.Context, req transaction.Request, cause error) *models.LedgerTransaction
}

// Publisher delivers post-commit snapshots to external subscribers. Calls
// are fire-and-forget; the coordinator never waits on delivery.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}

// Service is the order settlement coordinator.
type Service interface {
	CreateOrder(ctx context.Context, draft OrderDraft) (*SettlementResult, error)
	GetOrder(ctx context.Context, orderID uint) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus) (*models.Order, error)
	TipDriver(ctx context.Context, orderID uint, amount decimal.Decimal) (*models.Order, error)
	RefundOrder(ctx context.Context, orderID uint) (*models.LedgerTransaction, error)
}
