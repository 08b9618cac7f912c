package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the internal lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending            OrderStatus = "PENDING"
	OrderStatusRestaurantAccepted OrderStatus = "RESTAURANT_ACCEPTED"
	OrderStatusPreparing          OrderStatus = "PREPARING"
	OrderStatusReadyForPickup     OrderStatus = "READY_FOR_PICKUP"
	OrderStatusDispatched         OrderStatus = "DISPATCHED"
	OrderStatusDelivered          OrderStatus = "DELIVERED"
	OrderStatusCancelled          OrderStatus = "CANCELLED"
)

// TrackingInfo is the customer-facing label derived from OrderStatus.
type TrackingInfo string

const (
	TrackingOrderPlaced    TrackingInfo = "ORDER_PLACED"
	TrackingOrderReceived  TrackingInfo = "ORDER_RECEIVED"
	TrackingPreparing      TrackingInfo = "PREPARING"
	TrackingReadyForPickup TrackingInfo = "READY_FOR_PICKUP"
	TrackingDispatched     TrackingInfo = "DISPATCHED"
	TrackingDelivered      TrackingInfo = "DELIVERED"
	TrackingCancelled      TrackingInfo = "CANCELLED"
)

// Payment methods
const (
	PaymentMethodCOD    = "COD"
	PaymentMethodWallet = "WALLET"
)

// Order is the settlement-relevant order aggregate. Status and TrackingInfo
// are the only fields mutated after creation, and only through the order
// service's status machine.
type Order struct {
	ID                  uint            `gorm:"primarykey"`
	CustomerID          uint            `gorm:"index;not null"`
	RestaurantID        uint            `gorm:"index;not null"`
	DeliveryAddressID   uint            `gorm:"not null"`
	RestaurantAddressID uint            `gorm:"not null"`
	Items               []OrderItem     `gorm:"foreignKey:OrderID"`
	TotalAmount         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TipAmount           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	PromotionID         *uint           `gorm:"index"`
	PaymentMethod       string          `gorm:"not null;default:'COD'"`
	Status              OrderStatus     `gorm:"not null;default:'PENDING'"`
	TrackingInfo        TrackingInfo    `gorm:"not null;default:'ORDER_PLACED'"`
	TransactionID       *uint           `gorm:"index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderItem is one priced line of an order. UnitPrice is the settled
// (possibly discounted) price; ListPrice keeps the menu price at order time.
type OrderItem struct {
	ID         uint  `gorm:"primarykey"`
	OrderID    uint  `gorm:"index;not null"`
	MenuItemID uint  `gorm:"not null"`
	VariantID  *uint ``
	Name       string
	Quantity   int             `gorm:"not null;default:1"`
	ListPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// DeliveryProgress tracks fulfillment stages for an order and accumulates
// driver tips once the order is past dispatch.
type DeliveryProgress struct {
	ID           uint            `gorm:"primarykey"`
	OrderID      uint            `gorm:"uniqueIndex;not null"`
	DriverID     *uint           `gorm:"index"`
	Stage        OrderStatus     `gorm:"not null;default:'PENDING'"`
	TipAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DispatchedAt *time.Time
	DeliveredAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
