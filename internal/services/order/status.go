package order

import "mesa/internal/models"

// trackingByStatus is the fixed lookup from internal order status to the
// customer-facing tracking label. Tracking info is always derived from this
// table, never set independently.
var trackingByStatus = map[models.OrderStatus]models.TrackingInfo{
	models.OrderStatusPending:            models.TrackingOrderPlaced,
	models.OrderStatusRestaurantAccepted: models.TrackingOrderReceived,
	models.OrderStatusPreparing:          models.TrackingPreparing,
	models.OrderStatusReadyForPickup:     models.TrackingReadyForPickup,
	models.OrderStatusDispatched:         models.TrackingDispatched,
	models.OrderStatusDelivered:          models.TrackingDelivered,
	models.OrderStatusCancelled:          models.TrackingCancelled,
}

// statusRank orders the forward lifecycle for threshold checks. CANCELLED
// sits outside the progression.
var statusRank = map[models.OrderStatus]int{
	models.OrderStatusPending:            0,
	models.OrderStatusRestaurantAccepted: 1,
	models.OrderStatusPreparing:          2,
	models.OrderStatusReadyForPickup:     3,
	models.OrderStatusDispatched:         4,
	models.OrderStatusDelivered:          5,
}

// TrackingFor returns the tracking label for a status, false for a status
// outside the lifecycle table.
func TrackingFor(status models.OrderStatus) (models.TrackingInfo, bool) {
	info, ok := trackingByStatus[status]
	return info, ok
}

// TipAllowed reports whether the order has passed the dispatch threshold,
// the point from which driver tips may accumulate.
func TipAllowed(status models.OrderStatus) bool {
	rank, ok := statusRank[status]
	if !ok {
		return false
	}
	return rank >= statusRank[models.OrderStatusDispatched]
}
