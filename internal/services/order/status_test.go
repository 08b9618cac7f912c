package order

import (
	"testing"

	"mesa/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTrackingFor(t *testing.T) {
	tests := []struct {
		status models.OrderStatus
		want   models.TrackingInfo
	}{
		{models.OrderStatusPending, models.TrackingOrderPlaced},
		{models.OrderStatusRestaurantAccepted, models.TrackingOrderReceived},
		{models.OrderStatusPreparing, models.TrackingPreparing},
		{models.OrderStatusReadyForPickup, models.TrackingReadyForPickup},
		{models.OrderStatusDispatched, models.TrackingDispatched},
		{models.OrderStatusDelivered, models.TrackingDelivered},
		{models.OrderStatusCancelled, models.TrackingCancelled},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, ok := TrackingFor(tt.status)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := TrackingFor("TELEPORTED")
	assert.False(t, ok)
}

func TestTipAllowed(t *testing.T) {
	assert.False(t, TipAllowed(models.OrderStatusPending))
	assert.False(t, TipAllowed(models.OrderStatusRestaurantAccepted))
	assert.False(t, TipAllowed(models.OrderStatusPreparing))
	assert.False(t, TipAllowed(models.OrderStatusReadyForPickup))
	assert.True(t, TipAllowed(models.OrderStatusDispatched))
	assert.True(t, TipAllowed(models.OrderStatusDelivered))
	assert.False(t, TipAllowed(models.OrderStatusCancelled))
}
