package order

import "errors"

// Service errors
var (
	ErrInvalidDraft       = errors.New("invalid order draft")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotAcceptingOrders = errors.New("restaurant is not accepting orders")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTipAmount   = errors.New("invalid tip amount")
	ErrTipNotAllowed      = errors.New("tipping not allowed before dispatch")
	ErrNotRefundable      = errors.New("order is not refundable")
	ErrAlreadyRefunded    = errors.New("order already refunded")
)
