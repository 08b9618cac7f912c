package handlers

import (
	"errors"

	"mesa/internal/models"
	"mesa/internal/repositories"
	"mesa/internal/services/order"
	"mesa/internal/services/wallet"
	"mesa/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	orderService order.Service
}

func NewOrderHandler(orderService order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var draft order.OrderDraft
	if err := c.BodyParser(&draft); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	result, err := h.orderService.CreateOrder(c.Context(), draft)
	if err != nil {
		return orderError(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, result)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return utils.BadRequest(c, "Invalid order id")
	}

	o, err := h.orderService.GetOrder(c.Context(), uint(orderID))
	if err != nil {
		return orderError(c, err)
	}

	return utils.Success(c, fiber.Map{"order": o})
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return utils.BadRequest(c, "Invalid order id")
	}

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	o, err := h.orderService.UpdateOrderStatus(c.Context(), uint(orderID), input.Status)
	if err != nil {
		return orderError(c, err)
	}

	return utils.Success(c, fiber.Map{"order": o})
}

func (h *OrderHandler) TipDriver(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return utils.BadRequest(c, "Invalid order id")
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	o, err := h.orderService.TipDriver(c.Context(), uint(orderID), input.Amount)
	if err != nil {
		return orderError(c, err)
	}

	return utils.Success(c, fiber.Map{"order": o})
}

func (h *OrderHandler) RefundOrder(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return utils.BadRequest(c, "Invalid order id")
	}

	txn, err := h.orderService.RefundOrder(c.Context(), uint(orderID))
	if err != nil {
		return orderError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Refund issued",
		"transaction": txn,
	})
}

// orderError maps settlement failures to HTTP responses.
func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, order.ErrInvalidDraft),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidTipAmount):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, order.ErrOrderNotFound):
		return utils.NotFound(c, "Order not found")
	case errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrRestaurantNotFound),
		errors.Is(err, repositories.ErrAddressNotFound),
		errors.Is(err, repositories.ErrMenuItemNotFound),
		errors.Is(err, repositories.ErrVariantNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, order.ErrNotAcceptingOrders),
		errors.Is(err, order.ErrTipNotAllowed),
		errors.Is(err, order.ErrNotRefundable),
		errors.Is(err, order.ErrAlreadyRefunded):
		return utils.Respond(c, fiber.StatusConflict, fiber.Map{"error": err.Error()})
	case errors.Is(err, wallet.ErrInsufficientBalance):
		return utils.Respond(c, fiber.StatusUnprocessableEntity, fiber.Map{"error": "Insufficient balance"})
	case errors.Is(err, wallet.ErrRetryExhausted):
		return utils.Respond(c, fiber.StatusConflict, fiber.Map{"error": "Wallet busy, try again"})
	case errors.Is(err, wallet.ErrWalletNotFound):
		return utils.NotFound(c, "Wallet not found")
	default:
		return utils.InternalError(c, "Failed to process order")
	}
}
