package handlers

import (
	"errors"
	"fmt"

	"mesa/internal/services/funding"
	"mesa/internal/services/transaction"
	"mesa/internal/services/wallet"
	"mesa/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	walletService      wallet.Service
	transactionService transaction.Service
	cardProcessor      funding.ChargeCard
}

func NewWalletHandler(walletService wallet.Service, transactionService transaction.Service, cardProcessor funding.ChargeCard) *WalletHandler {
	return &WalletHandler{
		walletService:      walletService,
		transactionService: transactionService,
		cardProcessor:      cardProcessor,
	}
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	var input struct {
		OwnerID uint   `json:"owner_id"`
		Role    string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	w, err := h.walletService.EnsureWallet(c.Context(), input.OwnerID, input.Role)
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidOwner) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "Failed to create wallet")
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{"wallet": w})
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID <= 0 {
		return utils.BadRequest(c, "Invalid wallet id")
	}

	w, err := h.walletService.GetWallet(c.Context(), uint(walletID))
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return utils.NotFound(c, "Wallet not found")
		}
		return utils.InternalError(c, "Failed to get wallet")
	}

	return utils.Success(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) Deposit(c *fiber.Ctx) error {
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID <= 0 {
		return utils.BadRequest(c, "Invalid wallet id")
	}

	var input struct {
		Amount    decimal.Decimal `json:"amount"`
		CardToken string          `json:"card_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Amount.Sign() <= 0 {
		return utils.BadRequest(c, "Amount must be greater than 0")
	}

	// Capture the card first; the ledger deposit only runs against money
	// already collected.
	chargeID, err := h.cardProcessor.Charge(input.CardToken, input.Amount,
		fmt.Sprintf("wallet %d deposit", walletID))
	if err != nil {
		if errors.Is(err, funding.ErrMissingSource) || errors.Is(err, funding.ErrInvalidAmount) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.BadRequest(c, "Card charge declined")
	}

	txn, err := h.transactionService.Deposit(c.Context(), uint(walletID), input.Amount,
		fmt.Sprintf("card deposit, charge %s", chargeID))
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Deposit successful",
		"transaction": txn,
	})
}

func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID <= 0 {
		return utils.BadRequest(c, "Invalid wallet id")
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Amount.Sign() <= 0 {
		return utils.BadRequest(c, "Amount must be greater than 0")
	}

	txn, err := h.transactionService.Withdraw(c.Context(), uint(walletID), input.Amount, "wallet withdrawal")
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Withdrawal successful",
		"transaction": txn,
	})
}

func (h *WalletHandler) GetHistory(c *fiber.Ctx) error {
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID <= 0 {
		return utils.BadRequest(c, "Invalid wallet id")
	}

	page := utils.GetPagination(c, 1, 20)

	transactions, err := h.transactionService.History(c.Context(), uint(walletID), page.Limit, page.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to get transactions")
	}

	return utils.Success(c, fiber.Map{
		"transactions": transactions,
		"pagination":   page,
	})
}

func (h *WalletHandler) GetTransaction(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		return utils.BadRequest(c, "Invalid transaction reference")
	}

	txn, err := h.transactionService.GetByReference(c.Context(), reference)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			return utils.NotFound(c, "Transaction not found")
		}
		return utils.InternalError(c, "Failed to get transaction")
	}

	return utils.Success(c, fiber.Map{"transaction": txn})
}

// walletError maps ledger failures to HTTP responses.
func walletError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, wallet.ErrInsufficientBalance):
		return utils.Respond(c, fiber.StatusUnprocessableEntity, fiber.Map{"error": "Insufficient balance"})
	case errors.Is(err, wallet.ErrRetryExhausted):
		return utils.Respond(c, fiber.StatusConflict, fiber.Map{"error": "Wallet busy, try again"})
	case errors.Is(err, wallet.ErrWalletNotFound):
		return utils.NotFound(c, "Wallet not found")
	case errors.Is(err, transaction.ErrInvalidAmount):
		return utils.BadRequest(c, "Amount must be greater than 0")
	default:
		return utils.InternalError(c, "Transaction failed")
	}
}
