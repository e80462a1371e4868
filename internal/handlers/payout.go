package handlers

import (
	"errors"

	"arenapay/internal/services/wallet"
	"arenapay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// PayoutHandler exposes the back-office side of withdrawals: settling a
// payout that cleared at the bank, or refunding one that bounced. Routes
// are gated on the payout:manage permission.
type PayoutHandler struct {
	walletService wallet.Service
}

func NewPayoutHandler(walletService wallet.Service) *PayoutHandler {
	return &PayoutHandler{walletService: walletService}
}

type payoutInput struct {
	TransactionID uint   `json:"transaction_id"`
	Reason        string `json:"reason"`
}

// Settle handles POST /payouts/settle
func (h *PayoutHandler) Settle(c *fiber.Ctx) error {
	var input payoutInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.TransactionID == 0 {
		return response.BadRequest(c, "transaction_id is required")
	}

	if err := h.walletService.SettleWithdrawal(c.Context(), input.TransactionID); err != nil {
		switch {
		case errors.Is(err, wallet.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction not found")
		case errors.Is(err, wallet.ErrNotPendingPayout):
			return response.BadRequest(c, "Transaction is not a pending withdrawal")
		}
		return response.ServerError(c, "Failed to settle withdrawal")
	}

	return response.Success(c, fiber.Map{"transaction_id": input.TransactionID})
}

// Refund handles POST /payouts/refund
func (h *PayoutHandler) Refund(c *fiber.Ctx) error {
	var input payoutInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.TransactionID == 0 {
		return response.BadRequest(c, "transaction_id is required")
	}

	refund, err := h.walletService.RefundWithdrawal(c.Context(), input.TransactionID, input.Reason)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction not found")
		case errors.Is(err, wallet.ErrNotPendingPayout):
			return response.BadRequest(c, "Transaction is not a pending withdrawal")
		}
		return response.ServerError(c, "Failed to refund withdrawal")
	}

	return response.Success(c, fiber.Map{"transaction": refund})
}
