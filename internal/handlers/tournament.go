package handlers

import (
	"errors"

	"arenapay/internal/services/wallet"
	"arenapay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TournamentLedgerHandler exposes the tournament-side ledger producers:
// entry fee charges and prize payouts. These routes are gated on the
// tournament:manage permission.
type TournamentLedgerHandler struct {
	walletService wallet.Service
}

func NewTournamentLedgerHandler(walletService wallet.Service) *TournamentLedgerHandler {
	return &TournamentLedgerHandler{walletService: walletService}
}

type ledgerEntryInput struct {
	UserID       uint    `json:"user_id"`
	Amount       float64 `json:"amount"`
	TournamentID string  `json:"tournament_id"`
	Description  string  `json:"description"`
}

// ChargeEntryFee handles POST /tournaments/charge-fee
func (h *TournamentLedgerHandler) ChargeEntryFee(c *fiber.Ctx) error {
	var input ledgerEntryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.UserID == 0 || input.Amount <= 0 {
		return response.BadRequest(c, "user_id and a positive amount are required")
	}

	tx, err := h.walletService.ChargeTournamentFee(c.Context(), input.UserID, input.Amount, input.TournamentID, input.Description)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInsufficientBalance):
			return response.BadRequest(c, "Insufficient wallet balance")
		case errors.Is(err, wallet.ErrWalletNotFound):
			return response.NotFound(c, "Wallet not found")
		case errors.Is(err, wallet.ErrWalletLocked):
			return response.Error(c, fiber.StatusForbidden, "Wallet is locked")
		}
		return response.ServerError(c, "Failed to charge entry fee")
	}

	return response.Success(c, fiber.Map{"transaction": tx})
}

// CreditPrize handles POST /tournaments/credit-prize
func (h *TournamentLedgerHandler) CreditPrize(c *fiber.Ctx) error {
	var input ledgerEntryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.UserID == 0 || input.Amount <= 0 {
		return response.BadRequest(c, "user_id and a positive amount are required")
	}

	tx, err := h.walletService.CreditPrize(c.Context(), input.UserID, input.Amount, input.TournamentID, input.Description)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrWalletNotFound):
			return response.NotFound(c, "Wallet not found")
		case errors.Is(err, wallet.ErrWalletLocked):
			return response.Error(c, fiber.StatusForbidden, "Wallet is locked")
		}
		return response.ServerError(c, "Failed to credit prize")
	}

	return response.Success(c, fiber.Map{"transaction": tx})
}
