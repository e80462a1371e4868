package handlers

import (
	"errors"

	"arenapay/internal/models"
	"arenapay/internal/providers/payment"
	"arenapay/internal/services/wallet"
	"arenapay/internal/utils/pagination"
	"arenapay/internal/utils/response"
	"arenapay/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// extractUserClaims is a helper to pull validated claims off the context.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// GetWallet handles GET /wallet
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	details, err := h.walletService.GetDetails(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		return response.ServerError(c, "Failed to get wallet details")
	}

	return response.Success(c, details)
}

// GetTransactions handles GET /wallet/transactions?page&limit&type
func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	params := pagination.ParseFromRequest(c, validation.DefaultPageLimit, validation.MaxPageLimit)

	page, err := h.walletService.GetTransactionHistory(c.Context(), claims.UserID, wallet.HistoryOptions{
		Page:  params.Page,
		Limit: params.Limit,
		Type:  c.Query("type"),
	})
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidFilter) {
			return response.BadRequest(c, "Invalid transaction type filter")
		}
		return response.ServerError(c, "Failed to retrieve transactions")
	}

	return response.Success(c, page)
}

// CreateDepositOrder handles POST /wallet/deposit/create-order
func (h *WalletHandler) CreateDepositOrder(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	order, err := h.walletService.CreateDepositOrder(c.Context(), claims.UserID, input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInvalidAmount):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, wallet.ErrWalletNotFound):
			return response.NotFound(c, "Wallet not found")
		case errors.Is(err, wallet.ErrWalletLocked):
			return response.Error(c, fiber.StatusForbidden, "Wallet is locked")
		}
		return response.ServerError(c, "Failed to create deposit order")
	}

	return response.Success(c, fiber.Map{"order": order})
}

// VerifyDeposit handles POST /wallet/deposit/verify
func (h *WalletHandler) VerifyDeposit(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var payload payment.VerificationPayload
	if err := c.BodyParser(&payload); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if err := h.walletService.VerifyDeposit(c.Context(), claims.UserID, payload); err != nil {
		switch {
		case errors.Is(err, wallet.ErrOrderNotFound):
			return response.NotFound(c, "Deposit order not found")
		case errors.Is(err, wallet.ErrOrderAlreadyPaid):
			return response.Error(c, fiber.StatusConflict, "Deposit order already processed")
		case errors.Is(err, wallet.ErrVerificationFailed):
			return response.BadRequest(c, "Payment verification failed")
		}
		return response.ServerError(c, "Failed to verify payment")
	}

	return response.Success(c, fiber.Map{"verified": true})
}

// Withdraw handles POST /wallet/withdraw
func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount      float64            `json:"amount"`
		BankDetails models.BankAccount `json:"bank_details"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	tx, err := h.walletService.Withdraw(c.Context(), claims.UserID, input.Amount, input.BankDetails)
	if err != nil {
		var bankErr *wallet.BankDetailsError
		switch {
		case errors.As(err, &bankErr):
			return response.ValidationError(c, "Invalid bank details", bankErr.Fields)
		case errors.Is(err, wallet.ErrInsufficientBalance):
			return response.BadRequest(c, "Insufficient wallet balance")
		case errors.Is(err, wallet.ErrInvalidAmount):
			return response.BadRequest(c, "Invalid withdrawal amount")
		case errors.Is(err, wallet.ErrWalletLocked):
			return response.Error(c, fiber.StatusForbidden, "Wallet is locked")
		case errors.Is(err, wallet.ErrWalletNotFound):
			return response.NotFound(c, "Wallet not found")
		}
		return response.ServerError(c, "Failed to process withdrawal")
	}

	return response.Success(c, fiber.Map{"transaction": tx})
}

// CheckBalance handles POST /wallet/check-balance
func (h *WalletHandler) CheckBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	check, err := h.walletService.CheckBalance(c.Context(), claims.UserID, input.Amount)
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) {
			return response.BadRequest(c, "Amount must be greater than 0")
		}
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		return response.ServerError(c, "Failed to check balance")
	}

	return response.Success(c, check)
}
