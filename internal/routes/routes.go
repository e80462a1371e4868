// Package routes defines the API routing configuration.
// It wires repositories, services, and handlers, and groups routes with
// their middleware.
package routes

import (
	"arenapay/internal/config"
	"arenapay/internal/handlers"
	"arenapay/internal/middleware"
	"arenapay/internal/models"
	"arenapay/internal/providers/payment"
	"arenapay/internal/repositories"
	"arenapay/internal/services/wallet"

	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, logger *logrus.Logger) {
	// Repositories
	walletRepo := repositories.NewWalletRepository(db)
	orderRepo := repositories.NewDepositOrderRepository(db)

	// Payment provider
	provider := payment.NewStripeProvider(
		config.GetEnv("STRIPE_SECRET_KEY", ""),
		config.GetEnv("PAYMENT_WEBHOOK_SECRET", ""),
	)

	// Services
	walletService := wallet.NewService(
		walletRepo,
		orderRepo,
		repositories.CacheService,
		provider,
		wallet.Config{},
		&wallet.NoopMetricsCollector{},
		logger,
	)

	// Handlers
	walletHandler := handlers.NewWalletHandler(walletService)
	tournamentHandler := handlers.NewTournamentLedgerHandler(walletService)
	payoutHandler := handlers.NewPayoutHandler(walletService)
	authMiddleware := middleware.NewAuthMiddleware()

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Money-moving routes carry a per-user rate limit on top of auth.
	moneyLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
		},
	})

	walletGroup := api.Group("/wallet", authMiddleware.Handler)
	walletGroup.Get("/", walletHandler.GetWallet)
	walletGroup.Get("/transactions", walletHandler.GetTransactions)
	walletGroup.Post("/deposit/create-order", moneyLimiter, walletHandler.CreateDepositOrder)
	walletGroup.Post("/deposit/verify", walletHandler.VerifyDeposit)
	walletGroup.Post("/withdraw", moneyLimiter, walletHandler.Withdraw)
	walletGroup.Post("/check-balance", walletHandler.CheckBalance)

	tournamentGroup := api.Group("/tournaments",
		authMiddleware.Handler,
		middleware.RequirePermission(models.PermissionTournamentManage),
	)
	tournamentGroup.Post("/charge-fee", tournamentHandler.ChargeEntryFee)
	tournamentGroup.Post("/credit-prize", tournamentHandler.CreditPrize)

	payoutGroup := api.Group("/payouts",
		authMiddleware.Handler,
		middleware.RequirePermission(models.PermissionPayoutManage),
	)
	payoutGroup.Post("/settle", payoutHandler.Settle)
	payoutGroup.Post("/refund", payoutHandler.Refund)
}
