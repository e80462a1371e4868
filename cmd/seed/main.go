package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"

	"arenapay/internal/config"
	"arenapay/internal/providers/payment"
	"arenapay/internal/repositories"
	"arenapay/internal/services/wallet"
)

// Provisions a wallet for a user and optionally grants a signup bonus.
// Intended for local development and first-run setup.
func main() {
	config.LoadEnv()

	rawUserID := os.Getenv("SEED_USER_ID")
	if rawUserID == "" {
		log.Fatal("SEED_USER_ID must be set in environment")
	}
	userID, err := strconv.ParseUint(rawUserID, 10, 32)
	if err != nil || userID == 0 {
		log.Fatalf("SEED_USER_ID must be a positive integer, got %q", rawUserID)
	}

	bonus := 0.0
	if raw := os.Getenv("SEED_BONUS_AMOUNT"); raw != "" {
		bonus, err = strconv.ParseFloat(raw, 64)
		if err != nil || bonus < 0 {
			log.Fatalf("SEED_BONUS_AMOUNT must be a non-negative number, got %q", raw)
		}
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Printf("failed to close PostgreSQL connection: %v", err)
				}
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("failed to close Redis connection: %v", err)
			}
		}
	}()

	walletRepo := repositories.NewWalletRepository(repositories.DB)
	orderRepo := repositories.NewDepositOrderRepository(repositories.DB)
	provider := payment.NewStripeProvider(
		config.GetEnv("STRIPE_SECRET_KEY", ""),
		config.GetEnv("PAYMENT_WEBHOOK_SECRET", ""),
	)
	svc := wallet.NewService(walletRepo, orderRepo, repositories.CacheService, provider, wallet.Config{}, nil, nil)

	ctx := context.Background()

	if _, err := walletRepo.GetByUserID(uint(userID)); err == nil {
		log.Printf("Wallet for user %d already exists", userID)
		return
	} else if !errors.Is(err, repositories.ErrWalletNotFound) {
		log.Fatalf("Failed to look up wallet: %v", err)
	}

	if _, err := svc.CreateWallet(ctx, uint(userID), ""); err != nil {
		log.Fatalf("Failed to create wallet: %v", err)
	}
	log.Printf("Wallet created for user %d", userID)

	if bonus > 0 {
		if _, err := svc.GrantBonus(ctx, uint(userID), bonus, "Signup bonus"); err != nil {
			log.Fatalf("Failed to grant signup bonus: %v", err)
		}
		log.Printf("Signup bonus of %.2f granted to user %d", bonus, userID)
	}
}
