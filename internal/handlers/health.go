package handlers

import (
	"arenapay/internal/repositories"
	"arenapay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports process, database, and cache liveness.
func HealthCheck(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "ok",
		"database": "ok",
		"cache":    "ok",
	}

	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	}

	if repositories.CacheService == nil || repositories.CacheService.HealthCheck(c.Context()) != nil {
		status["status"] = "degraded"
		status["cache"] = "unreachable"
	}

	return response.Success(c, status)
}
