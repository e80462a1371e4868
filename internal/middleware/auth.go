// Package middleware provides HTTP middleware for the fiber app.
package middleware

import (
	"strings"

	"arenapay/internal/config"
	"arenapay/internal/models"
	"arenapay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates bearer tokens issued by the external auth
// service and puts the claims into the request context. It never issues
// tokens itself.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(config.GetEnv("JWT_SECRET", "arenapay-dev-secret")),
	}
}

// Handler validates the Authorization header and stores *models.UserClaims
// under Locals("claims").
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return response.Unauthorized(c, "invalid token")
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || claims.UserID == 0 {
		return response.Unauthorized(c, "invalid claims")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// RequirePermission gates a route on a claim permission.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok || claims == nil {
			return response.Unauthorized(c, "invalid claims")
		}
		if !claims.HasPermission(permission) {
			return response.Error(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
