package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/medhive/pharmacy-admin/internal/config"
	"github.com/medhive/pharmacy-admin/internal/models"
)

// SessionClaims are the claims in the session JWT minted by the remote auth
// service. We verify with the shared HS256 secret; issuing is not our job.
type SessionClaims struct {
	UserID  string      `json:"userId"`
	StoreID string      `json:"storeId"`
	Role    models.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthRequired middleware checks for a valid session token.
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization header",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authorization format",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})

		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*SessionClaims)
		if !ok || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("store_id", claims.StoreID)
		c.Locals("user_role", claims.Role)
		c.Locals("session_token", tokenString)

		return c.Next()
	}
}

// GetUserID extracts the user ID from the context.
func GetUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// GetStoreID extracts the manager's store ID from the context.
func GetStoreID(c *fiber.Ctx) string {
	if id, ok := c.Locals("store_id").(string); ok {
		return id
	}
	return ""
}

// GetUserRole extracts the user role from the context.
func GetUserRole(c *fiber.Ctx) models.Role {
	if role, ok := c.Locals("user_role").(models.Role); ok {
		return role
	}
	return models.RoleManager
}

// GetSessionToken returns the raw bearer token so it can be forwarded to the
// remote pharmacy API on the caller's behalf.
func GetSessionToken(c *fiber.Ctx) string {
	if token, ok := c.Locals("session_token").(string); ok {
		return token
	}
	return ""
}

// CanAccessStore reports whether the session may act on the given store.
// Admins may act on any store; managers only on their own.
func CanAccessStore(c *fiber.Ctx, storeID string) bool {
	if GetUserRole(c) == models.RoleAdmin {
		return true
	}
	return GetStoreID(c) == storeID
}
