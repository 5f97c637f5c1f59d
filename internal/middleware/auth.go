package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/templateworks/backend/internal/database"
	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/pkg/utils"
)

type AuthMiddleware struct {
	jwtManager   *utils.JWTManager
	sessionStore *database.SessionStore
}

func NewAuthMiddleware(jwtManager *utils.JWTManager, sessionStore *database.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		// First check Authorization header
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		// If no token in header, check query parameter (for file downloads/images)
		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing authorization token")
		}

		isBlacklisted, err := m.sessionStore.IsTokenBlacklisted(context.Background(), token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate token")
		}
		if isBlacklisted {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token has been revoked")
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("token", token)

		return c.Next()
	}
}

// OptionalAuth resolves a viewer when credentials are present but lets
// anonymous requests through. Endpoints behind it serve a reduced,
// public-only view to anonymous callers.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}
		token := parts[1]

		isBlacklisted, err := m.sessionStore.IsTokenBlacklisted(context.Background(), token)
		if err != nil || isBlacklisted {
			return c.Next()
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("token", token)

		return c.Next()
	}
}

// ViewerFromContext builds the identity the repositories filter by.
// It returns nil for anonymous requests.
func ViewerFromContext(c *fiber.Ctx) *models.Viewer {
	userID, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		return nil
	}
	email, _ := c.Locals("email").(string)
	return &models.Viewer{ID: userID.String(), Email: email}
}
