package http

import (
	"strings"

	"chess-fen/internal/auth/usecase"
	"chess-fen/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware provides authentication middleware for Fiber
type AuthMiddleware struct {
	usecase    usecase.AuthUsecaseInterface
	cookieName string
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		usecase:    uc,
		cookieName: cookieName,
	}
}

// Protect requires a valid session. A missing token is 401, a bad or expired one 403.
// The verified user id and email are put on the request's user context.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.usecase.VerifyToken(c.UserContext(), m.extractToken(c))
		if err != nil {
			return mapError(err)
		}

		ctx := utils.WithUserID(c.UserContext(), claims.UserID)
		ctx = utils.WithUserEmail(ctx, claims.Email)
		c.SetUserContext(ctx)
		c.Locals(claimsLocalKey, claims)

		return c.Next()
	}
}

// extractToken prefers the session cookie and falls back to a bearer header.
func (m *AuthMiddleware) extractToken(c *fiber.Ctx) string {
	if token := c.Cookies(m.cookieName); token != "" {
		return token
	}

	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
