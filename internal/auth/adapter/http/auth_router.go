package http

import (
	"time"

	"chess-fen/internal/auth/config"
	"chess-fen/internal/auth/domain/model"
	"chess-fen/internal/auth/domain/repository"
	"chess-fen/internal/auth/usecase"
	apperrors "chess-fen/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
)

const claimsLocalKey = "auth_claims"

// AuthHTTPHandler handles HTTP requests for authentication
type AuthHTTPHandler struct {
	usecase usecase.AuthUsecaseInterface
	cfg     *config.Config
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, cfg *config.Config) *AuthHTTPHandler {
	return &AuthHTTPHandler{usecase: uc, cfg: cfg}
}

// SetupAuthRoutes mounts /register, /login, /logout and /me on router. limiter guards the
// credential endpoints.
func (h *AuthHTTPHandler) SetupAuthRoutes(router fiber.Router, middleware *AuthMiddleware, limiter fiber.Handler) {
	router.Post("/register", limiter, h.Register)
	router.Post("/login", limiter, h.Login)
	router.Post("/logout", h.Logout)
	router.Get("/me", middleware.Protect(), h.GetCurrentUser)
}

// Register handles user registration
func (h *AuthHTTPHandler) Register(c *fiber.Ctx) error {
	var req usecase.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}

	user, err := h.usecase.Register(c.UserContext(), req)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(fiber.Map{"id": user.ID})
}

// Login handles user login
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}

	user, token, err := h.usecase.Login(c.UserContext(), req)
	if err != nil {
		return mapError(err)
	}

	h.setCookie(c, token)

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Logout clears the session cookie. It needs no valid session.
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	if err := h.usecase.Logout(c.UserContext(), c.Cookies(h.cfg.CookieName)); err != nil {
		return mapError(err)
	}

	h.clearCookie(c)

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// GetCurrentUser returns the stored identity behind the verified session.
func (h *AuthHTTPHandler) GetCurrentUser(c *fiber.Ctx) error {
	claims, ok := c.Locals(claimsLocalKey).(*repository.Claims)
	if !ok || claims == nil {
		return mapError(model.ErrMissingToken)
	}

	identity, err := h.usecase.CurrentUser(c.UserContext(), claims)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(identity)
}

func (h *AuthHTTPHandler) setCookie(c *fiber.Ctx, token string) {
	maxAge := int(h.cfg.AccessTokenTTL / time.Second)
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     h.cfg.CookiePath,
		Domain:   h.cfg.CookieDomain,
		MaxAge:   maxAge,
		Secure:   h.cfg.CookieSecure,
		HTTPOnly: h.cfg.CookieHTTPOnly,
		SameSite: h.cfg.CookieSameSite,
		Expires:  time.Now().Add(h.cfg.AccessTokenTTL),
	})
}

func (h *AuthHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     h.cfg.CookiePath,
		Domain:   h.cfg.CookieDomain,
		MaxAge:   -1,
		Secure:   h.cfg.CookieSecure,
		HTTPOnly: h.cfg.CookieHTTPOnly,
		SameSite: h.cfg.CookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
