package auth

import (
	"fmt"

	authhttp "chess-fen/internal/auth/adapter/http"
	"chess-fen/internal/auth/adapter/security"
	"chess-fen/internal/auth/config"
	"chess-fen/internal/auth/domain/repository"
	"chess-fen/internal/auth/usecase"
	"chess-fen/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	repository repository.UserRepository
	tokenSvc   repository.TokenService
	usecase    usecase.AuthUsecaseInterface
	handler    *authhttp.AuthHTTPHandler
	middleware *authhttp.AuthMiddleware
	config     *config.Config
}

// NewAuthModule wires the module around an already opened user store.
func NewAuthModule(repo repository.UserRepository, cfg *config.Config, log logger.Logger, opts ...security.Option) (*AuthModule, error) {
	tokenSvc, err := security.NewJWTokenService(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	authUsecase := usecase.NewAuthUsecase(repo, tokenSvc, security.NewBcryptHasher(cfg.BcryptCost), log)

	return &AuthModule{
		repository: repo,
		tokenSvc:   tokenSvc,
		usecase:    authUsecase,
		handler:    authhttp.NewAuthHTTPHandler(authUsecase, cfg),
		middleware: authhttp.NewAuthMiddleware(authUsecase, cfg.CookieName),
		config:     cfg,
	}, nil
}

// RegisterRoutes registers authentication routes with the provided router. limiter guards
// /register and /login.
func (am *AuthModule) RegisterRoutes(router fiber.Router, limiter fiber.Handler) {
	am.handler.SetupAuthRoutes(router, am.middleware, limiter)
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the auth middleware
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}

// GetRepository exposes the user store for health checks.
func (am *AuthModule) GetRepository() repository.UserRepository {
	return am.repository
}
