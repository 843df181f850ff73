package testutil

import (
	"time"

	"chess-fen/internal/auth/config"
	"chess-fen/internal/auth/domain/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind every fixture hash.
const TestPassword = "password123"

// Config returns a valid auth config with a fast bcrypt cost.
func Config() *config.Config {
	return &config.Config{
		JWTSecretKey:    "test-secret-key-that-is-at-least-32-chars",
		JWTIssuer:       "chess-fen-test",
		AccessTokenTTL:  time.Hour,
		BcryptCost:      bcrypt.MinCost,
		CookieName:      "token",
		CookiePath:      "/",
		CookieSecure:    true,
		CookieHTTPOnly:  true,
		CookieSameSite:  "None",
		RateLimitMax:    0,
		RateLimitWindow: time.Minute,
	}
}

// UserWithEmail returns a stored-shape user whose password is TestPassword.
func UserWithEmail(email string) *model.User {
	return UserWithPassword(email, TestPassword)
}

// UserWithPassword returns a stored-shape user with a bcrypt hash of password.
func UserWithPassword(email, password string) *model.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	now := time.Now().UTC()
	return &model.User{
		ID:           uuid.NewString(),
		Email:        model.NormalizeEmail(email),
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
