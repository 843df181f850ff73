package repository

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies stateless session tokens. A token stays valid until it
// expires; there is no server-side revocation list.
type TokenService interface {
	GenerateToken(ctx context.Context, userID, email string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the signed session payload. Subject mirrors UserID.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
