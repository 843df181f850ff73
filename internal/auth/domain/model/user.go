package model

import (
	"strings"
	"time"
)

// User represents an account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// Identity is what a verified session asserts about its bearer.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// NormalizeEmail is the canonical form used for uniqueness and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
