package repository

import (
	"context"

	"chess-fen/internal/auth/domain/model"
)

// UserRepository is the credential store. Implementations enforce email uniqueness at creation
// time and return model.ErrEmailTaken / model.ErrUserNotFound.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	Ping(ctx context.Context) error
}

// PasswordHasher hashes and checks passwords with a slow salted function.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
