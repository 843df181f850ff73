package model

import "errors"

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingField       = errors.New("email and password are required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrMissingToken       = errors.New("authentication required")
	ErrTokenInvalid       = errors.New("invalid or expired session")
)
