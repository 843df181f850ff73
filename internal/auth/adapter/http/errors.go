package http

import (
	"errors"

	"chess-fen/internal/auth/domain/model"
	apperrors "chess-fen/internal/shared/errors"
)

// mapError turns auth domain errors into AppErrors for the fiber error handler.
func mapError(err error) error {
	switch {
	case errors.Is(err, model.ErrMissingField),
		errors.Is(err, model.ErrInvalidEmailFormat),
		errors.Is(err, model.ErrPasswordTooLong),
		errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrInvalidCredentials):
		return apperrors.NewValidationError(err.Error()).WithCause(err)
	case errors.Is(err, model.ErrMissingToken):
		return apperrors.NewAuthenticationError(err.Error()).WithCause(err)
	case errors.Is(err, model.ErrTokenInvalid):
		return apperrors.NewAuthorizationError(err.Error()).WithCause(err)
	default:
		return apperrors.WrapError(err, "auth operation failed").WithComponent("auth")
	}
}
