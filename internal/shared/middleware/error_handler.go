package middleware

import (
	"errors"

	apperrors "chess-fen/internal/shared/errors"
	"chess-fen/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error that reaches the fiber boundary as {"error": message}.
// AppErrors keep their status and public message; fiber errors below 500 pass through;
// everything else, including recovered panics, becomes a redacted 500.
func ErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		reqLog := log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		})

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.HTTPCode >= fiber.StatusInternalServerError {
				reqLog.WithError(err).Error("request failed")
			}
			return c.Status(appErr.HTTPCode).JSON(fiber.Map{
				"error": appErr.PublicMessage(),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		reqLog.WithError(err).Error("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": apperrors.InternalMessage,
		})
	}
}
