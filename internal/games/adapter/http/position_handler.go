package http

import (
	"errors"

	"chess-fen/internal/games/domain/model"
	"chess-fen/internal/games/usecase"
	apperrors "chess-fen/internal/shared/errors"
	"chess-fen/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// PositionHTTPHandler serves /games. Every route sits behind the session guard.
type PositionHTTPHandler struct {
	usecase usecase.PositionUsecaseInterface
}

func NewPositionHTTPHandler(uc usecase.PositionUsecaseInterface) *PositionHTTPHandler {
	return &PositionHTTPHandler{usecase: uc}
}

// SetupRoutes mounts the position routes under /games behind protect.
func (h *PositionHTTPHandler) SetupRoutes(router fiber.Router, protect fiber.Handler) {
	games := router.Group("/games", protect)
	games.Get("/", h.List)
	games.Post("/", h.Create)
	games.Delete("/:id", h.Delete)
}

func (h *PositionHTTPHandler) List(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return err
	}

	positions, err := h.usecase.List(c.UserContext(), ownerID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(positions)
}

func (h *PositionHTTPHandler) Create(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return err
	}

	var req usecase.CreatePositionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body")
	}

	position, err := h.usecase.Create(c.UserContext(), ownerID, req)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(position)
}

func (h *PositionHTTPHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := owner(c)
	if err != nil {
		return err
	}

	if err := h.usecase.Delete(c.UserContext(), ownerID, c.Params("id")); err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"message": "Position deleted"})
}

func owner(c *fiber.Ctx) (string, error) {
	ownerID, err := utils.GetUserIDFromContext(c.UserContext())
	if err != nil || ownerID == "" {
		return "", apperrors.NewAuthenticationError("authentication required")
	}
	return ownerID, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, model.ErrMissingField):
		return apperrors.NewValidationError(err.Error()).WithCause(err)
	case errors.Is(err, model.ErrPositionNotFound):
		return apperrors.NewNotFoundError("position").WithCause(err)
	case errors.Is(err, model.ErrOwnerNotFound):
		return apperrors.NewNotFoundError("user").WithCause(err)
	default:
		return apperrors.WrapError(err, "position operation failed").WithComponent("games")
	}
}
