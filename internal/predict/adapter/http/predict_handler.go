package http

import (
	"errors"
	"io"
	"mime/multipart"

	"chess-fen/internal/predict/domain/client"
	"chess-fen/internal/predict/usecase"
	apperrors "chess-fen/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
)

// PredictHTTPHandler serves the public upload relay.
type PredictHTTPHandler struct {
	usecase   usecase.RelayUsecaseInterface
	fieldName string
}

func NewPredictHTTPHandler(uc usecase.RelayUsecaseInterface, fieldName string) *PredictHTTPHandler {
	return &PredictHTTPHandler{usecase: uc, fieldName: fieldName}
}

func (h *PredictHTTPHandler) SetupRoutes(router fiber.Router) {
	router.Post("/predict", h.Predict)
	router.Get("/predict/health", h.Health)
}

// Predict relays the uploaded image and answers with the upstream status and JSON body.
func (h *PredictHTTPHandler) Predict(c *fiber.Ctx) error {
	fh, err := c.FormFile(h.fieldName)
	if err != nil || fh == nil {
		return mapError(client.ErrNoFileProvided)
	}

	res, err := h.usecase.Predict(c.UserContext(), &usecase.Upload{
		Filename: fh.Filename,
		Open:     openFileHeader(fh),
	})
	if err != nil {
		return mapError(err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(res.StatusCode).Send(res.Body)
}

func (h *PredictHTTPHandler) Health(c *fiber.Ctx) error {
	if err := h.usecase.Health(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"upstream": "unreachable"})
	}
	return c.JSON(fiber.Map{"upstream": "ok"})
}

func openFileHeader(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return fh.Open()
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, client.ErrNoFileProvided):
		return apperrors.NewValidationError("No file uploaded").WithCause(err)
	case errors.Is(err, client.ErrUpstreamInvalidResponse):
		return apperrors.NewUpstreamError("Invalid response from prediction service").WithCause(err)
	case errors.Is(err, client.ErrUpstreamUnreachable):
		return apperrors.NewUpstreamError("Prediction service unreachable").WithCause(err)
	default:
		return apperrors.WrapError(err, "relay failed").WithComponent("predict")
	}
}
