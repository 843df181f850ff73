package predict

import (
	"fmt"

	predicthttp "chess-fen/internal/predict/adapter/http"
	"chess-fen/internal/predict/adapter/tempstore"
	"chess-fen/internal/predict/adapter/upstream"
	"chess-fen/internal/predict/config"
	"chess-fen/internal/predict/domain/client"
	"chess-fen/internal/predict/usecase"
	"chess-fen/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// PredictModule is the upload relay.
type PredictModule struct {
	usecase usecase.RelayUsecaseInterface
	handler *predicthttp.PredictHTTPHandler
	config  *config.Config
}

// NewPredictModule builds the relay. A nil predictor selects the HTTP upstream from cfg.
func NewPredictModule(cfg *config.Config, predictor client.Predictor, log logger.Logger) (*PredictModule, error) {
	store, err := tempstore.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload store: %w", err)
	}
	if predictor == nil {
		predictor = upstream.NewFiberPredictor(cfg)
	}

	uc := usecase.NewRelayUsecase(store, predictor, log)
	return &PredictModule{
		usecase: uc,
		handler: predicthttp.NewPredictHTTPHandler(uc, cfg.FieldName),
		config:  cfg,
	}, nil
}

func (m *PredictModule) RegisterRoutes(router fiber.Router) {
	m.handler.SetupRoutes(router)
}

func (m *PredictModule) GetUsecase() usecase.RelayUsecaseInterface {
	return m.usecase
}
