package games

import (
	gameshttp "chess-fen/internal/games/adapter/http"
	"chess-fen/internal/games/domain/repository"
	"chess-fen/internal/games/usecase"
	"chess-fen/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// GamesModule bundles the position store behind its HTTP routes.
type GamesModule struct {
	usecase usecase.PositionUsecaseInterface
	handler *gameshttp.PositionHTTPHandler
}

func NewGamesModule(repo repository.PositionRepository, log logger.Logger) *GamesModule {
	uc := usecase.NewPositionUsecase(repo, log)
	return &GamesModule{
		usecase: uc,
		handler: gameshttp.NewPositionHTTPHandler(uc),
	}
}

// RegisterRoutes mounts /games behind protect.
func (m *GamesModule) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	m.handler.SetupRoutes(router, protect)
}

func (m *GamesModule) GetUsecase() usecase.PositionUsecaseInterface {
	return m.usecase
}
