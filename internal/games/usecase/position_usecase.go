package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chess-fen/internal/games/domain/model"
	"chess-fen/internal/games/domain/repository"
	"chess-fen/internal/shared/logger"

	"github.com/google/uuid"
)

// PositionUsecaseInterface defines the position store operations. ownerID always comes from
// a verified session.
type PositionUsecaseInterface interface {
	List(ctx context.Context, ownerID string) ([]*model.Position, error)
	Create(ctx context.Context, ownerID string, req CreatePositionRequest) (*model.Position, error)
	Delete(ctx context.Context, ownerID, positionID string) error
}

// CreatePositionRequest is the body of POST /games.
type CreatePositionRequest struct {
	FEN   string `json:"fen"`
	Title string `json:"title"`
}

type PositionUsecase struct {
	repo repository.PositionRepository
	log  logger.Logger
	now  func() time.Time
}

func NewPositionUsecase(repo repository.PositionRepository, log logger.Logger) *PositionUsecase {
	return &PositionUsecase{
		repo: repo,
		log:  log.WithComponent("position_usecase"),
		now:  time.Now,
	}
}

func (uc *PositionUsecase) List(ctx context.Context, ownerID string) ([]*model.Position, error) {
	positions, err := uc.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	if positions == nil {
		positions = []*model.Position{}
	}
	return positions, nil
}

func (uc *PositionUsecase) Create(ctx context.Context, ownerID string, req CreatePositionRequest) (*model.Position, error) {
	fen := strings.TrimSpace(req.FEN)
	title := strings.TrimSpace(req.Title)
	if fen == "" || title == "" {
		return nil, model.ErrMissingField
	}

	position := &model.Position{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		FEN:       fen,
		Title:     title,
		CreatedAt: uc.now().UTC().Truncate(time.Millisecond),
	}

	if err := uc.repo.Append(ctx, position); err != nil {
		if errors.Is(err, model.ErrOwnerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save position: %w", err)
	}

	uc.log.WithContext(ctx).WithFields(map[string]interface{}{"position_id": position.ID}).Debug("position saved")
	return position, nil
}

func (uc *PositionUsecase) Delete(ctx context.Context, ownerID, positionID string) error {
	if strings.TrimSpace(positionID) == "" {
		return model.ErrPositionNotFound
	}
	if err := uc.repo.Delete(ctx, ownerID, positionID); err != nil {
		if errors.Is(err, model.ErrPositionNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}
