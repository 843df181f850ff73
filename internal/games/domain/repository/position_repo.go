package repository

import (
	"context"

	"chess-fen/internal/games/domain/model"
)

// PositionRepository stores positions per owner. Every operation is scoped by ownerID;
// Append must be atomic with respect to concurrent appends for the same owner.
type PositionRepository interface {
	List(ctx context.Context, ownerID string) ([]*model.Position, error)
	Append(ctx context.Context, position *model.Position) error
	Delete(ctx context.Context, ownerID, positionID string) error
}
