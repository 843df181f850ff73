package memory

import (
	"context"
	"sync"

	"chess-fen/internal/games/domain/model"
)

// PositionRepository keeps positions per owner in insertion order.
type PositionRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]*model.Position
}

func NewPositionRepository() *PositionRepository {
	return &PositionRepository{byOwner: make(map[string][]*model.Position)}
}

func (r *PositionRepository) List(ctx context.Context, ownerID string) ([]*model.Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byOwner[ownerID]
	out := make([]*model.Position, 0, len(stored))
	for _, p := range stored {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *PositionRepository) Append(ctx context.Context, position *model.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *position
	r.byOwner[position.OwnerID] = append(r.byOwner[position.OwnerID], &cp)
	return nil
}

func (r *PositionRepository) Delete(ctx context.Context, ownerID, positionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byOwner[ownerID]
	for i, p := range stored {
		if p.ID == positionID {
			r.byOwner[ownerID] = append(stored[:i:i], stored[i+1:]...)
			return nil
		}
	}
	return model.ErrPositionNotFound
}
