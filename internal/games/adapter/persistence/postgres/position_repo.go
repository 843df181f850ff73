package postgres

import (
	"context"
	"errors"
	"fmt"

	"chess-fen/internal/games/domain/model"
	"chess-fen/internal/shared/database"

	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

type PositionRepository struct {
	db database.DBTX
}

func NewPositionRepository(db database.DBTX) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) List(ctx context.Context, ownerID string) ([]*model.Position, error) {
	query :=
		`SELECT id, owner_id, fen, title, created_at FROM positions
		 WHERE owner_id = $1
		 ORDER BY seq
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Position, 0)
	for rows.Next() {
		p := &model.Position{}
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.FEN, &p.Title, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PositionRepository) Append(ctx context.Context, position *model.Position) error {
	query :=
		`INSERT INTO positions (id, owner_id, fen, title, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		position.ID, position.OwnerID, position.FEN, position.Title, position.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return model.ErrOwnerNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PositionRepository) Delete(ctx context.Context, ownerID, positionID string) error {
	query :=
		`DELETE FROM positions
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, positionID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return model.ErrPositionNotFound
	}
	return nil
}
