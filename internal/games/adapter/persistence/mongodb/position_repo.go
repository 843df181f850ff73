package mongodb

import (
	"context"
	"errors"
	"fmt"

	authmongo "chess-fen/internal/auth/adapter/persistence/mongodb"
	"chess-fen/internal/games/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPositionRepository keeps positions embedded in the owner's user document.
type MongoPositionRepository struct {
	users *mongo.Collection
}

func NewMongoPositionRepository(db *mongo.Database) *MongoPositionRepository {
	return &MongoPositionRepository{users: db.Collection(authmongo.UsersCollection)}
}

type gamesProjection struct {
	Games []*model.Position `bson:"games"`
}

func (r *MongoPositionRepository) List(ctx context.Context, ownerID string) ([]*model.Position, error) {
	opts := options.FindOne().SetProjection(bson.M{"games": 1})

	var doc gamesProjection
	err := r.users.FindOne(ctx, bson.M{"_id": ownerID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []*model.Position{}, nil
		}
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}

	out := make([]*model.Position, 0, len(doc.Games))
	for _, p := range doc.Games {
		p.OwnerID = ownerID
		out = append(out, p)
	}
	return out, nil
}

// Append pushes onto the owner's games array in a single update, so concurrent appends
// never overwrite each other.
func (r *MongoPositionRepository) Append(ctx context.Context, position *model.Position) error {
	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": position.OwnerID},
		bson.M{"$push": bson.M{"games": position}},
	)
	if err != nil {
		return fmt.Errorf("failed to append position: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrOwnerNotFound
	}
	return nil
}

// Delete pulls the position only when it sits under ownerID.
func (r *MongoPositionRepository) Delete(ctx context.Context, ownerID, positionID string) error {
	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": ownerID, "games._id": positionID},
		bson.M{"$pull": bson.M{"games": bson.M{"_id": positionID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if res.ModifiedCount == 0 {
		return model.ErrPositionNotFound
	}
	return nil
}
