package mongodb

import (
	"context"
	"errors"
	"fmt"

	"chess-fen/internal/auth/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection also holds each user's saved positions in its games array.
const UsersCollection = "users"

// MongoUserRepository implements repository.UserRepository using MongoDB
type MongoUserRepository struct {
	db    *mongo.Database
	users *mongo.Collection
}

// NewMongoUserRepository creates the repository and ensures the unique email index exists.
func NewMongoUserRepository(ctx context.Context, db *mongo.Database) (*MongoUserRepository, error) {
	repo := &MongoUserRepository{
		db:    db,
		users: db.Collection(UsersCollection),
	}

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	}
	if _, err := repo.users.Indexes().CreateOne(ctx, emailIndex); err != nil {
		return nil, fmt.Errorf("failed to create email index: %w", err)
	}

	return repo, nil
}

// CreateUser inserts the user with an empty games array.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	doc := bson.M{
		"_id":           user.ID,
		"email":         model.NormalizeEmail(user.Email),
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
		"games":         bson.A{},
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, model.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"email": email})
}

// GetUserByID retrieves a user by ID
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, model.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	// games can be large and is not part of the credential record
	opts := options.FindOne().SetProjection(bson.M{"games": 0})

	var user model.User
	if err := r.users.FindOne(ctx, filter, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}
