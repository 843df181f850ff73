package mongodb_test

import (
	"context"
	"testing"
	"time"

	"chess-fen/internal/auth/adapter/persistence/mongodb"
	"chess-fen/internal/auth/domain/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepoTestSuite struct {
	suite.Suite
	client     *mongo.Client
	database   *mongo.Database
	repository *mongodb.MongoUserRepository
}

func (suite *MongoRepoTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017").
		SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		suite.T().Skip("MongoDB not available for testing")
		return
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		suite.T().Skip("MongoDB not available for testing")
		return
	}

	suite.client = client
	suite.database = client.Database("chess_fen_auth_test_" + uuid.NewString()[:8])

	repo, err := mongodb.NewMongoUserRepository(ctx, suite.database)
	if err != nil {
		suite.T().Skip("Failed to create repository for testing")
		return
	}
	suite.repository = repo
}

func (suite *MongoRepoTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.database.Drop(context.Background())
		_ = suite.client.Disconnect(context.Background())
	}
}

func (suite *MongoRepoTestSuite) newUser(email string) *model.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &model.User{ID: uuid.NewString(), Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
}

func (suite *MongoRepoTestSuite) TestCreateUser_NilUser() {
	err := suite.repository.CreateUser(context.Background(), nil)
	assert.EqualError(suite.T(), err, "user cannot be nil")
}

func (suite *MongoRepoTestSuite) TestCreateAndFind() {
	ctx := context.Background()
	user := suite.newUser("Find@Me.com")
	require.NoError(suite.T(), suite.repository.CreateUser(ctx, user))

	got, err := suite.repository.GetUserByEmail(ctx, " find@me.com ")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, got.ID)
	assert.Equal(suite.T(), "find@me.com", got.Email)
	assert.Equal(suite.T(), "hash", got.PasswordHash)

	byID, err := suite.repository.GetUserByID(ctx, user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), got.Email, byID.Email)
}

func (suite *MongoRepoTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	require.NoError(suite.T(), suite.repository.CreateUser(ctx, suite.newUser("dup@b.com")))

	err := suite.repository.CreateUser(ctx, suite.newUser("DUP@b.com"))
	assert.ErrorIs(suite.T(), err, model.ErrEmailTaken)
}

func (suite *MongoRepoTestSuite) TestGetUserByEmail_EmptyEmail() {
	_, err := suite.repository.GetUserByEmail(context.Background(), "")
	assert.ErrorIs(suite.T(), err, model.ErrUserNotFound)
}

func (suite *MongoRepoTestSuite) TestGetUserByID_Unknown() {
	_, err := suite.repository.GetUserByID(context.Background(), "nope")
	assert.ErrorIs(suite.T(), err, model.ErrUserNotFound)
}

func (suite *MongoRepoTestSuite) TestPing() {
	assert.NoError(suite.T(), suite.repository.Ping(context.Background()))
}

func TestMongoRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MongoRepoTestSuite))
}
