package mongodb_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"chess-fen/internal/games/adapter/persistence/mongodb"
	"chess-fen/internal/games/domain/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PositionRepoTestSuite struct {
	suite.Suite
	client   *mongo.Client
	database *mongo.Database
	repo     *mongodb.MongoPositionRepository
}

func (suite *PositionRepoTestSuite) SetupSuite() {
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
	suite.database = client.Database("chess_fen_games_test_" + uuid.NewString()[:8])
	suite.repo = mongodb.NewMongoPositionRepository(suite.database)
}

func (suite *PositionRepoTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.database.Drop(context.Background())
		_ = suite.client.Disconnect(context.Background())
	}
}

func (suite *PositionRepoTestSuite) seedUser() string {
	id := uuid.NewString()
	_, err := suite.database.Collection("users").InsertOne(context.Background(), bson.M{
		"_id":   id,
		"email": id + "@test.com",
		"games": bson.A{},
	})
	require.NoError(suite.T(), err)
	return id
}

func (suite *PositionRepoTestSuite) position(owner, id string) *model.Position {
	return &model.Position{
		ID:        id,
		OwnerID:   owner,
		FEN:       "8/8/8/8/8/8/8/8 w - - 0 1",
		Title:     "t-" + id,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (suite *PositionRepoTestSuite) TestAppendListDelete() {
	ctx := context.Background()
	owner := suite.seedUser()

	require.NoError(suite.T(), suite.repo.Append(ctx, suite.position(owner, "p1")))
	require.NoError(suite.T(), suite.repo.Append(ctx, suite.position(owner, "p2")))

	list, err := suite.repo.List(ctx, owner)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), "p1", list[0].ID)
	assert.Equal(suite.T(), "t-p2", list[1].Title)
	assert.Equal(suite.T(), owner, list[0].OwnerID)

	require.NoError(suite.T(), suite.repo.Delete(ctx, owner, "p1"))
	list, err = suite.repo.List(ctx, owner)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), "p2", list[0].ID)
}

func (suite *PositionRepoTestSuite) TestDeleteOtherUsersPosition() {
	ctx := context.Background()
	alice := suite.seedUser()
	bob := suite.seedUser()
	require.NoError(suite.T(), suite.repo.Append(ctx, suite.position(alice, "shared-id")))

	assert.ErrorIs(suite.T(), suite.repo.Delete(ctx, bob, "shared-id"), model.ErrPositionNotFound)
	assert.ErrorIs(suite.T(), suite.repo.Delete(ctx, alice, "missing"), model.ErrPositionNotFound)

	list, err := suite.repo.List(ctx, alice)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), list, 1)
}

func (suite *PositionRepoTestSuite) TestAppendUnknownOwner() {
	err := suite.repo.Append(context.Background(), suite.position("ghost", "p1"))
	assert.ErrorIs(suite.T(), err, model.ErrOwnerNotFound)
}

func (suite *PositionRepoTestSuite) TestListUnknownOwnerIsEmpty() {
	list, err := suite.repo.List(context.Background(), "ghost")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), list)
}

func (suite *PositionRepoTestSuite) TestConcurrentAppendsAreNotLost() {
	ctx := context.Background()
	owner := suite.seedUser()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(suite.T(), suite.repo.Append(ctx, suite.position(owner, fmt.Sprintf("p%d", i))))
		}(i)
	}
	wg.Wait()

	list, err := suite.repo.List(ctx, owner)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), list, 20)
}

func TestPositionRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PositionRepoTestSuite))
}
