package usecase_test

import (
	"context"
	"errors"
	"testing"

	"chess-fen/internal/games/adapter/persistence/memory"
	"chess-fen/internal/games/domain/model"
	"chess-fen/internal/games/usecase"
	"chess-fen/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const emptyBoard = "8/8/8/8/8/8/8/8 w - - 0 1"

type mockPositionRepository struct {
	mock.Mock
}

func (m *mockPositionRepository) List(ctx context.Context, ownerID string) ([]*model.Position, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Position), args.Error(1)
}

func (m *mockPositionRepository) Append(ctx context.Context, position *model.Position) error {
	return m.Called(ctx, position).Error(0)
}

func (m *mockPositionRepository) Delete(ctx context.Context, ownerID, positionID string) error {
	return m.Called(ctx, ownerID, positionID).Error(0)
}

type PositionUsecaseTestSuite struct {
	suite.Suite
	ctx context.Context
	uc  *usecase.PositionUsecase
}

func (suite *PositionUsecaseTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.uc = usecase.NewPositionUsecase(memory.NewPositionRepository(), logger.NewNopLogger())
}

func (suite *PositionUsecaseTestSuite) TestCreateThenListThenDelete() {
	created, err := suite.uc.Create(suite.ctx, "alice", usecase.CreatePositionRequest{FEN: emptyBoard, Title: "t"})
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), created.ID)
	assert.False(suite.T(), created.CreatedAt.IsZero())

	list, err := suite.uc.List(suite.ctx, "alice")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), created.ID, list[0].ID)
	assert.Equal(suite.T(), emptyBoard, list[0].FEN)
	assert.Equal(suite.T(), "t", list[0].Title)

	require.NoError(suite.T(), suite.uc.Delete(suite.ctx, "alice", created.ID))

	list, err = suite.uc.List(suite.ctx, "alice")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), list)
}

func (suite *PositionUsecaseTestSuite) TestCreate_TrimsAndRequiresFields() {
	testCases := []struct {
		name string
		req  usecase.CreatePositionRequest
	}{
		{"missing fen", usecase.CreatePositionRequest{Title: "t"}},
		{"missing title", usecase.CreatePositionRequest{FEN: emptyBoard}},
		{"blank title", usecase.CreatePositionRequest{FEN: emptyBoard, Title: "   "}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.uc.Create(suite.ctx, "alice", tc.req)
			assert.ErrorIs(suite.T(), err, model.ErrMissingField)
		})
	}

	p, err := suite.uc.Create(suite.ctx, "alice", usecase.CreatePositionRequest{FEN: " " + emptyBoard + "\n", Title: " t "})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), emptyBoard, p.FEN)
	assert.Equal(suite.T(), "t", p.Title)
}

func (suite *PositionUsecaseTestSuite) TestListPreservesCreationOrder() {
	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		p, err := suite.uc.Create(suite.ctx, "alice", usecase.CreatePositionRequest{FEN: emptyBoard, Title: title})
		require.NoError(suite.T(), err)
		ids = append(ids, p.ID)
	}

	list, err := suite.uc.List(suite.ctx, "alice")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 3)
	for i, p := range list {
		assert.Equal(suite.T(), ids[i], p.ID)
	}
}

func (suite *PositionUsecaseTestSuite) TestDeleteOtherUsersPositionIsNotFound() {
	p, err := suite.uc.Create(suite.ctx, "alice", usecase.CreatePositionRequest{FEN: emptyBoard, Title: "mine"})
	require.NoError(suite.T(), err)

	err = suite.uc.Delete(suite.ctx, "bob", p.ID)
	assert.ErrorIs(suite.T(), err, model.ErrPositionNotFound)

	err = suite.uc.Delete(suite.ctx, "bob", "does-not-exist")
	assert.ErrorIs(suite.T(), err, model.ErrPositionNotFound)

	list, _ := suite.uc.List(suite.ctx, "alice")
	assert.Len(suite.T(), list, 1)

	bobs, _ := suite.uc.List(suite.ctx, "bob")
	assert.Empty(suite.T(), bobs)
}

func TestPositionUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(PositionUsecaseTestSuite))
}

func TestList_NilFromRepoBecomesEmpty(t *testing.T) {
	repo := new(mockPositionRepository)
	repo.On("List", mock.Anything, "alice").Return(nil, nil)

	list, err := usecase.NewPositionUsecase(repo, logger.NewNopLogger()).List(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestCreate_StoreErrorIsWrapped(t *testing.T) {
	repo := new(mockPositionRepository)
	repo.On("Append", mock.Anything, mock.AnythingOfType("*model.Position")).Return(errors.New("write conflict"))

	_, err := usecase.NewPositionUsecase(repo, logger.NewNopLogger()).
		Create(context.Background(), "alice", usecase.CreatePositionRequest{FEN: emptyBoard, Title: "t"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save position")
}

func TestCreate_UnknownOwnerPassesThrough(t *testing.T) {
	repo := new(mockPositionRepository)
	repo.On("Append", mock.Anything, mock.Anything).Return(model.ErrOwnerNotFound)

	_, err := usecase.NewPositionUsecase(repo, logger.NewNopLogger()).
		Create(context.Background(), "ghost", usecase.CreatePositionRequest{FEN: emptyBoard, Title: "t"})

	assert.ErrorIs(t, err, model.ErrOwnerNotFound)
}
