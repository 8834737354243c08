package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository"
	"github.com/rocketscienceinc/tictactoe-api/internal/tictactoe"
)

const gameID = "0b8f5a4e-3c1d-4e7a-9f62-1d2c3b4a5e6f"

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock

	// stored is handed to the update function when Update is expected to succeed.
	stored entity.GameState
}

func (that *mockGameRepo) Create(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) Update(ctx context.Context, id string, apply repository.UpdateFunc) (*entity.Game, error) {
	args := that.Called(ctx, id)
	if err := args.Error(0); err != nil {
		return nil, err
	}

	state, err := apply(that.stored)
	if err != nil {
		return nil, err
	}

	return &entity.Game{ID: id, GameState: state}, nil
}

type mockPublisher struct {
	mock.Mock
}

func (that *mockPublisher) Publish(game *entity.Game) {
	that.Called(game)
}

func newTestManager(repo *mockGameRepo, pub *mockPublisher) *GameManager {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewGameManager(logger, repo, pub)
}

func TestGameManager_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates and stores a new game", func(t *testing.T) {
		// Given: a repository accepting any game
		repo := &mockGameRepo{}
		repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		manager := newTestManager(repo, &mockPublisher{})

		// When: CreateGame is called
		game, err := manager.CreateGame(ctx)

		// Then: the game has a UUID and the initial state
		require.NoError(t, err)
		require.NoError(t, validateGameID(game.ID))
		assert.Equal(t, tictactoe.NewGame(), game.GameState)
		assert.False(t, game.CreatedAt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		// Given: a repository that cannot store games
		repo := &mockGameRepo{}
		repo.On("Create", mock.Anything, mock.Anything).Return(errRedisDown).Once()
		manager := newTestManager(repo, &mockPublisher{})

		// When: CreateGame is called
		game, err := manager.CreateGame(ctx)

		// Then: the storage error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameManager_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted move is published", func(t *testing.T) {
		// Given: a new stored game
		repo := &mockGameRepo{stored: tictactoe.NewGame()}
		repo.On("Update", mock.Anything, gameID).Return(nil).Once()
		pub := &mockPublisher{}
		pub.On("Publish", mock.AnythingOfType("*entity.Game")).Once()
		manager := newTestManager(repo, pub)

		// When: X plays the center
		game, err := manager.Play(ctx, gameID, entity.Move{Player: entity.X, Row: 1, Col: 1})

		// Then: O is next and the update was broadcast
		require.NoError(t, err)
		assert.Equal(t, entity.X, game.Board[4])
		assert.Equal(t, entity.O, game.NextPlayer)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("Rejected move is not published", func(t *testing.T) {
		// Given: a new stored game
		repo := &mockGameRepo{stored: tictactoe.NewGame()}
		repo.On("Update", mock.Anything, gameID).Return(nil).Once()
		pub := &mockPublisher{}
		manager := newTestManager(repo, pub)

		// When: O tries to open the game
		game, err := manager.Play(ctx, gameID, entity.Move{Player: entity.O, Row: 1, Col: 1})

		// Then: the engine error keeps its kind and message
		require.ErrorIs(t, err, apperror.ErrWrongFirstPlayer)
		assert.Equal(t, "The first player should be: X", apperror.Message(err))
		assert.Nil(t, game)
		pub.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("Unknown game", func(t *testing.T) {
		// Given: a repository without the game
		repo := &mockGameRepo{}
		notFound := apperror.New(apperror.ErrGameNotFound, "Game with Id %s is not found!", gameID)
		repo.On("Update", mock.Anything, gameID).Return(notFound).Once()
		manager := newTestManager(repo, &mockPublisher{})

		// When: a move is played
		_, err := manager.Play(ctx, gameID, entity.Move{Player: entity.X})

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Equal(t, "Game with Id "+gameID+" is not found!", apperror.Message(err))
	})

	t.Run("Malformed game id", func(t *testing.T) {
		// Given: a repository that must not be called
		repo := &mockGameRepo{}
		manager := newTestManager(repo, &mockPublisher{})

		// When: a move is played on a non UUID id
		_, err := manager.Play(ctx, "not-a-uuid", entity.Move{Player: entity.X})

		// Then: an ErrInvalidGameID error should be returned
		require.ErrorIs(t, err, apperror.ErrInvalidGameID)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Winning move", func(t *testing.T) {
		// Given: X holds two cells of the top row
		repo := &mockGameRepo{stored: entity.GameState{
			Board:      entity.Board{entity.X, entity.X, entity.Empty, entity.O, entity.O},
			NextPlayer: entity.X,
		}}
		repo.On("Update", mock.Anything, gameID).Return(nil).Once()
		pub := &mockPublisher{}
		pub.On("Publish", mock.Anything).Once()
		manager := newTestManager(repo, pub)

		// When: X completes the row
		game, err := manager.Play(ctx, gameID, entity.Move{Player: entity.X, Row: 0, Col: 2})

		// Then: the game ended
		require.NoError(t, err)
		assert.True(t, game.Ended)
		assert.Equal(t, "X", tictactoe.WinnerName(game.Board))
	})
}

func TestGameManager_GetGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the stored game", func(t *testing.T) {
		// Given: a stored game
		stored := &entity.Game{ID: gameID, GameState: tictactoe.NewGame()}
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, gameID).Return(stored, nil).Once()
		manager := newTestManager(repo, &mockPublisher{})

		// When: GetGame is called
		game, err := manager.GetGame(ctx, gameID)

		// Then: the stored game is returned
		require.NoError(t, err)
		assert.Equal(t, stored, game)
	})

	t.Run("Returns error if repository fails", func(t *testing.T) {
		// Given: a broken repository
		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, gameID).Return(nil, errRedisDown).Once()
		manager := newTestManager(repo, &mockPublisher{})

		// When: GetGame is called
		_, err := manager.GetGame(ctx, gameID)

		// Then: the error is wrapped
		require.ErrorIs(t, err, errRedisDown)
	})
}
