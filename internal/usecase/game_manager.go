package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository"
	"github.com/rocketscienceinc/tictactoe-api/internal/tictactoe"
)

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, apply repository.UpdateFunc) (*entity.Game, error)
}

// publisher - receives every game after an accepted move.
type publisher interface {
	Publish(game *entity.Game)
}

type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	publisher publisher
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, publisher publisher) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:  gameRepo,
		publisher: publisher,
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame")

	now := time.Now().UTC()
	game := &entity.Game{
		ID:        uuid.NewString(),
		GameState: tictactoe.NewGame(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	log.Info("Initial game", "game_id", game.ID, "board", game.Board.Render())

	return game, nil
}

// Play - applies move to the stored game and persists the result. Rejected moves leave the game untouched.
func (that *GameManager) Play(ctx context.Context, id string, move entity.Move) (*entity.Game, error) {
	log := that.logger.With("method", "Play", "game_id", id)

	if err := validateGameID(id); err != nil {
		return nil, err
	}

	game, err := that.gameRepo.Update(ctx, id, func(state entity.GameState) (entity.GameState, error) {
		return tictactoe.ApplyMove(state, move)
	})
	if err != nil {
		log.Debug("move rejected", "player", move.Player.String(), "row", move.Row, "col", move.Col, "error", err)
		return nil, fmt.Errorf("failed play game: %w", err)
	}

	if game.Ended {
		log.Info("The winner is", "winner", tictactoe.WinnerName(game.Board))
	}

	log.Info("Game after move", "board", game.Board.Render())

	if that.publisher != nil {
		that.publisher.Publish(game)
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	if err := validateGameID(id); err != nil {
		return nil, err
	}

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	return game, nil
}

func validateGameID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return apperror.New(apperror.ErrInvalidGameID, apperror.MsgInvalidGameID)
	}

	return nil
}
