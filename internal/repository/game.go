package repository

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

// maxUpdateRetries - how many times an optimistic update is replayed after a concurrent write.
const maxUpdateRetries = 10

var ErrGameAlreadyExists = errors.New("game already exists")

// UpdateFunc - computes the new state of a game from the stored one. Returning an error aborts the update.
type UpdateFunc func(state entity.GameState) (entity.GameState, error)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	// Update - loads, applies and stores the game as one step. Concurrent updates of the same id are serialized.
	Update(ctx context.Context, id string, apply UpdateFunc) (*entity.Game, error)
}

func gameNotFound(id string) error {
	return apperror.New(apperror.ErrGameNotFound, "Game with Id %s is not found!", id)
}
