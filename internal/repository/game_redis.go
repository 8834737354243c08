package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	created, err := that.client.SetNX(ctx, gameKey(game.ID), gameJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	if !created {
		return fmt.Errorf("%w: %s", ErrGameAlreadyExists, game.ID)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return getGame(ctx, that.client, id)
}

func (that *dbGame) Update(ctx context.Context, id string, apply UpdateFunc) (*entity.Game, error) {
	key := gameKey(id)

	var updated *entity.Game

	txf := func(tx *redis.Tx) error {
		game, err := getGame(ctx, tx, id)
		if err != nil {
			return err
		}

		state, err := apply(game.GameState)
		if err != nil {
			return err
		}

		game.GameState = state
		game.UpdatedAt = time.Now().UTC()

		gameJSON, err := json.Marshal(game)
		if err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}

		// the write only goes through if nobody touched the key since WATCH
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = game

		return nil
	}

	for range maxUpdateRetries {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return updated, nil
	}

	return nil, fmt.Errorf("%w: %s", apperror.ErrConcurrentUpdate, id)
}

func getGame(ctx context.Context, client getter, id string) (*entity.Game, error) {
	response, err := client.Get(ctx, gameKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, gameNotFound(id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func gameKey(id string) string {
	return "game:" + id
}
