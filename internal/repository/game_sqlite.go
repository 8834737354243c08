package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

const (
	insertGameQuery = `INSERT INTO games (id, board, next_player, ended, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectGameQuery = `SELECT id, board, next_player, ended, created_at, updated_at FROM games WHERE id = ?`
	updateGameQuery = `UPDATE games SET board = ?, next_player = ?, ended = ?, updated_at = ? WHERE id = ?`
)

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqliteGame struct {
	conn *sql.DB
}

func NewSQLiteGameRepository(conn *sql.DB) GameRepository {
	return &sqliteGame{
		conn: conn,
	}
}

func (that *sqliteGame) Create(ctx context.Context, game *entity.Game) error {
	exists, err := that.exists(ctx, game.ID)
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrGameAlreadyExists, game.ID)
	}

	_, err = that.conn.ExecContext(ctx, insertGameQuery,
		game.ID,
		game.Board.Encode(),
		game.NextPlayer.String(),
		game.Ended,
		game.CreatedAt.UnixMilli(),
		game.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	return nil
}

func (that *sqliteGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return scanGame(ctx, that.conn, id)
}

func (that *sqliteGame) Update(ctx context.Context, id string, apply UpdateFunc) (*entity.Game, error) {
	// transactions start with BEGIN IMMEDIATE, so a second writer waits here until this one commits
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	game, err := scanGame(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	state, err := apply(game.GameState)
	if err != nil {
		return nil, err
	}

	game.GameState = state
	game.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, updateGameQuery,
		game.Board.Encode(),
		game.NextPlayer.String(),
		game.Ended,
		game.UpdatedAt.UnixMilli(),
		game.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return game, nil
}

func (that *sqliteGame) exists(ctx context.Context, id string) (bool, error) {
	_, err := scanGame(ctx, that.conn, id)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, apperror.ErrGameNotFound) {
		return false, nil
	}

	return false, err
}

func scanGame(ctx context.Context, q querier, id string) (*entity.Game, error) {
	var (
		game       entity.Game
		board      string
		nextPlayer string
		createdAt  int64
		updatedAt  int64
	)

	err := q.QueryRowContext(ctx, selectGameQuery, id).
		Scan(&game.ID, &board, &nextPlayer, &game.Ended, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gameNotFound(id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Board, err = entity.DecodeBoard(board)
	if err != nil {
		return nil, fmt.Errorf("failed to decode board: %w", err)
	}

	if err = game.NextPlayer.UnmarshalText([]byte(nextPlayer)); err != nil {
		return nil, fmt.Errorf("failed to decode next player: %w", err)
	}

	game.CreatedAt = time.UnixMilli(createdAt).UTC()
	game.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	return &game, nil
}
