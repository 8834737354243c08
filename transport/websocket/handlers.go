package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

var errSendBufferFull = errors.New("send buffer is full")

func (that *Server) handleNewGame(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	game, err := that.gameManager.CreateGame(ctx)
	if err != nil {
		that.sendError(c, msg.Action, "failed to create a new game")
		return fmt.Errorf("failed to create game: %w", err)
	}

	that.hub.watch(game.ID, c)

	log.Info("game created", "game_id", game.ID)

	return that.sendGame(c, msg.Action, game)
}

func (that *Server) handleWatch(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleWatch")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendError(c, msg.Action, "invalid payload")
		return err
	}

	game, err := that.gameManager.GetGame(ctx, payloadReq.ID)
	if err != nil {
		that.sendError(c, msg.Action, apperror.Message(err))
		return fmt.Errorf("failed to get game: %w", err)
	}

	that.hub.watch(game.ID, c)

	log.Info("watching game", "game_id", game.ID)

	return that.sendGame(c, msg.Action, game)
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendError(c, msg.Action, "invalid payload")
		return err
	}

	move, err := parseMove(payloadReq)
	if err != nil {
		that.sendError(c, msg.Action, apperror.Message(err))
		return nil
	}

	// the hub broadcasts the new state to every watcher, including this connection
	game, err := that.gameManager.Play(ctx, payloadReq.ID, move)
	if err != nil {
		that.sendError(c, msg.Action, apperror.Message(err))
		log.Debug("turn rejected", "game_id", payloadReq.ID, "error", err)
		return nil
	}

	log.Info("Player made a turn", "game_id", game.ID)

	return that.sendGame(c, msg.Action, game)
}

// parseMove - coordinates are checked before the player code.
func parseMove(payload *Payload) (entity.Move, error) {
	if !entity.InRange(payload.Row, payload.Col) {
		return entity.Move{}, apperror.New(apperror.ErrInvalidCoordinates, apperror.MsgInvalidCoordinates)
	}

	marker, err := entity.ParsePlayer(payload.Player)
	if err != nil {
		return entity.Move{}, err
	}

	return entity.Move{Player: marker, Row: payload.Row, Col: payload.Col}, nil
}

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}

func (that *Server) sendGame(c *client, action string, game *entity.Game) error {
	return that.sendMessage(c, action, Payload{ID: game.ID, Game: newGamePayload(game)})
}

func (that *Server) sendError(c *client, action, errorMsg string) {
	if err := that.sendMessage(c, action, Payload{Error: errorMsg}); err != nil {
		that.logger.Error("failed to send error response", "action", action, "error", err)
	}
}

func (that *Server) sendMessage(c *client, action string, payload Payload) error {
	data, err := encodeMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}
