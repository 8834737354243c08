package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/tictactoe"
)

const (
	actionNewGame = "game:new"
	actionWatch   = "game:watch"
	actionTurn    = "game:turn"
	actionUpdate  = "game:update"
)

// Message - a frame exchanged with the client.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	ID     string       `json:"id,omitempty"`
	Player string       `json:"player,omitempty"`
	Row    int          `json:"row"`
	Col    int          `json:"col"`
	Game   *GamePayload `json:"game,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type GamePayload struct {
	ID         string                           `json:"id"`
	NextPlayer string                           `json:"nextPlayer"`
	EndGame    bool                             `json:"endGame"`
	Board      [entity.Size][entity.Size]string `json:"board"`
	Winner     string                           `json:"winner,omitempty"`
}

func newGamePayload(game *entity.Game) *GamePayload {
	payload := &GamePayload{
		ID:         game.ID,
		NextPlayer: game.NextPlayerDescription(),
		EndGame:    game.Ended,
	}

	for i, cell := range game.Board {
		payload.Board[i/entity.Size][i%entity.Size] = cell.String()
	}

	if game.Ended {
		payload.Winner = tictactoe.WinnerName(game.Board)
	}

	return payload
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{
		Action:  action,
		Payload: rawPayload,
	})
}
