package entity

import (
	"fmt"
	"time"
)

const firstMoveDescription = "X can start the game"

// GameState - everything the rules need to judge the next move.
type GameState struct {
	Board Board `json:"board"`
	// NextPlayer is Empty only until the first move is accepted.
	NextPlayer Marker `json:"next_player"`
	Ended      bool   `json:"ended"`
}

// Game - persisted game record.
type Game struct {
	ID string `json:"id"`
	GameState
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Move - placement proposed by a player.
type Move struct {
	Player Marker `json:"player"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

func (that GameState) IsFinished() bool {
	return that.Ended
}

// NextPlayerDescription - human readable turn information returned to clients.
func (that GameState) NextPlayerDescription() string {
	if that.NextPlayer == Empty {
		return firstMoveDescription
	}

	return fmt.Sprintf("%s Player", that.NextPlayer)
}
