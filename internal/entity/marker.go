package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
)

// Marker - content of a board cell.
type Marker uint8

const (
	Empty Marker = iota
	X
	O
)

const (
	PlayerX = "X"
	PlayerO = "O"
)

// ParsePlayer - converts a player code into X or O.
func ParsePlayer(code string) (Marker, error) {
	switch code {
	case PlayerX:
		return X, nil
	case PlayerO:
		return O, nil
	default:
		return Empty, apperror.New(apperror.ErrInvalidPlayer, apperror.MsgInvalidPlayer)
	}
}

func (that Marker) String() string {
	switch that {
	case X:
		return PlayerX
	case O:
		return PlayerO
	default:
		return ""
	}
}

// Symbol - single character used when drawing the board.
func (that Marker) Symbol() string {
	if that == Empty {
		return " "
	}

	return that.String()
}

// IsPlayer - reports whether the marker is X or O.
func (that Marker) IsPlayer() bool {
	return that == X || that == O
}

// Opposite - the marker of the other player. Empty stays Empty.
func (that Marker) Opposite() Marker {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Marker) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Marker) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", " ":
		*that = Empty
	case PlayerX:
		*that = X
	case PlayerO:
		*that = O
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, string(text))
	}

	return nil
}
