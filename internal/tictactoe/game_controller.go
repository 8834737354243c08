package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

// NoWinner - reported as the winner of a tied game.
const NoWinner = "No one"

type cell struct {
	row, col int
}

// WinCombos - three rows, three columns and two diagonals.
var WinCombos = [8][3]cell{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// NewGame - initial state: empty board, nobody to move yet.
func NewGame() entity.GameState {
	return entity.GameState{
		Board:      entity.Board{},
		NextPlayer: entity.Empty,
		Ended:      false,
	}
}

// ApplyMove - validates move against state and returns the state after it. The input state is never modified.
func ApplyMove(state entity.GameState, move entity.Move) (entity.GameState, error) {
	if err := validateMove(state, move); err != nil {
		return state, err
	}

	board, err := state.Board.Set(move.Row, move.Col, move.Player)
	if err != nil {
		return state, err
	}

	next := entity.GameState{
		Board:      board,
		NextPlayer: move.Player.Opposite(),
	}

	if _, won := Winner(board); won || board.IsFull() {
		next.Ended = true
	}

	return next, nil
}

// validateMove - checks the move, first failing check wins.
func validateMove(state entity.GameState, move entity.Move) error {
	if !entity.InRange(move.Row, move.Col) {
		return apperror.New(apperror.ErrInvalidCoordinates, apperror.MsgInvalidCoordinates)
	}

	if !move.Player.IsPlayer() {
		return apperror.New(apperror.ErrInvalidPlayer, apperror.MsgInvalidPlayer)
	}

	if state.Board.IsEmpty() && move.Player != entity.X {
		return apperror.New(apperror.ErrWrongFirstPlayer, "The first player should be: %s", entity.X)
	}

	if state.NextPlayer != entity.Empty && state.NextPlayer != move.Player {
		return apperror.New(apperror.ErrOutOfTurn, "The next player should be: %s", state.NextPlayer)
	}

	if state.Ended {
		return apperror.New(apperror.ErrGameAlreadyEnded, "The game is end and the winner was: %s", WinnerName(state.Board))
	}

	if marker, _ := state.Board.Get(move.Row, move.Col); marker != entity.Empty {
		return apperror.New(apperror.ErrCellOccupied, "The asked box is not Blank row = %d, col = %d ", move.Row, move.Col)
	}

	return nil
}

// HasWon - reports whether marker fills any winning triple.
func HasWon(board entity.Board, marker entity.Marker) bool {
	for _, combo := range WinCombos {
		if lineOf(board, combo, marker) {
			return true
		}
	}

	return false
}

// Winner - O is checked before X, so a board where both have a line reports O.
func Winner(board entity.Board) (entity.Marker, bool) {
	for _, marker := range [...]entity.Marker{entity.O, entity.X} {
		if HasWon(board, marker) {
			return marker, true
		}
	}

	return entity.Empty, false
}

// WinnerName - winner marker as text, NoWinner when nobody has a line.
func WinnerName(board entity.Board) string {
	if marker, ok := Winner(board); ok {
		return marker.String()
	}

	return NoWinner
}

func lineOf(board entity.Board, combo [3]cell, marker entity.Marker) bool {
	for _, c := range combo {
		if got, _ := board.Get(c.row, c.col); got != marker {
			return false
		}
	}

	return true
}
