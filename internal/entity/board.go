package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-api/internal/apperror"
)

// Size - number of rows and columns of the board.
const Size = 3

const (
	boardBorder = "+---+---+---+"

	// encodedEmpty stands for an Empty cell in the compact storage encoding.
	encodedEmpty = '-'
)

// Board - 3x3 grid stored row-major, cell (row, col) lives at row*Size+col.
// Board is a value: Set returns a modified copy.
type Board [Size * Size]Marker

// InRange - reports whether (row, col) addresses a cell of the board.
func InRange(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func (that Board) Get(row, col int) (Marker, error) {
	if !InRange(row, col) {
		return Empty, outOfRange(row, col)
	}

	return that[row*Size+col], nil
}

// Set - returns a copy of the board with marker placed at (row, col). The target cell is not checked for occupancy.
func (that Board) Set(row, col int, marker Marker) (Board, error) {
	if !InRange(row, col) {
		return that, outOfRange(row, col)
	}

	that[row*Size+col] = marker

	return that, nil
}

func (that Board) IsEmpty() bool {
	for _, cell := range that {
		if cell != Empty {
			return false
		}
	}

	return true
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Render - draws the board as a grid preceded by a blank line.
func (that Board) Render() string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(boardBorder)

	for row := 0; row < Size; row++ {
		i := row * Size
		fmt.Fprintf(&sb, "\n| %s | %s | %s |\n", that[i].Symbol(), that[i+1].Symbol(), that[i+2].Symbol())
		sb.WriteString(boardBorder)
	}

	return sb.String()
}

// Encode - compact nine character form, '-' marks an empty cell.
func (that Board) Encode() string {
	buf := make([]byte, len(that))
	for i, cell := range that {
		if cell == Empty {
			buf[i] = encodedEmpty
			continue
		}
		buf[i] = cell.String()[0]
	}

	return string(buf)
}

// DecodeBoard - parses the output of Board.Encode.
func DecodeBoard(encoded string) (Board, error) {
	var board Board

	if len(encoded) != len(board) {
		return board, fmt.Errorf("invalid encoded board length %d", len(encoded))
	}

	for i := range board {
		switch encoded[i] {
		case encodedEmpty:
			board[i] = Empty
		case 'X':
			board[i] = X
		case 'O':
			board[i] = O
		default:
			return board, fmt.Errorf("invalid encoded cell %q at %d", encoded[i], i)
		}
	}

	return board, nil
}

func outOfRange(row, col int) error {
	return apperror.New(apperror.ErrOutOfRange, "cell (%d, %d) is out of range", row, col)
}
