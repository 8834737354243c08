package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrWrongFirstPlayer   = errors.New("wrong first player")
	ErrOutOfTurn          = errors.New("it's not your turn")
	ErrGameAlreadyEnded   = errors.New("game is already finished")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrGameNotFound       = errors.New("game not found")
	ErrOutOfRange         = errors.New("cell is out of range")
	ErrInvalidGameID      = errors.New("invalid game id")

	ErrConcurrentUpdate = errors.New("game was modified concurrently")
)

// Error - carries a failure kind together with the message shown to the client.
type Error struct {
	Kind    error
	Message string
}

func New(kind error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (that *Error) Error() string {
	return that.Message
}

func (that *Error) Unwrap() error {
	return that.Kind
}

// Message - returns the client-facing message of err, or its full text when err is not an *Error.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return err.Error()
}

// Messages shared by the rules engine and the transport pre-checks.
const (
	MsgInvalidCoordinates = "Wrong row or column information, they should be between 0 and 2!"
	MsgInvalidPlayer      = "Wrong player name, it should be X or O."
	MsgInvalidGameID      = "Wrong game id, it should be a UUID."
)
