package apperror

import "strings"

// Code identifies a domain failure kind. The numeric values are part of the
// API responses and must stay stable.
type Code int

const (
	CodeValidation                 Code = 28001
	CodeConsecutiveTurnsNotAllowed Code = 28002
	CodeGameNotFound               Code = 28003
	CodeInvalidGameState           Code = 28004
	CodeInvalidGameStateTransition Code = 28005
	CodeInvalidGridCellToFill      Code = 28006
	CodeIncorrectGameStart         Code = 28007
	CodeGameDeletionNotAllowed     Code = 28008
	CodeInternal                   Code = 28099
)

// Error is a terminal domain failure. Details carries the individual messages
// when several validation checks fail on one request.
type Error struct {
	Code    Code
	Message string
	Details []string
}

func (that *Error) Error() string {
	if len(that.Details) == 0 {
		return that.Message
	}

	return that.Message + ": " + strings.Join(that.Details, "; ")
}

// Is matches any *Error carrying the same code, so errors.Is works against
// the sentinels below regardless of message.
func (that *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}

	return that.Code == other.Code
}

var (
	ErrValidation                 = &Error{Code: CodeValidation, Message: "request failed validation"}
	ErrConsecutiveTurnsNotAllowed = &Error{Code: CodeConsecutiveTurnsNotAllowed, Message: "the same player is not allowed to play consecutive turns"}
	ErrGameNotFound               = &Error{Code: CodeGameNotFound, Message: "game with the given id does not exist"}
	ErrInvalidGameState           = &Error{Code: CodeInvalidGameState, Message: "game is not in a playable state"}
	ErrInvalidGameStateTransition = &Error{Code: CodeInvalidGameStateTransition, Message: "cannot perform the given action on the game"}
	ErrInvalidGridCellToFill      = &Error{Code: CodeInvalidGridCellToFill, Message: "incorrect grid cell sent to fill"}
	ErrIncorrectGameStart         = &Error{Code: CodeIncorrectGameStart, Message: "first player should play the first turn in a game"}
	ErrGameDeletionNotAllowed     = &Error{Code: CodeGameDeletionNotAllowed, Message: "game cannot be deleted when it is not in a terminal state"}
)

// Validation builds a request validation failure with an optional list of
// per-field messages.
func Validation(message string, details ...string) *Error {
	return &Error{Code: CodeValidation, Message: message, Details: details}
}

func ConsecutiveTurnsNotAllowed(message string) *Error {
	return &Error{Code: CodeConsecutiveTurnsNotAllowed, Message: message}
}

func GameNotFound(message string) *Error {
	return &Error{Code: CodeGameNotFound, Message: message}
}

func InvalidGameState(message string) *Error {
	return &Error{Code: CodeInvalidGameState, Message: message}
}

func InvalidGameStateTransition(message string) *Error {
	return &Error{Code: CodeInvalidGameStateTransition, Message: message}
}

func InvalidGridCellToFill(message string) *Error {
	return &Error{Code: CodeInvalidGridCellToFill, Message: message}
}

func IncorrectGameStart(message string) *Error {
	return &Error{Code: CodeIncorrectGameStart, Message: message}
}

func GameDeletionNotAllowed(message string) *Error {
	return &Error{Code: CodeGameDeletionNotAllowed, Message: message}
}
