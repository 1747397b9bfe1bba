// Package apperr provides structured validation/engine errors: every
// failure carries a stable Code plus the Field it concerns.
package apperr

import "fmt"

// Code identifies the kind of failure, independent of the human-readable
// message. Callers that need to branch on error kind should use errors.As
// to recover an *Error and switch on Code.
type Code string

const (
	InvalidChipAmount   Code = "INVALID_CHIP_AMOUNT"
	InvalidAmount       Code = "INVALID_AMOUNT"
	InvalidConfig       Code = "INVALID_CONFIG"
	PlayerNotFound      Code = "PLAYER_NOT_FOUND"
	WrongPlayer         Code = "WRONG_PLAYER"
	PlayerNotActive     Code = "PLAYER_NOT_ACTIVE"
	IllegalActionType   Code = "ILLEGAL_ACTION_TYPE"
	InvalidCallAmount   Code = "INVALID_CALL_AMOUNT"
	InvalidRaiseAmount  Code = "INVALID_RAISE_AMOUNT"
	InsufficientFunds   Code = "INSUFFICIENT_FUNDS"
	GameNotOver         Code = "GAME_NOT_OVER"
	NotAtShowdown       Code = "NOT_AT_SHOWDOWN"
	BoardIncomplete     Code = "BOARD_INCOMPLETE"
	InfosetSizeMismatch Code = "INFOSET_SIZE_MISMATCH"
)

// Error is the structured error every validator and engine failure returns.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: field %q: %s", e.Code, e.Field, e.Message)
}

// New builds a structured error with an explicit message.
func New(code Code, field, message string) *Error {
	return &Error{Code: code, Field: field, Message: message}
}

// Newf builds a structured error with a formatted message.
func Newf(code Code, field, format string, args ...any) *Error {
	return &Error{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}
