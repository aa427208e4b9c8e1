package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session is full")
	ErrNameTaken       = errors.New("name already taken in session")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrInvalidMove     = errors.New("invalid move")
)
