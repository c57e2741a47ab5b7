package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Board errors. ErrOutOfBounds indicates a caller bug (indices outside
	// the fixed 6x7 grid), not a user-recoverable condition.
	ErrOutOfBounds    = errors.New("cell index out of bounds")
	ErrInvalidColumn  = errors.New("invalid column")
	ErrColumnFull     = errors.New("column is full")
	ErrMalformedBoard = errors.New("malformed board encoding")

	// Session errors
	ErrSessionNotFound   = errors.New("game session not found")
	ErrSessionFull       = errors.New("game session is already full")
	ErrNotInSession      = errors.New("player is not in this game session")
	ErrNotCreator        = errors.New("only the game creator can do this")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrGameNotPlaying    = errors.New("game is not in a playing state")
	ErrChallengePending  = errors.New("answer the question before moving")
	ErrNoChallenge       = errors.New("no question is pending")
	ErrRevisionConflict  = errors.New("session was modified concurrently")

	// Vocabulary errors
	ErrVocabularyNotLoaded = errors.New("vocabulary bank not loaded")
)
