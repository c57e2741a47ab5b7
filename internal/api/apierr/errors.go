package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidColumn      = "INVALID_COLUMN"
	CodeColumnFull         = "COLUMN_FULL"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotCreator         = "NOT_CREATOR"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeNotInGame          = "NOT_IN_GAME"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameFull           = "GAME_FULL"
	CodeGameNotPlaying     = "GAME_NOT_PLAYING"
	CodeQuestionPending    = "QUESTION_PENDING"
	CodeNoQuestionPending  = "NO_QUESTION_PENDING"
	CodeConcurrentUpdate   = "CONCURRENT_UPDATE"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrSessionFull):
		return &httpError{http.StatusConflict, APIError{CodeGameFull, "Game already has two players"}}
	case errors.Is(err, model.ErrNotInSession):
		return &httpError{http.StatusForbidden, APIError{CodeNotInGame, "You are not a player in this game"}}
	case errors.Is(err, model.ErrNotCreator):
		return &httpError{http.StatusForbidden, APIError{CodeNotCreator, "Only the game creator can do this"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrGameNotPlaying):
		return &httpError{http.StatusConflict, APIError{CodeGameNotPlaying, "Game is not in progress"}}
	case errors.Is(err, model.ErrChallengePending):
		return &httpError{http.StatusConflict, APIError{CodeQuestionPending, "Answer the question before moving"}}
	case errors.Is(err, model.ErrNoChallenge):
		return &httpError{http.StatusConflict, APIError{CodeNoQuestionPending, "No question is pending"}}
	case errors.Is(err, model.ErrInvalidColumn):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidColumn, "Column must be between 0 and 6"}}
	case errors.Is(err, model.ErrColumnFull):
		return &httpError{http.StatusConflict, APIError{CodeColumnFull, "Column is full"}}
	case errors.Is(err, model.ErrRevisionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConcurrentUpdate, "Game was modified concurrently, retry"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
