package handler

import (
	"net/http"

	"github.com/PauPin2013/Connect4/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidColumn      = apierr.CodeInvalidColumn
	CodeColumnFull         = apierr.CodeColumnFull
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeNotCreator         = apierr.CodeNotCreator
	CodeNotYourTurn        = apierr.CodeNotYourTurn
	CodeNotInGame          = apierr.CodeNotInGame
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeGameNotFound       = apierr.CodeGameNotFound
	CodeGameFull           = apierr.CodeGameFull
	CodeGameNotPlaying     = apierr.CodeGameNotPlaying
	CodeQuestionPending    = apierr.CodeQuestionPending
	CodeNoQuestionPending  = apierr.CodeNoQuestionPending
	CodeConcurrentUpdate   = apierr.CodeConcurrentUpdate
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
