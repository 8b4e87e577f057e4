package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lagcraft/statusboard/internal/model"
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
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeTeamNotFound        = "TEAM_NOT_FOUND"
	CodeTeamNameTaken       = "TEAM_NAME_TAKEN"
	CodeTeamPrefixTaken     = "TEAM_PREFIX_TAKEN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodePlayerNameTaken     = "PLAYER_NAME_TAKEN"
	CodeAllianceNotFound    = "ALLIANCE_NOT_FOUND"
	CodeAllianceExists      = "ALLIANCE_EXISTS"
	CodeEventNotFound       = "EVENT_NOT_FOUND"
	CodeChatMessageNotFound = "CHAT_MESSAGE_NOT_FOUND"
	CodeInternalError       = "INTERNAL_ERROR"
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
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrTeamNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeTeamNameTaken, "Team name already taken"}}
	case errors.Is(err, model.ErrTeamPrefixTaken):
		return &httpError{http.StatusConflict, APIError{CodeTeamPrefixTaken, "Team prefix already taken"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrPlayerNameTaken):
		return &httpError{http.StatusConflict, APIError{CodePlayerNameTaken, "Player name already taken"}}
	case errors.Is(err, model.ErrAllianceNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAllianceNotFound, "Alliance not found"}}
	case errors.Is(err, model.ErrAllianceExists):
		return &httpError{http.StatusConflict, APIError{CodeAllianceExists, "Alliance already exists between these teams"}}
	case errors.Is(err, model.ErrEventNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeEventNotFound, "Event not found"}}
	case errors.Is(err, model.ErrChatMessageNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeChatMessageNotFound, "Chat message not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
