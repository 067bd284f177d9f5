package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/teamdraft/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidName      = "INVALID_NAME"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeNotEnoughPlayers = "NOT_ENOUGH_PLAYERS"
	CodeInvalidDrawMode  = "INVALID_DRAW_MODE"
	CodeNothingToPause   = "NOTHING_TO_PAUSE"
	CodeNoTeams          = "NO_TEAMS"
	CodeWrongTossPhase   = "WRONG_TOSS_PHASE"
	CodeInvalidCall      = "INVALID_CALL"
	CodeInvalidSide      = "INVALID_SIDE"
	CodeInvalidSideMode  = "INVALID_SIDE_MODE"
	CodeInvalidMapCount  = "INVALID_MAP_COUNT"
	CodeUnknownSound     = "UNKNOWN_SOUND"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeRosterFull       = "ROSTER_FULL"
	CodeDuplicatePlayer  = "DUPLICATE_PLAYER"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

func newHTTPError(status int, code, message string) *httpError {
	return &httpError{status: status, apiError: APIError{Code: code, Message: message}}
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

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Roster
	case errors.Is(err, model.ErrEmptyName):
		return newHTTPError(http.StatusBadRequest, CodeInvalidName, "Player name is empty")
	case errors.Is(err, model.ErrDuplicateName):
		return newHTTPError(http.StatusConflict, CodeDuplicatePlayer, "Player is already on the roster")
	case errors.Is(err, model.ErrRosterFull):
		return newHTTPError(http.StatusConflict, CodeRosterFull, "Roster is full")
	case errors.Is(err, model.ErrPlayerMissing):
		return newHTTPError(http.StatusNotFound, CodePlayerNotFound, "Player is not on the roster")

	// Draft
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return newHTTPError(http.StatusConflict, CodeNotEnoughPlayers, "At least two players are required to draw")
	case errors.Is(err, model.ErrInvalidDrawMode):
		return newHTTPError(http.StatusBadRequest, CodeInvalidDrawMode, "Mode must be instant or sequential")
	case errors.Is(err, model.ErrNothingToPause):
		return newHTTPError(http.StatusConflict, CodeNothingToPause, "No animated pick to pause or resume")

	// Toss
	case errors.Is(err, model.ErrNoTeams):
		return newHTTPError(http.StatusConflict, CodeNoTeams, "Teams have not been drawn")
	case errors.Is(err, model.ErrTossPhase):
		return newHTTPError(http.StatusConflict, CodeWrongTossPhase, "Toss is not in the required phase")
	case errors.Is(err, model.ErrInvalidCoinFace):
		return newHTTPError(http.StatusBadRequest, CodeInvalidCall, "Call must be heads or tails")
	case errors.Is(err, model.ErrInvalidSide):
		return newHTTPError(http.StatusBadRequest, CodeInvalidSide, "Side must be attack or defense")
	case errors.Is(err, model.ErrInvalidSideMode):
		return newHTTPError(http.StatusBadRequest, CodeInvalidSideMode, "Side mode must be coin or auto")

	// Settings and assets
	case errors.Is(err, model.ErrInvalidMapCount):
		return newHTTPError(http.StatusBadRequest, CodeInvalidMapCount, "Map count must be 1, 3 or 5")
	case errors.Is(err, model.ErrUnknownCue):
		return newHTTPError(http.StatusNotFound, CodeUnknownSound, "Unknown sound cue")

	default:
		return newHTTPError(http.StatusInternalServerError, CodeInternalError, "Internal server error")
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, CodeInvalidRequest, message)
}

// WithRequestID attaches a request ID to the error body so clients can quote it
func WithRequestID(err error, requestID string) error {
	he := *toHTTPError(err)
	he.apiError.RequestID = requestID
	return &he
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return newHTTPError(http.StatusInternalServerError, CodeInternalError, "Internal server error")
}
