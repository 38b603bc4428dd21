package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Machine-readable error codes returned in the "error" field.
const (
	ErrCodeInvalidPlayerID = "invalid_player_id"
	ErrCodeInvalidTeamID   = "invalid_team_id"
	ErrCodePlayerNotFound  = "player_not_found"
	ErrCodeTeamNotFound    = "team_not_found"
	ErrCodeInternal        = "internal_error"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SendError sends an error response and aborts the handler chain
func SendError(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// SendBadRequest sends a 400 bad request error
func SendBadRequest(c *gin.Context, code, message string) {
	SendError(c, http.StatusBadRequest, code, message)
}

// SendNotFound sends a 404 not found error
func SendNotFound(c *gin.Context, code, message string) {
	SendError(c, http.StatusNotFound, code, message)
}

// SendInternalError sends a 500 with a fixed body so no upstream detail leaks to the caller.
func SendInternalError(c *gin.Context) {
	SendError(c, http.StatusInternalServerError, ErrCodeInternal, "Failed to load data from the upstream API")
}

// SendJSON sends a 200 with the payload as-is, without an envelope.
func SendJSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
