package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/breedy/internal/browse"
	"github.com/mrlokans/breedy/internal/catalog"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Machine-readable error codes
const (
	CodeBusy    = "busy"
	CodeNetwork = "network"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondJobError maps a fetch or refresh failure to a response.
// A job that is already running is a conflict, a catalog failure is a bad
// gateway and everything else is internal.
func respondJobError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, browse.ErrBusy):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeBusy})
	case errors.Is(err, browse.ErrInvalidPages):
		respondBadRequest(c, err.Error())
	case errors.Is(err, catalog.ErrNetwork):
		log.Printf("Catalog error (%s): %v", context, err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: CodeNetwork})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseBreedID extracts a breed id from URL parameters.
// Returns the trimmed id or responds with a 400 error and returns "", false.
func parseBreedID(c *gin.Context, paramName string) (string, bool) {
	id := strings.TrimSpace(c.Param(paramName))
	if id == "" {
		respondBadRequest(c, paramName+" is required")
		return "", false
	}
	return id, true
}

// parseBoolQuery reads an optional boolean query parameter.
// A missing parameter is false. An invalid one responds with a 400 error.
func parseBoolQuery(c *gin.Context, paramName string) (bool, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		return false, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return false, false
	}
	return value, true
}

// parseQueryInt reads an optional positive integer query parameter.
func parseQueryInt(c *gin.Context, paramName string, def int) (int, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		return def, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return value, true
}
