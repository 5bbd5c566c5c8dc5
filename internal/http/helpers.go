package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookstore/internal/logging"
	"github.com/mrlokans/bookstore/internal/services"
)

// --- Response Types ---

// ErrorResponse is the error body for expected business failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ProblemResponse is the body for unexpected failures. It never carries
// internal error text.
type ProblemResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	TraceID string `json:"traceId"`
}

// SuccessResponse is a standard success response with a message.
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginatedResponse wraps offset-paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

func unexpectedProblem(c *gin.Context) ProblemResponse {
	return ProblemResponse{
		Type:    "https://httpstatuses.com/500",
		Title:   "An unexpected error occurred.",
		Status:  http.StatusInternalServerError,
		TraceID: CorrelationID(c),
	}
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: string(services.KindValidation)})
}

// respondInternalError logs the error and sends the generic 500 body.
func respondInternalError(c *gin.Context, err error, operation string) {
	logging.FromContext(c.Request.Context()).Error("Internal error", "operation", operation, "error", err)
	c.JSON(http.StatusInternalServerError, unexpectedProblem(c))
}

// respondServiceError maps a service error to its HTTP status.
func respondServiceError(c *gin.Context, err error, operation string) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		respondInternalError(c, err, operation)
		return
	}
	c.JSON(statusForKind(svcErr.Kind), ErrorResponse{Error: svcErr.Error(), Code: string(svcErr.Kind)})
}

func statusForKind(kind services.Kind) int {
	switch kind {
	case services.KindConflict:
		return http.StatusConflict
	case services.KindNotFound, services.KindNotLinked:
		return http.StatusNotFound
	case services.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseUUIDParam extracts and validates a UUID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns uuid.Nil, false.
func parseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return uuid.Nil, false
	}
	return id, true
}
