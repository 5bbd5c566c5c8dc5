package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/bookstore/internal/logging"
)

const (
	HeaderCorrelationID   = "X-Correlation-Id"
	contextKeyCorrelation = "correlation_id"
)

// CorrelationID returns the request's correlation id, or "" outside the middleware.
func CorrelationID(c *gin.Context) string {
	return c.GetString(contextKeyCorrelation)
}

// CorrelationMiddleware accepts a valid UUID from X-Correlation-Id or
// generates one, echoes it on the response, and stores a request logger
// carrying it in the request context.
func CorrelationMiddleware(base *slog.Logger) gin.HandlerFunc {
	if base == nil {
		base = slog.Default()
	}
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(HeaderCorrelationID))
		if err != nil || id == uuid.Nil {
			id = uuid.New()
		}
		correlationID := id.String()

		c.Set(contextKeyCorrelation, correlationID)
		c.Header(HeaderCorrelationID, correlationID)

		logger := base.With("correlation_id", correlationID)
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

// RequestLogger logs one line per request through the request logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger := logging.FromContext(c.Request.Context())
		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// Recovery converts panics into the generic 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.FromContext(c.Request.Context()).Error("Panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, unexpectedProblem(c))
	})
}
