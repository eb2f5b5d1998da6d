// file: internal/server/error_handler.go
// version: 2.0.0
// guid: 5d6e7f8a-9b0c-1d2e-3f4a-5b6c7d8e9f0a

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/user-service/internal/database"
	"github.com/jdfalk/user-service/internal/metrics"
	"github.com/jdfalk/user-service/internal/server/middleware"
)

// UnexpectedErrorMessage is returned for failures that escape a handler
const UnexpectedErrorMessage = "An unexpected error occurred. Please try again later."

const problemContentType = "application/problem+json"

// RespondWithError sends a standardized error response and logs the error
func RespondWithError(c *gin.Context, logger *Logger, statusCode int, message string, code string) {
	logErrorWithContext(c, logger, statusCode, message)

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// RespondWithProblem sends a handler-level internal failure carrying detail
func RespondWithProblem(c *gin.Context, logger *Logger, detail string) {
	logErrorWithContext(c, logger, http.StatusInternalServerError, detail)

	c.Header("Content-Type", problemContentType)
	c.JSON(http.StatusInternalServerError, ProblemResponse{
		Title:  "An error occurred while processing your request.",
		Status: http.StatusInternalServerError,
		Detail: detail,
	})
}

// RespondWithViolations sends a 400 with the ordered list of violations
func RespondWithViolations(c *gin.Context, logger *Logger, violations []Violation) {
	requestID := middleware.GetRequestID(c)
	for _, v := range violations {
		metrics.IncValidationFailure(v.Field)
		logger.LogValidationError(c.FullPath(), v.Field, v.Error, requestID)
	}
	c.JSON(http.StatusBadRequest, violations)
}

// RespondWithNotFound sends a 404 with an empty body
func RespondWithNotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

// RespondWithNoContent sends a 204 No Content response
func RespondWithNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondWithServiceError translates a service outcome into a response:
// validation failures become 400, unknown ids 404, everything else 500.
func RespondWithServiceError(c *gin.Context, logger *Logger, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		RespondWithViolations(c, logger, verr.Violations)
	case errors.Is(err, database.ErrUserNotFound):
		RespondWithNotFound(c)
	default:
		RespondWithProblem(c, logger, err.Error())
	}
}

// ParseIDParam parses an integer path parameter, responding 400 on failure
func ParseIDParam(c *gin.Context, logger *Logger, key string) (int, bool) {
	raw := c.Param(key)
	id, err := strconv.Atoi(raw)
	if err != nil {
		RespondWithViolations(c, logger, []Violation{{
			Field: key,
			Error: key + " must be an integer",
		}})
		return 0, false
	}
	return id, true
}

// recoveryMiddleware converts panics into the standard 500 response
func recoveryMiddleware(logger *Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		metrics.IncPanicRecovered()
		logger.Errorf("Unhandled exception on %s %s: %v [request-id: %s]",
			c.Request.Method, c.Request.URL.Path, recovered, middleware.GetRequestID(c))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: UnexpectedErrorMessage})
	})
}

// unhandledErrorMiddleware answers requests whose handler recorded an error
// with c.Error but wrote no response.
func unhandledErrorMiddleware(logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		logger.Errorf("Unhandled error on %s %s: %v [request-id: %s]",
			c.Request.Method, c.Request.URL.Path, c.Errors.Last(), middleware.GetRequestID(c))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: UnexpectedErrorMessage})
	}
}

// logErrorWithContext logs an error with request context for debugging
func logErrorWithContext(c *gin.Context, logger *Logger, statusCode int, message string) {
	method := c.Request.Method
	path := c.Request.URL.Path
	clientIP := c.ClientIP()

	if statusCode >= 500 {
		logger.Errorf("%s %s %d - %s (from %s)", method, path, statusCode, message, clientIP)
		return
	}
	logger.Warnf("%s %s %d - %s (from %s)", method, path, statusCode, message, clientIP)
}
