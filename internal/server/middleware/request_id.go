// file: internal/server/middleware/request_id.go
// version: 1.0.0
// guid: 2e7b9c4a-8d1f-4a6e-b3c5-9f0d2a7e1c84

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	ulid "github.com/oklog/ulid/v2"
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

const contextRequestIDKey = "request_id"

// maxRequestIDLen bounds client-supplied ids so they cannot flood the logs.
const maxRequestIDLen = 128

// RequestID assigns every request an id, reusing a client-supplied one when
// it is reasonable, and echoes it back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLen {
			id = ulid.Make().String()
		}
		c.Set(contextRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "" if none.
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(contextRequestIDKey)
}
