// file: internal/server/middleware/request_id_test.go
// version: 1.0.0
// guid: 6a3d1e8f-4b2c-4d7a-9e5f-0c8b2a4d6f13

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	ulid "github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRequestID(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp, seen
}

func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	resp, seen := runRequestID(t, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NotEmpty(t, seen)
	_, err := ulid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, resp.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesClientValue(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	resp, seen := runRequestID(t, req)
	assert.Equal(t, "client-supplied", seen)
	assert.Equal(t, "client-supplied", resp.Header().Get(RequestIDHeader))
}

func TestRequestID_ReplacesOversizedValue(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	_, seen := runRequestID(t, req)
	assert.Len(t, seen, 26)
}

func TestGetRequestID_NilContext(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", GetRequestID(nil))
}
