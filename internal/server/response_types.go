// file: internal/server/response_types.go
// version: 2.0.0
// guid: 7f8a9b0c-1d2e-3f4a-5b6c-7d8e9f0a1b2c

package server

// ErrorResponse is the body written by the outer error boundary and by
// router-level failures (unknown route, wrong method).
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ProblemResponse is the body of a handler-level internal failure
type ProblemResponse struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// Violation is one field-level validation failure
type Violation struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HealthResponse provides a consistent format for health check responses
type HealthResponse struct {
	Status    string `json:"status"`
	Users     int    `json:"users"`
	Timestamp int64  `json:"timestamp"`
}
