// file: internal/server/logger.go
// version: 2.0.0
// guid: 1d2e3f4a-5b6c-7d8e-9f0a-1b2c3d4e5f6a

package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/user-service/internal/server/middleware"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLogLevel maps a config value to a LogLevel, defaulting to info
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger provides leveled logging for handlers and services
type Logger struct {
	minLevel LogLevel
	out      *log.Logger
}

// NewLogger creates a new logger instance writing through the standard logger
func NewLogger(minLevel LogLevel) *Logger {
	return &Logger{minLevel: minLevel, out: log.Default()}
}

func (l *Logger) logf(level LogLevel, tag string, format string, args ...any) {
	if l == nil || level < l.minLevel {
		return
	}
	l.out.Printf("[%s] %s", tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(DebugLevel, "DEBUG", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(InfoLevel, "INFO", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(WarnLevel, "WARN", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(ErrorLevel, "ERROR", format, args...) }

// LogValidationError logs a validation error with context
func (l *Logger) LogValidationError(handler string, field string, reason string, requestID string) {
	l.logf(WarnLevel, "VALIDATION-ERROR", "%s field %q: %s [request-id: %s]",
		handler, field, reason, requestID)
}

// LogCacheHit logs a list cache hit
func (l *Logger) LogCacheHit(key string) {
	l.logf(DebugLevel, "CACHE-HIT", "%s", key)
}

// LogCacheMiss logs a list cache miss
func (l *Logger) LogCacheMiss(key string) {
	l.logf(DebugLevel, "CACHE-MISS", "%s", key)
}

// RequestLogger provides request-level logging
type RequestLogger struct {
	logger    *Logger
	requestID string
	clientIP  string
	userAgent string
	method    string
	path      string
	startTime time.Time
}

// NewRequestLogger creates a new request logger
func NewRequestLogger(logger *Logger, requestID, clientIP, userAgent, method, path string) *RequestLogger {
	return &RequestLogger{
		logger:    logger,
		requestID: requestID,
		clientIP:  clientIP,
		userAgent: userAgent,
		method:    method,
		path:      path,
		startTime: time.Now(),
	}
}

// LogRequest logs the received request
func (rl *RequestLogger) LogRequest() {
	rl.logger.logf(InfoLevel, "REQUEST", "%s %s from %s [request-id: %s] [agent: %s]",
		rl.method, rl.path, rl.clientIP, rl.requestID, rl.userAgent)
}

// LogResponse logs the response sent
func (rl *RequestLogger) LogResponse(statusCode int, responseSize int) {
	duration := time.Since(rl.startTime)
	rl.logger.logf(InfoLevel, "RESPONSE", "%s %s -> %d (%d bytes) in %v [request-id: %s]",
		rl.method, rl.path, statusCode, responseSize, duration, rl.requestID)
}

// requestLoggingMiddleware logs method and path on entry and status on exit
func requestLoggingMiddleware(logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rl := NewRequestLogger(logger, middleware.GetRequestID(c), c.ClientIP(),
			c.Request.UserAgent(), c.Request.Method, c.Request.URL.Path)
		rl.LogRequest()

		c.Next()

		rl.LogResponse(c.Writer.Status(), max(c.Writer.Size(), 0))
	}
}
