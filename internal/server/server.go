// file: internal/server/server.go
// version: 2.0.0
// guid: 4c5d6e7f-8a9b-0c1d-2e3f-4a5b6c7d8e9f

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/user-service/internal/auth"
	"github.com/jdfalk/user-service/internal/cache"
	"github.com/jdfalk/user-service/internal/config"
	"github.com/jdfalk/user-service/internal/database"
	"github.com/jdfalk/user-service/internal/metrics"
	"github.com/jdfalk/user-service/internal/models"
	"github.com/jdfalk/user-service/internal/server/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators a Server is built from. Nil fields are
// replaced with fresh defaults derived from the config.
type Deps struct {
	Store    database.UserStore
	Cache    *cache.Snapshot[models.User]
	Verifier auth.Verifier
	Logger   *Logger
}

// Server represents the HTTP server
type Server struct {
	cfg        config.Config
	router     *gin.Engine
	httpServer *http.Server
	users      *UserService
	verifier   auth.Verifier
	logger     *Logger
}

// New creates a new server instance
func New(cfg config.Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = NewLogger(ParseLogLevel(cfg.LogLevel))
	}
	if deps.Store == nil {
		deps.Store = database.NewMemoryStore()
	}
	if deps.Cache == nil {
		deps.Cache = cache.New[models.User](cfg.Cache.TTL)
	}

	// Register metrics (idempotent)
	metrics.Register()
	metrics.SetUsers(deps.Store.Count())

	router := gin.New()
	router.HandleMethodNotAllowed = true

	s := &Server{
		cfg:      cfg,
		router:   router,
		users:    NewUserService(deps.Store, deps.Cache, NewUserValidator(), deps.Logger),
		verifier: deps.Verifier,
		logger:   deps.Logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware installs the cross-cutting chain; order matters
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID())
	s.router.Use(requestLoggingMiddleware(s.logger))
	s.router.Use(metricsMiddleware())
	s.router.Use(recoveryMiddleware(s.logger))
	s.router.Use(unhandledErrorMiddleware(s.logger))
	s.router.Use(corsMiddleware())
	if rpm := s.cfg.RateLimit.RequestsPerMinute; rpm > 0 {
		s.router.Use(middleware.NewIPRateLimiter(rpm, s.cfg.RateLimit.Burst).Middleware())
	}
	s.router.Use(middleware.MaxRequestBodySize(s.cfg.Limits.MaxBodyBytes))
	s.router.Use(middleware.Authenticate(s.verifier))
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := s.router.Group("/users")
	if s.cfg.Auth.Enforce {
		users.Use(middleware.RequireAuth(s.verifier))
	}
	{
		users.GET("", s.listUsers)
		users.GET("/:id", s.getUser)
		users.POST("", s.createUser)
		users.PUT("/:id", s.updateUser)
		users.DELETE("/:id", s.deleteUser)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found", Code: "NOT_FOUND"})
	})
	s.router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed", Code: "METHOD_NOT_ALLOWED"})
	})
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:        s.router,
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		IdleTimeout:    s.cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting server on %s", ln.Addr())
		err := s.httpServer.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Infof("Shutting down server...")

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := <-serveErr; err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	s.logger.Infof("Server exited")
	return nil
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Header("Access-Control-Expose-Headers", "Location, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// metricsMiddleware records request counts and latency per route
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Users:     s.users.Count(),
		Timestamp: time.Now().Unix(),
	})
}
