// Package server exposes the pathfinder over HTTP: one-shot solves, stepwise
// search sessions for visualisers, and timed path playback over a websocket.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abenet15/maze"
	"github.com/abenet15/maze/internal/config"
	"github.com/abenet15/maze/internal/store"
)

// Dependencies collects what the handlers need.
type Dependencies struct {
	Solver         *store.Solver
	Options        []maze.Option
	Logger         *slog.Logger
	StepDelay      time.Duration
	MetricsHandler http.Handler
}

// Server represents the HTTP server lifecycle.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	deps       Dependencies
	logger     *slog.Logger

	sessionTTL  time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// New builds the router and the underlying http.Server.
func New(cfg config.HTTPConfig, deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Solver == nil {
		deps.Solver = store.NewSolver(maze.New(deps.Options...), nil, deps.Logger)
	}

	s := &Server{
		deps:        deps,
		logger:      deps.Logger,
		sessionTTL:  cfg.SessionTTL,
		maxSessions: cfg.MaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = 15 * time.Minute
	}
	if s.maxSessions <= 0 {
		s.maxSessions = 1024
	}
	s.engine = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.engine,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Start begins listening for HTTP traffic.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully terminates all active connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/health", s.handleHealth)
	if s.deps.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(s.deps.MetricsHandler))
	}

	v1 := engine.Group("/v1")
	v1.POST("/solve", s.handleSolve)
	v1.POST("/sessions", s.handleCreateSession)
	v1.GET("/sessions/:id", s.handleSnapshot)
	v1.GET("/sessions/:id/next", s.handleNext)
	v1.DELETE("/sessions/:id", s.handleDeleteSession)
	v1.GET("/sessions/:id/play", s.handlePlay)
	return engine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(began),
		)
	}
}
