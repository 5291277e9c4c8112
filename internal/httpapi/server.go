// Package httpapi serves a task list over HTTP with gin.
//
// Every request runs under one mutex; the controller is not safe for
// concurrent use.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roach88/tasklist/internal/todo"
)

// Server is the tasklist HTTP API.
type Server struct {
	mu     sync.Mutex
	todos  *todo.Controller
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a server around a loaded controller.
func NewServer(todos *todo.Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		todos:  todos,
		logger: logger,
		router: router,
	}

	router.GET("/tasks", s.handleList)
	router.POST("/tasks", s.handleCreate)
	router.DELETE("/tasks", s.handleClearAll)
	router.POST("/tasks/clear-completed", s.handleClearCompleted)
	router.GET("/tasks/:id", s.handleGet)
	router.PATCH("/tasks/:id", s.handleUpdate)
	router.DELETE("/tasks/:id", s.handleDelete)
	router.POST("/tasks/:id/toggle", s.handleToggle)
	router.GET("/stats", s.handleStats)

	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("http api listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http api stopped")
	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
