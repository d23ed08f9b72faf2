// Package server exposes the analyzers over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/classifier"
	"github.com/pthm/tonelint/internal/fixer"
	"github.com/pthm/tonelint/internal/store"
)

// HistoryTimeFormat is the timestamp layout of history entries
const HistoryTimeFormat = "2006-01-02 15:04"

// Server is the HTTP API
type Server struct {
	analyzer *analyzer.Analyzer
	store    *store.Store
	fixer    *fixer.Fixer
	router   *gin.Engine
}

// New creates a server. A nil store disables persistence and the history
// routes return empty results; a nil fixer makes every rewrite fail.
func New(a *analyzer.Analyzer, st *store.Store, f *fixer.Fixer) *Server {
	if f == nil {
		f = fixer.New(nil, fixer.Options{})
	}
	s := &Server{analyzer: a, store: st, fixer: f}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", s.healthz)
	router.POST("/analyze/realtime", s.analyzeRealtime)
	router.POST("/rewrite", s.rewrite)
	router.GET("/history", s.history)
	router.DELETE("/history/clear", s.clearHistory)
	router.GET("/dashboard", s.dashboard)

	return router
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) healthz(c *gin.Context) {
	models := gin.H{}
	for _, cat := range classifier.Categories {
		models[string(cat)] = s.analyzer.ModelAvailable(cat)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "models": models})
}
