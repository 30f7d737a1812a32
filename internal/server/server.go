/*
Package server hosts the local dashboard: a JSON API over the learning
store, skill catalog and action log, plus the embedded single-page UI.

Handlers are a thin translation layer; everything they do is parameter
parsing, one call into the underlying component, and envelope
construction. Mutating endpoints share one mutex so two near-simultaneous
writes cannot clobber each other through the atomic-rewrite cycle.
*/
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khanglvm/skillhub/internal/config"
	"github.com/khanglvm/skillhub/internal/learning"
	"github.com/khanglvm/skillhub/internal/skills"
	"github.com/khanglvm/skillhub/internal/storage"
)

// Server is the dashboard HTTP server.
type Server struct {
	cfg     *config.Config
	store   *learning.Store
	catalog *skills.Catalog
	actions storage.ActionLog
	logger  *zap.Logger

	// writeMu serializes mutating operations over the entry logs.
	writeMu sync.Mutex
}

// New wires a server from its components.
func New(cfg *config.Config, store *learning.Store, catalog *skills.Catalog, actions storage.ActionLog, logger *zap.Logger) *Server {
	return &Server{
		cfg:     cfg,
		store:   store,
		catalog: catalog,
		actions: actions,
		logger:  logger,
	}
}

// Routes builds the request mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/skills", s.handleSkills)
	mux.HandleFunc("GET /api/skill", s.handleSkill)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/logs", s.handleLogs)
	mux.HandleFunc("POST /api/review", s.handleReview)
	mux.HandleFunc("POST /api/promote", s.handlePromote)
	mux.HandleFunc("POST /api/log", s.handleAppendLog)
	mux.HandleFunc("GET /", s.handleUI)

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", zap.String("addr", "http://"+addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
