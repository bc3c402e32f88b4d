// internal/api/server.go

// Package api exposes the wizard over HTTP: one GET/POST pair per step,
// plus health and metrics endpoints.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loan-wizard/internal/common/config"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/wizard"
)

type Server struct {
	seq        *wizard.Sequencer
	log        logger.Logger
	httpServer *http.Server
}

func NewServer(cfg config.ServerConfig, seq *wizard.Sequencer, log logger.Logger) *Server {
	s := &Server{
		seq: seq,
		log: log,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
	}
	return s
}

// Handler builds the route table. Exposed separately so tests can drive the
// mux without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wizard/{step}", s.handleGetStep)
	mux.HandleFunc("POST /wizard/{step}", s.handlePostStep)
	mux.HandleFunc("GET /wizard", s.handleIndex)
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) Start() error {
	s.log.Info("HTTP server listening", map[string]interface{}{
		"address": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
