// Package api is the HTTP boundary of the document summarization service.
package api

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/dkkundu/DeepDocAI/summarize"
)

// Summarizer runs the document summarization pipeline.
type Summarizer interface {
	Summarize(ctx context.Context, req summarize.Request) (*summarize.Result, error)
}

// ModelLister reports the models installed on the generation service.
type ModelLister interface {
	Tags(ctx context.Context) ([]string, error)
}

// Server represents the API server.
type Server struct {
	handler *Handler
	port    int
	logger  *zap.Logger
}

// NewServer creates a new API server.
func NewServer(handler *Handler, port int, logger *zap.Logger) *Server {
	return &Server{
		handler: handler,
		port:    port,
		logger:  logger,
	}
}

// Start starts the API server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handler.Root)
	mux.HandleFunc("/health", s.handler.Health)
	mux.HandleFunc("/models", s.handler.Models)
	mux.HandleFunc("/summarize", s.handler.Summarize)

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("Starting API server", zap.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}
