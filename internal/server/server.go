// Package server exposes keyword landing pages, content search and
// enquiry submission over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"institute-discovery/internal/common/config"
	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/enquiry"
	"institute-discovery/internal/keyword"
	"institute-discovery/internal/search"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Resolver interface {
	Resolve(ctx context.Context, slug string, page int) (keyword.Resolution, error)
}

type Searcher interface {
	Search(ctx context.Context, q search.Query) (*search.Result, error)
}

type Submitter interface {
	Submit(ctx context.Context, req enquiry.Request) (*enquiry.Receipt, error)
}

// Check is a named readiness probe such as a database ping.
type Check func(ctx context.Context) error

// Deps wires the server. Searcher and Submitter are optional; their routes
// answer 503 when unset.
type Deps struct {
	Resolver  Resolver
	Searcher  Searcher
	Submitter Submitter
	Checks    map[string]Check
}

type Server struct {
	deps   Deps
	logger logger.Logger
	mux    *http.ServeMux
}

func New(deps Deps, log logger.Logger) *Server {
	s := &Server{
		deps:   deps,
		logger: log.WithFields(map[string]interface{}{"component": "http"}),
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /ready", s.handleReady)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.mux.HandleFunc("GET /search", s.handleSearch)
	s.mux.HandleFunc("POST /enquiries", s.handleEnquiry)

	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /{slug}", s.handleLanding)
}

// Handler returns the routed handler wrapped in tracing and access logs.
func (s *Server) Handler() http.Handler {
	return s.instrument(s.mux)
}

// NewHTTPServer builds an http.Server for cfg around h.
func NewHTTPServer(cfg config.ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           h,
		ReadTimeout:       config.GetDuration(cfg.ReadTimeout),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      config.GetDuration(cfg.WriteTimeout),
	}
}
