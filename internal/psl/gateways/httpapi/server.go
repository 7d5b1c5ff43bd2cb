// Package httpapi exposes the parser service over a small JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/haukened/hostparts/internal/psl/common/log"
	"github.com/haukened/hostparts/internal/psl/domain"
	"github.com/haukened/hostparts/internal/psl/services/parser"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// ParserAPI is the service surface the transport needs. The transport owns
// all HTTP concerns; the service only sees domain values.
type ParserAPI interface {
	Parse(uri string) (domain.DomainParts, error)
	AddRule(raw string, public bool) int
	Stats() parser.Stats
}

// Server implements the HTTP transport for the lookup daemon.
type Server struct {
	addr   string
	logger log.Logger

	mu      sync.Mutex
	srv     *http.Server
	running bool
}

// New creates an HTTP server bound to addr.
func New(addr string, logger log.Logger) *Server {
	return &Server{
		addr:   addr,
		logger: logger,
	}
}

// Start begins serving the API in a background goroutine. The server shuts
// down gracefully when ctx is cancelled.
func (s *Server) Start(ctx context.Context, api ParserAPI) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("http transport already running")
	}

	s.srv = &http.Server{
		Addr:         s.addr,
		Handler:      s.handler(api),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	s.running = true

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	go func() {
		s.logger.Info(map[string]any{
			"transport": "http",
			"address":   s.addr,
		}, "lookup API started")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(map[string]any{"error": err.Error()}, "http server failed")
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn(map[string]any{"error": err.Error()}, "error during http shutdown")
	} else {
		s.logger.Info(map[string]any{
			"transport": "http",
			"address":   s.addr,
		}, "lookup API stopped")
	}
	return err
}

// Address returns the network address the transport is bound to.
func (s *Server) Address() string {
	return s.addr
}

// handler builds the route table for the API.
func (s *Server) handler(api ParserAPI) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/parse", s.handleParse(api))
	mux.HandleFunc("POST /v1/rules", s.handleAddRule(api))
	mux.HandleFunc("GET /v1/stats", s.handleStats(api))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// parseResponse is the success body for /v1/parse.
type parseResponse struct {
	Host string             `json:"host"`
	URI  string             `json:"uri"`
	Data domain.DomainParts `json:"parts"`
}

func (s *Server) handleParse(api ParserAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uri := r.URL.Query().Get("uri")
		if uri == "" {
			writeError(w, http.StatusBadRequest, "missing uri query parameter")
			return
		}

		parts, err := api.Parse(uri)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}

		writeJSON(w, http.StatusOK, parseResponse{
			Host: parts.Host(),
			URI:  uri,
			Data: parts,
		})
	}
}

// addRuleRequest is the body for POST /v1/rules.
type addRuleRequest struct {
	Rule   string `json:"rule"`
	Public bool   `json:"public"`
}

func (s *Server) handleAddRule(api ParserAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		req.Rule = strings.TrimSpace(req.Rule)
		if req.Rule == "" {
			writeError(w, http.StatusBadRequest, "rule must not be empty")
			return
		}

		count := api.AddRule(req.Rule, req.Public)
		writeJSON(w, http.StatusOK, map[string]any{"rule_count": count})
	}
}

func (s *Server) handleStats(api ParserAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.Stats())
	}
}

// statusFor maps the parse error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidURI), errors.Is(err, domain.ErrNoHost):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownSuffix):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDomain):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
