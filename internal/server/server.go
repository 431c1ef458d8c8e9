// Package server is a development record server implementing the subset
// of the Kinto wire contract the client consumes: listing with _sort,
// _limit and _token pagination, and record create/get/patch/delete with
// "data"-enveloped JSON payloads. It exists so the browser and the test
// suites can run against something local; it is not a production
// storage service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inovacc/kollect/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Addr string

	// Accounts maps usernames to bcrypt password hashes. An empty map
	// disables authentication.
	Accounts map[string][]byte

	Logger *slog.Logger
}

// Server serves record collections over HTTP.
type Server struct {
	httpServer *http.Server
	storage    store.Store
	accounts   map[string][]byte
	logger     *slog.Logger
	addr       string

	// mu serializes read-modify-write handlers (PATCH) and the
	// last_modified watermark.
	mu            sync.Mutex
	lastTimestamp int64
}

// New creates a server on top of a record store.
func New(cfg Config, storage store.Store) (*Server, error) {
	if storage == nil {
		return nil, fmt.Errorf("a record store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	addr := cfg.Addr
	if addr == "" {
		addr = "127.0.0.1:8888"
	}

	return &Server{
		storage:  storage,
		accounts: cfg.Accounts,
		logger:   logger,
		addr:     addr,
	}, nil
}

// HashPassword derives the bcrypt hash stored in Config.Accounts.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Handler builds the route table. Exposed for httptest-based tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/", s.handleHello)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /v1/buckets/{bucket}/collections/{collection}/records", s.auth(s.handleListRecords))
	mux.HandleFunc("POST /v1/buckets/{bucket}/collections/{collection}/records", s.auth(s.handleCreateRecord))
	mux.HandleFunc("GET /v1/buckets/{bucket}/collections/{collection}/records/{id}", s.auth(s.handleGetRecord))
	mux.HandleFunc("PATCH /v1/buckets/{bucket}/collections/{collection}/records/{id}", s.auth(s.handleUpdateRecord))
	mux.HandleFunc("DELETE /v1/buckets/{bucket}/collections/{collection}/records/{id}", s.auth(s.handleDeleteRecord))

	return s.loggingMiddleware(mux)
}

// Start runs the server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	s.logger.Info("record server listening", slog.String("addr", listener.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	return s.Shutdown(context.Background()) //nolint:contextcheck // parent context cancelled, use background for shutdown
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down record server")

	return s.httpServer.Shutdown(shutdownCtx)
}

// auth enforces HTTP basic auth against the configured accounts. With
// no accounts configured every request passes.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(s.accounts) == 0 {
			next(w, r)

			return
		}

		username, password, ok := r.BasicAuth()
		if ok {
			hash, known := s.accounts[username]
			if known && bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil {
				next(w, r)

				return
			}
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="records"`)
		s.writeError(w, http.StatusUnauthorized, 104, "Unauthorized", "please provide valid credentials")
	}
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

// nextTimestamp returns a strictly increasing millisecond timestamp so
// last_modified keeps a total order even for writes within the same
// millisecond.
func (s *Server) nextTimestamp() int64 {
	now := time.Now().UnixMilli()

	if now <= s.lastTimestamp {
		now = s.lastTimestamp + 1
	}

	s.lastTimestamp = now

	return now
}
