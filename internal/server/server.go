// Package server provides the HTTP REST API for the autofill agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-autofill/internal/agent"
	"github.com/jonathan/job-autofill/internal/fill"
	"github.com/jonathan/job-autofill/internal/store"
)

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	Headless    bool
	Verbose     bool
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      *store.PostgresStore
	agent      *agent.Agent
	headless   bool
	verbose    bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	profiles, err := store.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	opts := agent.DefaultOptions()
	opts.Verbose = cfg.Verbose
	opts.Fill = fill.DefaultOptions()

	s := &Server{
		store:    profiles,
		agent:    agent.New(profiles, opts),
		headless: cfg.Headless,
		verbose:  cfg.Verbose,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Profile endpoints
	mux.HandleFunc("GET /v1/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /v1/profile", s.handleSaveProfile)
	mux.HandleFunc("DELETE /v1/profile", s.handleClearProfile)
	mux.HandleFunc("GET /v1/profile/exists", s.handleHasProfile)

	// Form endpoints
	mux.HandleFunc("POST /v1/forms/check", s.handleCheckForms)
	mux.HandleFunc("POST /v1/forms/analyze", s.handleAnalyzeForms)
	mux.HandleFunc("POST /v1/forms/fill", s.handleFillForm)
	mux.HandleFunc("POST /v1/forms/highlight", s.handleHighlightFields)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Fill sessions poll slow pages
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.store.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging, tagging each request with an ID so
// concurrent fill sessions can be told apart in the logs.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		log.Printf("[%s] %s %s %s", r.Method, r.URL.Path, r.RemoteAddr, requestID)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", r.Method, r.URL.Path, requestID, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
