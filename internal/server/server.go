package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"theograph/internal/graph"
	"theograph/internal/operations"
)

// Server provides a read-only HTTP API over the operations layer.
type Server struct {
	port     int
	token    string
	ops      *operations.Operations
	server   *http.Server
	mu       sync.RWMutex
	lastPing time.Time
}

// NewServer creates a new HTTP server using operations
func NewServer(port int, token string, ops *operations.Operations) *Server {
	return &Server{
		port:     port,
		token:    token,
		ops:      ops,
		lastPing: time.Now(),
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Add CORS middleware wrapper
	handler := s.corsMiddleware(mux)

	// Register routes
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/genealogy", s.handleGenealogy)
	mux.HandleFunc("/api/connection", s.handleConnection)
	mux.HandleFunc("/api/passage", s.handlePassage)
	mux.HandleFunc("/api/person", s.handlePerson)
	mux.HandleFunc("/api/timeline", s.handleTimeline)
	mux.HandleFunc("/api/place", s.handlePlace)

	s.server = &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", s.port),
		Handler: handler,
	}

	log.Printf("API server starting on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// corsMiddleware adds CORS headers for browser clients
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// validateToken checks the authorization token
func (s *Server) validateToken(r *http.Request) bool {
	if s.token == "" {
		return true // No token required if not set
	}

	auth := r.Header.Get("Authorization")
	expectedAuth := "Bearer " + s.token
	return auth == expectedAuth
}

// requireGet enforces method and token; returns false if the request was
// already answered.
func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if !s.validateToken(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeQueryError maps the query error taxonomy onto HTTP statuses:
// unknown entities are 404, ambiguous names are 409 with the candidate
// list attached, unrecognized references are 422.
func writeQueryError(w http.ResponseWriter, err error) {
	var ambiguous *graph.AmbiguousNameError
	if errors.As(err, &ambiguous) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":      ambiguous.Error(),
			"name":       ambiguous.Name,
			"candidates": ambiguous.Candidates,
		})
		return
	}

	switch {
	case errors.Is(err, graph.ErrPersonNotFound),
		errors.Is(err, graph.ErrPlaceNotFound),
		errors.Is(err, graph.ErrEventNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	case errors.Is(err, graph.ErrReferenceNotRecognized):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}

// handleStatus returns server status and graph totals
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	s.lastPing = time.Now()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"version":   "1.0.0",
		"timestamp": time.Now().Unix(),
		"graph":     s.ops.Stats(),
	})
}

// handleGenealogy expands a family tree: ?name=David&direction=both&generations=5
func (s *Server) handleGenealogy(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Query parameter 'name' is required", http.StatusBadRequest)
		return
	}

	dir, err := operations.ParseDirection(r.URL.Query().Get("direction"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	generations := 0
	if g := r.URL.Query().Get("generations"); g != "" {
		generations, err = strconv.Atoi(g)
		if err != nil {
			http.Error(w, "Query parameter 'generations' must be an integer", http.StatusBadRequest)
			return
		}
	}

	result, err := s.ops.Genealogy.Explore(name, dir, generations)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"focal":     result.Focal,
		"direction": result.Direction,
		"tree":      result.Traversal,
	})
}

// handleConnection finds a relationship path: ?from=Ruth&to=David.
// A disconnected pair is a successful response with connected=false.
func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "Query parameters 'from' and 'to' are required", http.StatusBadRequest)
		return
	}

	result, err := s.ops.Genealogy.FindConnection(from, to)
	if err != nil {
		if errors.Is(err, graph.ErrNoPathFound) {
			writeJSON(w, http.StatusOK, map[string]any{
				"connected": false,
				"from":      from,
				"to":        to,
			})
			return
		}
		writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"connected": true,
		"from":      result.From,
		"to":        result.To,
		"steps":     len(result.Hops) - 1,
		"path":      result.Hops,
	})
}

// handlePassage lists entities in a passage: ?ref=Genesis+15
func (s *Server) handlePassage(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	ref := r.URL.Query().Get("ref")
	if ref == "" {
		http.Error(w, "Query parameter 'ref' is required", http.StatusBadRequest)
		return
	}

	result, err := s.ops.Passage.EntitiesIn(ref)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reference": result.Reference.String(),
		"people":    result.Entities.People,
		"places":    result.Entities.Places,
		"events":    result.Entities.Events,
	})
}

// handlePerson looks up a person record: ?name=Moses
func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Query parameter 'name' is required", http.StatusBadRequest)
		return
	}

	result, err := s.ops.Person.Lookup(name)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"person":     result.Person,
		"candidates": result.Candidates,
		"parents":    result.Parents,
		"spouses":    result.Spouses,
		"children":   result.Children,
		"siblings":   result.Siblings,
		"mentions":   result.Mentions,
	})
}

// handleTimeline lists a person's events: ?name=Moses
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Query parameter 'name' is required", http.StatusBadRequest)
		return
	}

	result, err := s.ops.Person.Timeline(name)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"person": result.Person,
		"events": result.Events,
	})
}

// handlePlace reports a place's history: ?name=Jerusalem
func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "Query parameter 'name' is required", http.StatusBadRequest)
		return
	}

	result, err := s.ops.Place.History(name)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"place":  result.Place,
		"events": result.Events,
		"people": result.People,
	})
}
