package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rahulmehta/sonictrace/pkg/logger"
	"github.com/rahulmehta/sonictrace/pkg/sonictrace"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service sonictrace.Service
	config  *ServerConfig
	log     sonictrace.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	TempDir        string
	Host           string
	Region         string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewServer creates a new server instance
func NewServer(service sonictrace.Service, config *ServerConfig) *Server {
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 5 * time.Minute
	}
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger(),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, detail string) {
	s.respondJSON(w, statusCode, ErrorResponse{Detail: detail})
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "Service is running with FFmpeg",
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleIdentify handles POST /identify
func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
	defer cancel()

	var req IdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Errorf("Failed to decode request: %v", err)
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Identify(ctx, sonictrace.Request{
		AudioURL:     req.AudioURL,
		AccessKey:    req.AccessKey,
		AccessSecret: req.AccessSecret,
	})
	if err != nil {
		s.log.Errorf("Identification failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}
