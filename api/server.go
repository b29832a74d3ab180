package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/word-hunt-solver/game/engine"
	"github.com/wricardo/word-hunt-solver/game/service"
	"github.com/wricardo/word-hunt-solver/transport/websocket"
)

// maxBodyBytes bounds request bodies; word merges are the largest payloads
const maxBodyBytes = 8 << 20

// Server represents the REST API server
type Server struct {
	service service.SolverService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil, in which case
// results are not broadcast and /ws is unavailable.
func NewServer(solverService service.SolverService, hub *websocket.Hub) *Server {
	s := &Server{
		service: solverService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(logRequests)

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Queries
	api.HandleFunc("/solve", s.handleSolve).Methods("POST")
	api.HandleFunc("/solve", s.handleSolveQuery).Methods("GET")
	api.HandleFunc("/anagrams", s.handleAnagrams).Methods("POST")

	// Dictionaries
	api.HandleFunc("/dictionaries", s.handleListDictionaries).Methods("GET")
	api.HandleFunc("/dictionaries/{name}", s.handleGetDictionary).Methods("GET")
	api.HandleFunc("/dictionaries/{name}/words", s.handleMergeDictionary).Methods("POST")
	api.HandleFunc("/dictionaries/{name}/restore", s.handleRestoreDictionary).Methods("POST")
	api.HandleFunc("/dictionaries/{name}/candidates", s.handleAddCandidates).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors to status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidBoard), errors.Is(err, service.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}

// Query Handlers

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req service.SolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.solve(w, r, req)
}

// handleSolveQuery accepts the same fields as query parameters, for quick use from a browser
func (s *Server) handleSolveQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := service.SolveRequest{
		Letters:      query.Get("letters"),
		ConfigID:     query.Get("config_id"),
		Dictionary:   query.Get("dictionary"),
		Room:         query.Get("room"),
		IncludePaths: query.Get("include_paths") == "true",
	}

	var err error
	if req.BoardSize, err = intParam(query.Get("board_size")); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid board_size: "+err.Error())
		return
	}
	if req.MinWordLength, err = intParam(query.Get("min_word_length")); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid min_word_length: "+err.Error())
		return
	}

	s.solve(w, r, req)
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request, req service.SolveRequest) {
	result, err := s.service.Solve(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if req.Room != "" && s.hub != nil {
		s.hub.BroadcastSolveResult(req.Room, result)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnagrams(w http.ResponseWriter, r *http.Request) {
	var req struct {
		service.AnagramRequest
		Room string `json:"room,omitempty"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.service.Anagrams(r.Context(), req.AnagramRequest)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if req.Room != "" && s.hub != nil {
		s.hub.BroadcastEvent(req.Room, websocket.EventAnagramResult, result)
	}

	respondJSON(w, http.StatusOK, result)
}

// Dictionary Handlers

func (s *Server) handleListDictionaries(w http.ResponseWriter, r *http.Request) {
	dictionaries, err := s.service.ListDictionaries(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":        len(dictionaries),
		"dictionaries": dictionaries,
	})
}

// handleGetDictionary returns a dictionary page. ?prefix= filters, ?limit= and
// ?offset= page through the (sorted) words.
func (s *Server) handleGetDictionary(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	dict, err := s.service.GetDictionary(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	prefix := strings.ToLower(query.Get("prefix"))

	words := dict.Words
	if prefix != "" {
		words = make([]string, 0)
		for _, word := range dict.Words {
			if strings.HasPrefix(word, prefix) {
				words = append(words, word)
			}
		}
	}
	total := len(words)

	offset, err := intParam(query.Get("offset"))
	if err != nil || offset < 0 {
		respondError(w, http.StatusBadRequest, "Invalid offset")
		return
	}
	limit, err := intParam(query.Get("limit"))
	if err != nil || limit < 0 {
		respondError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	offset = min(offset, len(words))
	words = words[offset:]
	if limit > 0 && limit < len(words) {
		words = words[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":       dict.Name,
		"word_count": dict.Len(),
		"updated_at": dict.UpdatedAt,
		"total":      total,
		"offset":     offset,
		"words":      words,
	})
}

func (s *Server) handleMergeDictionary(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req struct {
		Words []string `json:"words"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.service.MergeDictionary(r.Context(), name, req.Words)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("", websocket.EventDictionaryUpdated, result)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAddCandidates(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req service.CandidatesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Word == "" {
		respondError(w, http.StatusBadRequest, "word is required")
		return
	}

	result, err := s.service.AddCandidates(r.Context(), name, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil && result.Added > 0 {
		s.hub.BroadcastEvent("", websocket.EventDictionaryUpdated, result)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRestoreDictionary(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	info, err := s.service.RestoreDictionary(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent("", websocket.EventDictionaryUpdated, info)
	}

	respondJSON(w, http.StatusOK, info)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(configs),
		"configs": configs,
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	config, err := s.service.LoadConfig(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id"`
		engine.SolverConfig
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	configID := req.ConfigID
	if configID == "" {
		configID = req.Name
	}
	if configID == "" {
		respondError(w, http.StatusBadRequest, "config_id or name is required")
		return
	}

	config := req.SolverConfig
	if err := s.service.SaveConfig(r.Context(), configID, &config); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": configID,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket not available", http.StatusServiceUnavailable)
		return
	}

	room := r.URL.Query().Get("room")
	if room == "" {
		http.Error(w, "room parameter required", http.StatusBadRequest)
		return
	}

	s.hub.ServeWS(w, r, room)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", v)
	}
	return n, nil
}

// statusRecorder captures the status code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController and the websocket upgrader reach the
// underlying writer
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			// Hijacked connections need the original writer
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
