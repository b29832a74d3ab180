// Package service provides the business logic layer of the word hunt solver.
//
// The service package implements:
//   - Board queries against a named configuration and dictionary
//   - Anagram queries over the same dictionaries
//   - Dictionary listing, merging and restore
//   - Configuration listing, loading and saving
//
// Core Interfaces:
//
// SolverService is the main service interface used by every transport.
// ConfigManager loads solver configurations (see package config).
// DictionaryManager stores word lists (see package dictionary).
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP/prompt)
// and the search engine. Every Solve builds a fresh engine from a private copy
// of the configuration, so concurrent requests never share mutable state.
//
// Usage:
//
//	configMgr, _ := config.NewManager("configs")
//	dictMgr := dictionary.NewManager()
//	solver := service.NewSolverService(configMgr, dictMgr)
//
//	result, err := solver.Solve(ctx, service.SolveRequest{Letters: "catsdogsbirdfish"})
//	if errors.Is(err, engine.ErrInvalidBoard) {
//		// wrong number of letters
//	}
//
// Errors:
//
// Missing configurations and dictionaries match ErrNotFound, bad input matches
// ErrInvalidRequest or engine.ErrInvalidBoard. A board with no matches is a
// successful result with Count 0.
package service
