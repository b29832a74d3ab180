// Package mcp provides the Model Context Protocol interface of the word hunt solver.
//
// The Client registers MCP tools that proxy to the REST API, so the same
// tools work whether the API runs in-process or on another host.
//
// MCP Tools:
//   - solve_board: Find the words on a board, optionally with paths
//   - find_anagrams: Find the words spelled from a set of letters
//   - list_dictionaries: List dictionaries with word counts
//   - add_words: Merge words into a dictionary
//   - restore_dictionary: Undo the last merge
//   - list_configs: List solver configurations
//   - solver_instructions: Rules and usage notes
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp, handled by the main server with HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
