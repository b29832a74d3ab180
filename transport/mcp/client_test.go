package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/word-hunt-solver/game/dictionary"
	"github.com/wricardo/word-hunt-solver/game/engine"
	"github.com/wricardo/word-hunt-solver/game/service"
)

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]string
	if err := client.apiCall(context.Background(), "GET", "/api/health", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", response["status"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"plain body", "Internal Server Error", "API error: 500"},
		{"json error", `{"error":"dictionary 'x' not found"}`, "dictionary 'x' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
			if err == nil {
				t.Fatal("Expected error for HTTP 500 response")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected %q in error message, got: %v", tt.expected, err)
			}
		})
	}
}

func TestClient_solveBoard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/solve" {
			t.Errorf("Expected POST /api/solve, got %s %s", r.Method, r.URL.Path)
		}

		var req service.SolveRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Letters != "abcdefghijklmnop" || req.MinWordLength != 4 || !req.IncludePaths {
			t.Errorf("Unexpected request: %+v", req)
		}

		json.NewEncoder(w).Encode(service.SolveResult{
			Letters:       req.Letters,
			Rows:          []string{"abcd", "efgh", "ijkl", "mnop"},
			BoardSize:     4,
			MinWordLength: 4,
			Dictionary:    "default",
			Words:         []string{"glop", "knife"},
			Sorted:        []string{"glop", "knife"},
			Count:         2,
			Paths: map[string][]engine.Position{
				"glop": {{Row: 1, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 3, Col: 3}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleSolveBoard(context.Background(), toolRequest("solve_board", map[string]interface{}{
		"letters":         "abcdefghijklmnop",
		"min_word_length": float64(4),
		"show_paths":      true,
	}))
	if err != nil {
		t.Fatalf("solveBoard failed: %v", err)
	}

	text := resultText(t, result)
	expected := []string{
		"A B C D",
		"2 words of 'abcdefghijklmnop' were found:",
		"4 letters (1): glop",
		"5 letters (1): knife",
		"glop: (1,2) → (2,3) → (3,2) → (3,3)",
	}
	for _, s := range expected {
		if !strings.Contains(text, s) {
			t.Errorf("Expected %q in result, got: %s", s, text)
		}
	}
}

func TestClient_solveBoard_MissingLetters(t *testing.T) {
	client := NewClient("http://localhost:0")

	result, err := client.handleSolveBoard(context.Background(), toolRequest("solve_board", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected tool error for missing letters")
	}
}

func TestClient_findAnagrams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/anagrams" {
			t.Errorf("Expected /api/anagrams, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(service.AnagramResult{
			Text:   "stone",
			Words:  []string{"notes", "stone"},
			Sorted: []string{"notes", "stone"},
			Count:  2,
		})
	}))
	defer server.Close()

	result, err := NewClient(server.URL).handleFindAnagrams(context.Background(),
		toolRequest("find_anagrams", map[string]interface{}{"text": "stone"}))
	if err != nil {
		t.Fatalf("findAnagrams failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "2 anagrams of 'stone' were found:") || !strings.Contains(text, "notes, stone") {
		t.Errorf("Unexpected result: %s", text)
	}
}

func TestClient_addWords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dictionaries/custom/words" {
			t.Errorf("Expected /api/dictionaries/custom/words, got %s", r.URL.Path)
		}
		var body map[string][]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(service.MergeResult{Name: "custom", Added: 1, WordCount: 10})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleAddWords(context.Background(), toolRequest("add_words", map[string]interface{}{
		"dictionary": "custom",
		"words":      []interface{}{"zebra", "zebra"},
	}))
	if err != nil {
		t.Fatalf("addWords failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Added 1 new words to 'custom' (10 words total)") {
		t.Errorf("Unexpected result: %s", text)
	}
	if !strings.Contains(text, "1 entries were duplicates") {
		t.Errorf("Expected duplicate note, got: %s", text)
	}

	result, _ = client.handleAddWords(context.Background(), toolRequest("add_words", map[string]interface{}{
		"dictionary": "custom",
	}))
	if !result.IsError {
		t.Error("Expected tool error for missing words")
	}
}

func TestClient_addCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dictionaries/custom/candidates" {
			t.Errorf("Expected /api/dictionaries/custom/candidates, got %s", r.URL.Path)
		}
		var body service.CandidatesRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.Word != "tea" || body.MinLength != 2 || !body.DryRun {
			t.Errorf("Unexpected request body: %+v", body)
		}
		json.NewEncoder(w).Encode(service.CandidatesResult{
			Name:       "custom",
			Word:       "tea",
			MinLength:  2,
			Generated:  12,
			Candidates: []string{"at", "ate", "eat", "eta", "tea"},
			DryRun:     true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.handleAddCandidates(context.Background(), toolRequest("add_candidates", map[string]interface{}{
		"dictionary": "custom",
		"word":       "tea",
		"min_length": float64(2),
		"dry_run":    true,
	}))
	if err != nil {
		t.Fatalf("addCandidates failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "5 of 12 arrangements of 'tea' look like words") {
		t.Errorf("Unexpected result: %s", text)
	}
	if !strings.Contains(text, "3 letters (4): ate, eat, eta, tea") {
		t.Errorf("Expected candidates grouped by length, got: %s", text)
	}
	if !strings.Contains(text, "Dry run") {
		t.Errorf("Expected dry run note, got: %s", text)
	}

	result, _ = client.handleAddCandidates(context.Background(), toolRequest("add_candidates", map[string]interface{}{
		"dictionary": "custom",
	}))
	if !result.IsError {
		t.Error("Expected tool error for missing word")
	}
}

func TestClient_listDictionaries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 2,
			"dictionaries": []dictionary.Info{
				{Name: "default", WordCount: 1800},
				{Name: "large", WordCount: 90000, Stored: true},
			},
		})
	}))
	defer server.Close()

	result, err := NewClient(server.URL).handleListDictionaries(context.Background(), toolRequest("list_dictionaries", nil))
	if err != nil {
		t.Fatalf("listDictionaries failed: %v", err)
	}

	text := resultText(t, result)
	for _, s := range []string{"Dictionaries (2)", "default: 1800 words (built-in)", "large: 90000 words (stored)"} {
		if !strings.Contains(text, s) {
			t.Errorf("Expected %q in result, got: %s", s, text)
		}
	}
}

func TestClient_listConfigs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 1,
			"configs": []*service.ConfigInfo{
				{ConfigID: "big", Name: "Big", Description: "5x5 board", BoardSize: 5, MinWordLength: 4, Dictionary: "default"},
			},
		})
	}))
	defer server.Close()

	result, err := NewClient(server.URL).handleListConfigs(context.Background(), toolRequest("list_configs", nil))
	if err != nil {
		t.Fatalf("listConfigs failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Big (config_id: big)") || !strings.Contains(text, "Board: 5x5, Min word length: 4") {
		t.Errorf("Unexpected result: %s", text)
	}
}

func TestFormatSolveResult_NoWords(t *testing.T) {
	text := formatSolveResult(&service.SolveResult{
		Letters:   "zzzz",
		Rows:      []string{"zz", "zz"},
		BoardSize: 2,
	})

	if !strings.Contains(text, "No words were found for 'zzzz'.") {
		t.Errorf("Expected no-words message, got: %s", text)
	}
}

func TestFormatAnagramResult(t *testing.T) {
	tests := []struct {
		result   service.AnagramResult
		expected string
	}{
		{service.AnagramResult{Text: "qq"}, "No anagrams were found for 'qq'."},
		{service.AnagramResult{Text: "ab", Sorted: []string{"ab"}, Count: 1}, "One anagram of 'ab' was found:"},
	}

	for _, tt := range tests {
		if got := formatAnagramResult(&tt.result); !strings.Contains(got, tt.expected) {
			t.Errorf("Expected %q, got: %s", tt.expected, got)
		}
	}
}

func TestFormatByLength(t *testing.T) {
	got := formatByLength([]string{"ab", "cd", "efg"})
	expected := "  2 letters (2): ab, cd\n  3 letters (1): efg\n"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}
