package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/word-hunt-solver/game/dictionary"
	"github.com/wricardo/word-hunt-solver/game/engine"
	"github.com/wricardo/word-hunt-solver/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Word Hunt Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Word Hunt Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A board is a square grid of letters given row by row as one string, e.g.
"catsdogsbirdfish" is a 4x4 board. A word is on the board when it can be
traced through horizontally, vertically or diagonally adjacent cells without
reusing a cell.

AVAILABLE TOOLS:
- solve_board: Find every dictionary word on a board
- find_anagrams: Find every dictionary word spelled from a set of letters
- list_dictionaries: List dictionaries and their sizes
- add_words: Merge words into a dictionary
- restore_dictionary: Undo the last add_words on a dictionary
- add_candidates: Merge the likely words hidden in a word's letters into a dictionary
- list_configs: List solver configurations (board size, minimum word length, dictionary)
- solver_instructions: Explain the rules and how to read results`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_board",
		Description: "Find all dictionary words that can be traced on a word hunt board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"letters": map[string]interface{}{
					"type":        "string",
					"description": "Board letters row by row; length must be board_size squared",
				},
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Configuration to use (optional, see list_configs)",
				},
				"dictionary": map[string]interface{}{
					"type":        "string",
					"description": "Dictionary name (optional)",
				},
				"board_size": map[string]interface{}{
					"type":        "integer",
					"description": "Side length of the board (optional)",
				},
				"min_word_length": map[string]interface{}{
					"type":        "integer",
					"description": "Shortest word to report (optional)",
				},
				"show_paths": map[string]interface{}{
					"type":        "boolean",
					"description": "Include one cell path per word",
				},
			},
			Required: []string{"letters"},
		},
	}, c.handleSolveBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_anagrams",
		Description: "Find all dictionary words that can be spelled from the letters of a text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Letters to spell words from; non-letters are ignored",
				},
				"dictionary": map[string]interface{}{
					"type":        "string",
					"description": "Dictionary name (optional)",
				},
				"min_word_length": map[string]interface{}{
					"type":        "integer",
					"description": "Shortest word to report (optional)",
				},
			},
			Required: []string{"text"},
		},
	}, c.handleFindAnagrams)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_dictionaries",
		Description: "List available dictionaries with word counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListDictionaries)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "add_words",
		Description: "Merge words into a dictionary, creating it if needed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"dictionary": map[string]interface{}{
					"type":        "string",
					"description": "Dictionary name (lowercase letters, digits, '-' and '_')",
				},
				"words": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Words to add",
				},
			},
			Required: []string{"dictionary", "words"},
		},
	}, c.handleAddWords)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restore_dictionary",
		Description: "Restore a dictionary to its state before the last add_words",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"dictionary": map[string]interface{}{
					"type":        "string",
					"description": "Dictionary name",
				},
			},
			Required: []string{"dictionary"},
		},
	}, c.handleRestoreDictionary)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "add_candidates",
		Description: "Rearrange a word's letters and merge the arrangements that look like words into a dictionary",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"dictionary": map[string]interface{}{
					"type":        "string",
					"description": "Dictionary name",
				},
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Letters to rearrange (at most 9)",
				},
				"min_length": map[string]interface{}{
					"type":        "number",
					"description": "Shortest arrangement to keep (default 3)",
				},
				"dry_run": map[string]interface{}{
					"type":        "boolean",
					"description": "List the candidates without merging them",
				},
			},
			Required: []string{"dictionary", "word"},
		},
	}, c.handleAddCandidates)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available solver configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solver_instructions",
		Description: "Get the word hunt rules and how to use the solver tools",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSolverInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes an HTTP request to the REST API
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleSolveBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	letters, _ := args["letters"].(string)
	if letters == "" {
		return mcp.NewToolResultError("letters is required"), nil
	}

	body := service.SolveRequest{Letters: letters}
	body.ConfigID, _ = args["config_id"].(string)
	body.Dictionary, _ = args["dictionary"].(string)
	if v, ok := args["board_size"].(float64); ok {
		body.BoardSize = int(v)
	}
	if v, ok := args["min_word_length"].(float64); ok {
		body.MinWordLength = int(v)
	}
	body.IncludePaths, _ = args["show_paths"].(bool)

	var result service.SolveResult
	if err := c.apiCall(ctx, "POST", "/api/solve", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleFindAnagrams(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	text, _ := args["text"].(string)
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	body := service.AnagramRequest{Text: text}
	body.Dictionary, _ = args["dictionary"].(string)
	if v, ok := args["min_word_length"].(float64); ok {
		body.MinWordLength = int(v)
	}

	var result service.AnagramResult
	if err := c.apiCall(ctx, "POST", "/api/anagrams", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatAnagramResult(&result)), nil
}

func (c *Client) handleListDictionaries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Count        int               `json:"count"`
		Dictionaries []dictionary.Info `json:"dictionaries"`
	}
	if err := c.apiCall(ctx, "GET", "/api/dictionaries", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Dictionaries (%d):\n\n", resp.Count))
	for _, info := range resp.Dictionaries {
		source := "built-in"
		if info.Stored {
			source = "stored"
		}
		sb.WriteString(fmt.Sprintf("• %s: %d words (%s)\n", info.Name, info.WordCount, source))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleAddWords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	name, _ := args["dictionary"].(string)
	if name == "" {
		return mcp.NewToolResultError("dictionary is required"), nil
	}

	rawWords, _ := args["words"].([]interface{})
	words := make([]string, 0, len(rawWords))
	for _, w := range rawWords {
		if s, ok := w.(string); ok {
			words = append(words, s)
		}
	}
	if len(words) == 0 {
		return mcp.NewToolResultError("words array is required and must not be empty"), nil
	}

	var result service.MergeResult
	path := "/api/dictionaries/" + url.PathEscape(name) + "/words"
	if err := c.apiCall(ctx, "POST", path, map[string][]string{"words": words}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Added %d new words to '%s' (%d words total).\n", result.Added, result.Name, result.WordCount)
	if result.Added < len(words) {
		text += fmt.Sprintf("%d entries were duplicates or not words.\n", len(words)-result.Added)
	}
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleAddCandidates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	name, _ := args["dictionary"].(string)
	if name == "" {
		return mcp.NewToolResultError("dictionary is required"), nil
	}
	word, _ := args["word"].(string)
	if word == "" {
		return mcp.NewToolResultError("word is required"), nil
	}

	body := service.CandidatesRequest{Word: word}
	if v, ok := args["min_length"].(float64); ok {
		body.MinLength = int(v)
	}
	if v, ok := args["dry_run"].(bool); ok {
		body.DryRun = v
	}

	var result service.CandidatesResult
	path := "/api/dictionaries/" + url.PathEscape(name) + "/candidates"
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCandidatesResult(&result)), nil
}

func (c *Client) handleRestoreDictionary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	name, _ := args["dictionary"].(string)
	if name == "" {
		return mcp.NewToolResultError("dictionary is required"), nil
	}

	var info dictionary.Info
	if err := c.apiCall(ctx, "POST", "/api/dictionaries/"+url.PathEscape(name)+"/restore", nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Restored '%s' (%d words).\n", info.Name, info.WordCount)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Count   int                   `json:"count"`
		Configs []*service.ConfigInfo `json:"configs"`
	}
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range resp.Configs {
		result += fmt.Sprintf("• %s (config_id: %s)\n  %s\n  Board: %dx%d, Min word length: %d, Dictionary: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.BoardSize, config.BoardSize, config.MinWordLength, config.Dictionary)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolverInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `WORD HUNT SOLVER

BOARD
A board is a square grid written row by row as one string. "abcdefghi" is

  a b c
  d e f
  g h i

The string length must be exactly board_size x board_size. Letters are case
insensitive.

RULES
A word is on the board when its letters can be visited in order, each step
moving to one of the up to 8 neighboring cells (horizontal, vertical or
diagonal), never using the same cell twice. A letter that appears twice in a
word needs two cells holding it.

Only words with at least min_word_length letters are reported. The solver
reports each word once, whether it can be traced one way or many.

TOOLS
- solve_board: letters is required. config_id picks a preset from
  list_configs; board_size, min_word_length and dictionary override it.
  show_paths adds one path per word as (row,col) cells starting at (0,0)
  in the top left.
- find_anagrams: every word spelled from the text's letters, each letter
  used at most as often as it appears. Board adjacency does not apply.
- add_words / restore_dictionary: grow a dictionary and undo the last
  addition.
- add_candidates: rearranges a word's letters, drops arrangements without
  a vowel or with letter pairs English never uses, and merges the rest.
  Use dry_run to review them first; restore_dictionary undoes a merge.

RESULTS
Words are listed shortest first, in dictionary order within each length.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSolveResult(result *service.SolveResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Board %dx%d (min length %d, dictionary %s):\n",
		result.BoardSize, result.BoardSize, result.MinWordLength, result.Dictionary))
	for _, row := range result.Rows {
		sb.WriteString("  ")
		sb.WriteString(strings.Join(strings.Split(strings.ToUpper(row), ""), " "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch result.Count {
	case 0:
		sb.WriteString(fmt.Sprintf("No words were found for '%s'.\n", result.Letters))
		return sb.String()
	case 1:
		sb.WriteString(fmt.Sprintf("One word of '%s' was found:\n", result.Letters))
	default:
		sb.WriteString(fmt.Sprintf("%d words of '%s' were found:\n", result.Count, result.Letters))
	}

	sb.WriteString(formatByLength(result.Sorted))

	if len(result.Paths) > 0 {
		sb.WriteString("\nPaths:\n")
		for _, word := range result.Sorted {
			path, ok := result.Paths[word]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %s: %s\n", word, formatPath(path)))
		}
	}

	return sb.String()
}

func formatAnagramResult(result *service.AnagramResult) string {
	switch result.Count {
	case 0:
		return fmt.Sprintf("No anagrams were found for '%s'.\n", result.Text)
	case 1:
		return fmt.Sprintf("One anagram of '%s' was found:\n%s", result.Text, formatByLength(result.Sorted))
	default:
		return fmt.Sprintf("%d anagrams of '%s' were found:\n%s", result.Count, result.Text, formatByLength(result.Sorted))
	}
}

// formatByLength prints words on one line per length, shortest first
func formatByLength(words []string) string {
	groups := make(map[int][]string)
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		groups[n] = append(groups[n], w)
	}

	lengths := make([]int, 0, len(groups))
	for n := range groups {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)

	var sb strings.Builder
	for _, n := range lengths {
		sb.WriteString(fmt.Sprintf("  %d letters (%d): %s\n", n, len(groups[n]), strings.Join(groups[n], ", ")))
	}
	return sb.String()
}

func formatPath(path []engine.Position) string {
	cells := make([]string, len(path))
	for i, p := range path {
		cells[i] = fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return strings.Join(cells, " → ")
}

func formatCandidatesResult(result *service.CandidatesResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d of %d arrangements of '%s' look like words (min length %d).\n",
		len(result.Candidates), result.Generated, result.Word, result.MinLength))
	if len(result.Candidates) > 0 {
		sb.WriteString(formatByLength(result.Candidates))
	}
	if result.DryRun {
		sb.WriteString("Dry run: nothing was merged.\n")
	} else {
		sb.WriteString(fmt.Sprintf("Added %d new words to '%s' (%d words total).\n", result.Added, result.Name, result.WordCount))
	}
	return sb.String()
}
