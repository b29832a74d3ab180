package service

import (
	"time"

	"github.com/wricardo/word-hunt-solver/game/engine"
)

// SolveRequest describes one board query. Zero-valued overrides fall back to
// the selected configuration.
type SolveRequest struct {
	Letters       string `json:"letters"`
	ConfigID      string `json:"config_id,omitempty"`
	Dictionary    string `json:"dictionary,omitempty"`
	BoardSize     int    `json:"board_size,omitempty"`
	MinWordLength int    `json:"min_word_length,omitempty"`
	IncludePaths  bool   `json:"include_paths,omitempty"`
	Room          string `json:"room,omitempty"` // WebSocket room to broadcast the result to
}

// SolveResult contains the words found on a board
type SolveResult struct {
	Letters       string   `json:"letters"`
	Rows          []string `json:"rows"`
	BoardSize     int      `json:"board_size"`
	MinWordLength int      `json:"min_word_length"`
	Dictionary    string   `json:"dictionary"`
	ConfigID      string   `json:"config_id"`

	Words  []string `json:"words"`  // dictionary order
	Sorted []string `json:"sorted"` // shortest first, ties in list order
	Count  int      `json:"count"`

	Paths     map[string][]engine.Position `json:"paths,omitempty"`
	ElapsedMs int64                        `json:"elapsed_ms"`
}

// AnagramRequest describes one anagram query
type AnagramRequest struct {
	Text          string `json:"text"`
	Dictionary    string `json:"dictionary,omitempty"`
	MinWordLength int    `json:"min_word_length,omitempty"`
}

// AnagramResult contains the words spelled from the request's letters
type AnagramResult struct {
	Text          string   `json:"text"`
	Letters       string   `json:"letters"` // the text's letters, alphabetized
	MinWordLength int      `json:"min_word_length"`
	Dictionary    string   `json:"dictionary"`
	Words         []string `json:"words"`
	Sorted        []string `json:"sorted"`
	Count         int      `json:"count"`
	ElapsedMs     int64    `json:"elapsed_ms"`
}

// MergeResult reports the outcome of adding words to a dictionary
type MergeResult struct {
	Name      string    `json:"name"`
	Added     int       `json:"added"`
	WordCount int       `json:"word_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CandidatesRequest asks for the likely words hidden in one word's letters
type CandidatesRequest struct {
	Word      string `json:"word"`
	MinLength int    `json:"min_length,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"` // list candidates without merging
}

// CandidatesResult reports the generated candidates and, unless dry run, the merge
type CandidatesResult struct {
	Name       string    `json:"name"`
	Word       string    `json:"word"`
	MinLength  int       `json:"min_length"`
	Generated  int       `json:"generated"` // arrangements before filtering
	Candidates []string  `json:"candidates"`
	Added      int       `json:"added"`
	WordCount  int       `json:"word_count,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
	DryRun     bool      `json:"dry_run,omitempty"`
}

// ConfigInfo provides information about a solver configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to pass as config_id
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	BoardSize     int    `json:"board_size"`
	MinWordLength int    `json:"min_word_length"`
	Dictionary    string `json:"dictionary"`
}
