package engine

const (
	// Board and word defaults
	DefaultBoardSize     = 4
	DefaultMinWordLength = 3
	DefaultDictionary    = "default"

	// Validation constants
	MinBoardSize  = 1
	MaxBoardSize  = 12
	MinWordLength = 1
	MaxWorkers    = 64
)

// Position represents row,col coordinates on a board
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the position lies on a board of the given side length
func (p Position) InBounds(size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

// index returns the row-major flat index of p on a board of the given size
func (p Position) index(size int) int {
	return p.Row*size + p.Col
}

// SolverConfig represents a solver configuration loaded from JSON
type SolverConfig struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	BoardSize     int    `json:"board_size"`
	MinWordLength int    `json:"min_word_length"`
	Dictionary    string `json:"dictionary"`

	// Workers > 1 traces words concurrently. Results are identical either way.
	Workers int `json:"workers,omitempty"`
}
