package engine

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Engine provides the main interface for word hunt queries
type Engine interface {
	// Search
	Solve(ctx context.Context, letters string) ([]string, error)
	Trace(letters, word string) ([]Position, bool, error)

	// Configuration
	GetConfig() *SolverConfig
	SetConfig(config *SolverConfig) error

	// Word list
	GetWords() []string
}

// SearchEngine implements Engine over a read-only word list. It keeps no
// per-query state: each Solve builds its own Board and Paths, so one engine
// may serve concurrent queries. A query uses the config current when it starts.
type SearchEngine struct {
	mu     sync.RWMutex
	config *SolverConfig
	words  []string
}

// NewEngine creates a search engine for the provided configuration and word list.
// Only the board size is checked here; file and request limits belong to
// ValidateSolverConfig.
func NewEngine(config *SolverConfig, words []string) (*SearchEngine, error) {
	if err := checkEngineConfig(config); err != nil {
		return nil, err
	}

	return &SearchEngine{
		config: config,
		words:  words,
	}, nil
}

// NewEngineWithDefaults creates a search engine with the default configuration
func NewEngineWithDefaults(words []string) *SearchEngine {
	return &SearchEngine{
		config: DefaultSolverConfig(),
		words:  words,
	}
}

// FindWords runs a single query: every word of at least minWordLength letters
// that can be traced on the size x size board built from letters, in word list order.
// Any size >= 1 is accepted and minWordLength <= 0 disables the length filter.
// The only error is *InvalidBoardError.
func FindWords(letters string, size, minWordLength int, words []string) ([]string, error) {
	config := DefaultSolverConfig()
	config.BoardSize = size
	config.MinWordLength = minWordLength

	e, err := NewEngine(config, words)
	if err != nil {
		return nil, err
	}
	return e.Solve(context.Background(), letters)
}

// Solve returns the words found on the board built from letters, preserving
// word list order. A cancelled context yields ctx.Err() and no partial result.
func (e *SearchEngine) Solve(ctx context.Context, letters string) ([]string, error) {
	config := e.GetConfig()
	board, err := NewBoard(letters, config.BoardSize)
	if err != nil {
		return nil, err
	}

	var found []bool
	if config.Workers > 1 {
		found, err = e.traceParallel(ctx, board, config)
	} else {
		found, err = e.traceSequential(ctx, board, config.MinWordLength)
	}
	if err != nil {
		return nil, err
	}

	result := make([]string, 0)
	for i, ok := range found {
		if ok {
			result = append(result, e.words[i])
		}
	}
	return result, nil
}

// Trace looks for a single word on the board built from letters and returns the witness path.
// The minimum word length does not apply.
func (e *SearchEngine) Trace(letters, word string) ([]Position, bool, error) {
	board, err := NewBoard(letters, e.GetConfig().BoardSize)
	if err != nil {
		return nil, false, err
	}
	path, ok := NewTracer(board).Trace(word)
	return path, ok, nil
}

// traceSequential checks every word in order with one tracer
func (e *SearchEngine) traceSequential(ctx context.Context, board *Board, minLength int) ([]bool, error) {
	found := make([]bool, len(e.words))
	tracer := NewTracer(board)
	counts := board.LetterCounts()

	for i, word := range e.words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found[i] = checkWord(tracer, counts, minLength, word)
	}
	return found, nil
}

// traceParallel splits the word list into contiguous chunks, one tracer per chunk
func (e *SearchEngine) traceParallel(ctx context.Context, board *Board, config *SolverConfig) ([]bool, error) {
	found := make([]bool, len(e.words))
	counts := board.LetterCounts()

	workers := min(config.Workers, MaxWorkers)
	chunk := (len(e.words) + workers - 1) / workers
	if chunk == 0 {
		return found, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(e.words); start += chunk {
		end := min(start+chunk, len(e.words))
		g.Go(func() error {
			tracer := NewTracer(board)
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				found[i] = checkWord(tracer, counts, config.MinWordLength, e.words[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup cancels gctx on return; a parent cancel without a worker error still counts
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return found, nil
}

// checkWord applies the length filter and letter-count pre-filter before tracing
func checkWord(tracer *Tracer, counts map[rune]int, minLength int, word string) bool {
	if utf8.RuneCountInString(word) < minLength {
		return false
	}
	if !canSupply(counts, []rune(word)) {
		return false
	}
	return tracer.Contains(word)
}

// GetConfig returns the current solver configuration
func (e *SearchEngine) GetConfig() *SolverConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

// SetConfig replaces the solver configuration. Queries already running keep the old one.
func (e *SearchEngine) SetConfig(config *SolverConfig) error {
	if err := checkEngineConfig(config); err != nil {
		return err
	}
	e.mu.Lock()
	e.config = config
	e.mu.Unlock()
	return nil
}

// checkEngineConfig accepts any config that describes a board
func checkEngineConfig(config *SolverConfig) error {
	if config == nil {
		return fmt.Errorf("engine: config is required")
	}
	if config.BoardSize < MinBoardSize {
		return &InvalidBoardError{Size: config.BoardSize}
	}
	return nil
}

// GetWords returns the word list the engine searches
func (e *SearchEngine) GetWords() []string {
	return e.words
}

// String describes the engine for logs
func (e *SearchEngine) String() string {
	config := e.GetConfig()
	return fmt.Sprintf("engine(%s %dx%d min=%d words=%d)",
		config.Name, config.BoardSize, config.BoardSize, config.MinWordLength, len(e.words))
}
