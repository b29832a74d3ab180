// Package engine provides the core search logic for the Word Hunt Solver.
//
// The engine package implements:
//   - Board construction from a flat row-major letter string
//   - 8-directional adjacency between board cells
//   - Path tracking with O(1) membership and backtracking undo
//   - Depth-first word tracing over non-repeating adjacent cells
//   - Word list search with a minimum word length filter
//
// Core Types:
//
// Board is an immutable square grid of lowercase letters. Tracer decides
// whether one word can be traced on a Board, owning the Path it mutates.
// SearchEngine implements the Engine interface: it runs a word list against a
// freshly built Board per query and returns the matches in list order.
//
// Usage:
//
//	config := engine.DefaultSolverConfig()
//	searchEngine, err := engine.NewEngine(config, words)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	found, err := searchEngine.Solve(ctx, "abcdefghijklmnop")
//	if errors.Is(err, engine.ErrInvalidBoard) {
//		// letters do not fill a BoardSize x BoardSize grid
//	}
//
// Search Rules:
//
// A word is found when its letters can be matched, in order, to a sequence of
// board cells where each cell touches the previous one (including diagonals)
// and no cell is used twice. An empty word is always found. Which path proves a
// word is not part of the contract, only that one exists.
package engine
