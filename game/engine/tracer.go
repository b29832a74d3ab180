package engine

// Tracer decides whether a word can be laid out on a board as a path of
// adjacent, non-repeating cells. A Tracer owns its Path and must not be
// shared between goroutines; the Board it reads may be.
type Tracer struct {
	board *Board
	path  *Path
}

// NewTracer creates a tracer over board with its own empty path
func NewTracer(board *Board) *Tracer {
	return &Tracer{
		board: board,
		path:  NewPath(board.Size()),
	}
}

// Trace searches for word on the board. On success it returns the witness
// path, one position per letter. Which witness is found depends on
// enumeration order; only its existence is meaningful.
func (t *Tracer) Trace(word string) ([]Position, bool) {
	letters := []rune(word)
	if len(letters) == 0 {
		return []Position{}, true
	}

	defer t.path.Reset()
	if !t.search(letters) {
		return nil, false
	}
	return t.path.Positions(), true
}

// Contains reports whether word can be traced on the board
func (t *Tracer) Contains(word string) bool {
	_, ok := t.Trace(word)
	return ok
}

// search places rest[0] and recurses on the remaining suffix
func (t *Tracer) search(rest []rune) bool {
	if len(rest) == 0 {
		return true
	}

	for _, candidate := range t.candidates(rest[0]) {
		if t.descend(candidate, rest[1:]) {
			return true
		}
	}
	return false
}

// descend commits candidate and searches the suffix. The candidate is popped
// on every exit that is not a success, including panics.
func (t *Tracer) descend(candidate Position, rest []rune) (found bool) {
	t.path.Push(candidate)
	defer func() {
		if !found {
			t.path.Pop()
		}
	}()
	return t.search(rest)
}

// candidates lists the cells that may hold the next letter: every matching
// cell for the first letter, otherwise unvisited matching neighbors of the
// last committed cell.
func (t *Tracer) candidates(letter rune) []Position {
	last, ok := t.path.Last()
	if !ok {
		return t.board.Positions(letter)
	}

	var out []Position
	for _, n := range Neighbors(last, t.board.Size()) {
		if t.board.At(n) == letter && !t.path.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}
