package engine

import "fmt"

// Path is the ordered, non-repeating list of cells committed while tracing
// one word. Membership checks are O(1) through a per-cell visited table.
type Path struct {
	size      int
	positions []Position
	visited   []bool
}

// NewPath creates an empty path for a board of the given side length
func NewPath(size int) *Path {
	return &Path{
		size:      size,
		positions: make([]Position, 0, size*size),
		visited:   make([]bool, size*size),
	}
}

// Push appends p. Pushing an out-of-bounds or already visited cell panics:
// callers must check Contains first.
func (p *Path) Push(pos Position) {
	if !pos.InBounds(p.size) {
		panic(fmt.Sprintf("path: position (%d,%d) out of bounds for size %d", pos.Row, pos.Col, p.size))
	}
	idx := pos.index(p.size)
	if p.visited[idx] {
		panic(fmt.Sprintf("path: position (%d,%d) already visited", pos.Row, pos.Col))
	}
	p.visited[idx] = true
	p.positions = append(p.positions, pos)
}

// Pop removes the most recently pushed position. It returns false on an empty path.
func (p *Path) Pop() (Position, bool) {
	if len(p.positions) == 0 {
		return Position{}, false
	}
	last := p.positions[len(p.positions)-1]
	p.positions = p.positions[:len(p.positions)-1]
	p.visited[last.index(p.size)] = false
	return last, true
}

// Contains reports whether pos is already on the path
func (p *Path) Contains(pos Position) bool {
	if !pos.InBounds(p.size) {
		return false
	}
	return p.visited[pos.index(p.size)]
}

// Last returns the most recently pushed position
func (p *Path) Last() (Position, bool) {
	if len(p.positions) == 0 {
		return Position{}, false
	}
	return p.positions[len(p.positions)-1], true
}

// Len returns the number of positions on the path
func (p *Path) Len() int {
	return len(p.positions)
}

// Positions returns a copy of the path in push order
func (p *Path) Positions() []Position {
	out := make([]Position, len(p.positions))
	copy(out, p.positions)
	return out
}

// Reset empties the path
func (p *Path) Reset() {
	for _, pos := range p.positions {
		p.visited[pos.index(p.size)] = false
	}
	p.positions = p.positions[:0]
}
