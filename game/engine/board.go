package engine

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidBoard matches any *InvalidBoardError via errors.Is
var ErrInvalidBoard = errors.New("invalid board")

// InvalidBoardError is returned when the letters do not fill a size x size board
type InvalidBoardError struct {
	Size   int
	Length int
}

func (e *InvalidBoardError) Error() string {
	if e.Size < MinBoardSize {
		return fmt.Sprintf("invalid board: size must be at least %d, got %d", MinBoardSize, e.Size)
	}
	return fmt.Sprintf("invalid board: expected %d letters for a %dx%d board, got %d",
		e.Size*e.Size, e.Size, e.Size, e.Length)
}

// Is lets errors.Is(err, ErrInvalidBoard) match
func (e *InvalidBoardError) Is(target error) bool {
	return target == ErrInvalidBoard
}

// Board is an immutable square grid of lowercase letters
type Board struct {
	size  int
	cells []rune
}

// NewBoard builds a size x size board from letters read row-major.
// Letters are lowercased; non-letters are kept and simply never match.
func NewBoard(letters string, size int) (*Board, error) {
	length := utf8.RuneCountInString(letters)
	if size < MinBoardSize || length != size*size {
		return nil, &InvalidBoardError{Size: size, Length: length}
	}

	cells := make([]rune, 0, length)
	for _, r := range letters {
		cells = append(cells, unicode.ToLower(r))
	}

	return &Board{size: size, cells: cells}, nil
}

// Size returns the side length of the board
func (b *Board) Size() int {
	return b.size
}

// At returns the letter at p. p must be in bounds.
func (b *Board) At(p Position) rune {
	return b.cells[p.index(b.size)]
}

// Letters returns the board contents as a flat row-major string
func (b *Board) Letters() string {
	return string(b.cells)
}

// Rows returns each board row as a string
func (b *Board) Rows() []string {
	rows := make([]string, b.size)
	for r := 0; r < b.size; r++ {
		rows[r] = string(b.cells[r*b.size : (r+1)*b.size])
	}
	return rows
}

// Positions returns every position holding letter, in row-major order
func (b *Board) Positions(letter rune) []Position {
	var out []Position
	for i, c := range b.cells {
		if c == letter {
			out = append(out, Position{Row: i / b.size, Col: i % b.size})
		}
	}
	return out
}
