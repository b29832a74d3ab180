package anagram

import "unicode/utf8"

type entry struct {
	word      string
	inventory Inventory
}

// Solver answers sub-anagram queries over a fixed word list
type Solver struct {
	minLength int
	entries   []entry
}

// NewSolver precomputes inventories for every word with at least minLength letters
func NewSolver(words []string, minLength int) *Solver {
	s := &Solver{minLength: minLength}
	for _, w := range words {
		if utf8.RuneCountInString(w) < minLength {
			continue
		}
		s.entries = append(s.entries, entry{word: w, inventory: NewInventory(w)})
	}
	return s
}

// Find returns, in word list order, every word whose letters are available in text
func (s *Solver) Find(text string) []string {
	target := NewInventory(text)
	result := make([]string, 0)
	if target.IsEmpty() {
		return result
	}

	for _, e := range s.entries {
		if e.inventory.IsEmpty() {
			continue
		}
		if target.Contains(e.inventory) {
			result = append(result, e.word)
		}
	}
	return result
}

// MinLength returns the shortest word length the solver considers
func (s *Solver) MinLength() int {
	return s.minLength
}

// Len returns the number of candidate words
func (s *Solver) Len() int {
	return len(s.entries)
}
