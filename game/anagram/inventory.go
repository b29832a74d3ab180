package anagram

import (
	"fmt"
	"strings"
	"unicode"
)

const alphabet = 26

// Inventory counts occurrences of each letter a-z. The zero value is empty.
type Inventory struct {
	counts [alphabet]int
	size   int
}

// NewInventory counts the letters of s, case-insensitively. Anything that is
// not an ASCII letter is ignored.
func NewInventory(s string) Inventory {
	var inv Inventory
	for _, r := range s {
		if i, ok := letterIndex(r); ok {
			inv.counts[i]++
			inv.size++
		}
	}
	return inv
}

func letterIndex(r rune) (int, bool) {
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return int(r - 'a'), true
}

// Get returns the count for letter; non-letters always count zero
func (inv Inventory) Get(letter rune) int {
	i, ok := letterIndex(letter)
	if !ok {
		return 0
	}
	return inv.counts[i]
}

// Set replaces the count for letter
func (inv *Inventory) Set(letter rune, n int) error {
	i, ok := letterIndex(letter)
	if !ok {
		return fmt.Errorf("anagram: %q is not a letter", letter)
	}
	if n < 0 {
		return fmt.Errorf("anagram: negative count %d for %q", n, letter)
	}
	inv.size += n - inv.counts[i]
	inv.counts[i] = n
	return nil
}

// Size returns the total number of letters
func (inv Inventory) Size() int {
	return inv.size
}

// IsEmpty reports whether the inventory holds no letters
func (inv Inventory) IsEmpty() bool {
	return inv.size == 0
}

// String lists the letters in alphabetical order, e.g. "aaace"
func (inv Inventory) String() string {
	var b strings.Builder
	b.Grow(inv.size)
	for i, n := range inv.counts {
		for j := 0; j < n; j++ {
			b.WriteByte(byte('a' + i))
		}
	}
	return b.String()
}

// Add returns the sum of both inventories
func (inv Inventory) Add(other Inventory) Inventory {
	out := inv
	for i := range out.counts {
		out.counts[i] += other.counts[i]
	}
	out.size += other.size
	return out
}

// Subtract returns inv minus other. ok is false when any count would go negative.
func (inv Inventory) Subtract(other Inventory) (Inventory, bool) {
	out := inv
	for i := range out.counts {
		out.counts[i] -= other.counts[i]
		if out.counts[i] < 0 {
			return Inventory{}, false
		}
	}
	out.size -= other.size
	return out, true
}

// Contains reports whether other fits within inv
func (inv Inventory) Contains(other Inventory) bool {
	if other.size > inv.size {
		return false
	}
	for i := range inv.counts {
		if other.counts[i] > inv.counts[i] {
			return false
		}
	}
	return true
}
