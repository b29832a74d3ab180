package engine

// LetterCounts counts how many cells hold each letter
func (b *Board) LetterCounts() map[rune]int {
	counts := make(map[rune]int, len(b.cells))
	for _, c := range b.cells {
		counts[c]++
	}
	return counts
}

// CountLetter counts the cells holding letter
func (b *Board) CountLetter(letter rune) int {
	count := 0
	for _, c := range b.cells {
		if c == letter {
			count++
		}
	}
	return count
}

// canSupply reports whether counts has enough copies of every letter in word.
// A word failing this can never be traced, since no cell may be reused.
func canSupply(counts map[rune]int, word []rune) bool {
	need := make(map[rune]int, len(word))
	for _, r := range word {
		need[r]++
		if need[r] > counts[r] {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
