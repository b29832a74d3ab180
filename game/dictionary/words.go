package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

// IsWord reports whether s is non-empty and made of letters only
func IsWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Normalize trims and lowercases every entry, drops entries that are not
// letters-only words, removes duplicates and sorts the result
func Normalize(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		w := strings.ToLower(strings.TrimSpace(line))
		if !IsWord(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Merge returns the normalized union of existing and incoming
func Merge(existing, incoming []string) []string {
	all := make([]string, 0, len(existing)+len(incoming))
	all = append(all, existing...)
	all = append(all, incoming...)
	return Normalize(all)
}

// ReadWords reads one entry per line, skipping blank lines and # comments.
// Entries are returned trimmed but otherwise raw.
func ReadWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return out, nil
}

// WriteWords writes one word per line
func WriteWords(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Stats summarizes a raw word list
type Stats struct {
	Lines      int         `json:"lines"`
	Accepted   int         `json:"accepted"`
	Rejected   int         `json:"rejected"`
	Duplicates int         `json:"duplicates"`
	Lengths    map[int]int `json:"lengths"`
	Longest    string      `json:"longest"`
}

// Analyze reports how Normalize would treat lines
func Analyze(lines []string) Stats {
	stats := Stats{Lines: len(lines), Lengths: make(map[int]int)}
	seen := make(map[string]struct{}, len(lines))

	for _, line := range lines {
		w := strings.ToLower(strings.TrimSpace(line))
		if !IsWord(w) {
			stats.Rejected++
			continue
		}
		if _, dup := seen[w]; dup {
			stats.Duplicates++
			continue
		}
		seen[w] = struct{}{}
		stats.Accepted++

		n := len([]rune(w))
		stats.Lengths[n]++
		if longest := len([]rune(stats.Longest)); n > longest || (n == longest && w < stats.Longest) {
			stats.Longest = w
		}
	}
	return stats
}

// ReadWordsString is ReadWords over an in-memory list
func ReadWordsString(s string) ([]string, error) {
	return ReadWords(strings.NewReader(s))
}
