package dictionary

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxCandidateLetters bounds Candidates: a 9 letter word already has close to a
// million arrangements.
const MaxCandidateLetters = 9

// Rule file names, one entry per line, shared by the embedded defaults and LoadRules
const (
	CombosFile = "impossible-letter-combos.txt"
	StartsFile = "impossible-start-letters.txt"
	EndsFile   = "impossible-end-letters.txt"
)

var (
	ErrInvalidWord = errors.New("invalid word")
	ErrWordTooLong = fmt.Errorf("word longer than %d letters", MaxCandidateLetters)
)

//go:embed rules/impossible-letter-combos.txt
var embeddedCombos string

//go:embed rules/impossible-start-letters.txt
var embeddedStarts string

//go:embed rules/impossible-end-letters.txt
var embeddedEnds string

const vowels = "aeiouy"

// Rules reject letter arrangements that are unlikely to be words
type Rules struct {
	Combos []string `json:"combos"` // never inside a word
	Starts []string `json:"starts"` // never at the start
	Ends   []string `json:"ends"`   // never at the end
}

// DefaultRules returns the rule lists shipped with the binary
func DefaultRules() Rules {
	return Rules{
		Combos: mustParseRules(embeddedCombos),
		Starts: mustParseRules(embeddedStarts),
		Ends:   mustParseRules(embeddedEnds),
	}
}

// LoadRules reads the three rule files from dir. A missing file keeps the
// default list for that rule; an empty file disables it.
func LoadRules(dir string) (Rules, error) {
	rules := DefaultRules()
	for file, target := range map[string]*[]string{
		CombosFile: &rules.Combos,
		StartsFile: &rules.Starts,
		EndsFile:   &rules.Ends,
	} {
		f, err := os.Open(filepath.Join(dir, file))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Rules{}, fmt.Errorf("failed to open rule file: %w", err)
		}
		lines, err := ReadWords(f)
		f.Close()
		if err != nil {
			return Rules{}, fmt.Errorf("%s: %w", file, err)
		}
		*target = lowerAll(lines)
	}
	return rules, nil
}

// Allows reports whether word has a vowel and breaks none of the rules
func (r Rules) Allows(word string) bool {
	if !strings.ContainsAny(word, vowels) {
		return false
	}
	for _, combo := range r.Combos {
		if strings.Contains(word, combo) {
			return false
		}
	}
	for _, start := range r.Starts {
		if strings.HasPrefix(word, start) {
			return false
		}
	}
	for _, end := range r.Ends {
		if strings.HasSuffix(word, end) {
			return false
		}
	}
	return true
}

// Permutations returns every distinct arrangement of minLength to len(word)
// of word's letters, sorted. Each letter is used at most as often as it
// appears in word.
func Permutations(word string, minLength int) ([]string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if !IsWord(word) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	letters := []rune(word)
	if len(letters) > MaxCandidateLetters {
		return nil, fmt.Errorf("%w: %q", ErrWordTooLong, word)
	}
	if minLength < 1 {
		minLength = 1
	}

	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	used := make([]bool, len(letters))
	current := make([]rune, 0, len(letters))
	var out []string

	var permute func()
	permute = func() {
		if len(current) >= minLength {
			out = append(out, string(current))
		}
		for i, r := range letters {
			// Equal letters are interchangeable: only the first unused copy starts a branch
			if used[i] || (i > 0 && letters[i-1] == r && !used[i-1]) {
				continue
			}
			used[i] = true
			current = append(current, r)
			permute()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	permute()

	sort.Strings(out)
	return out, nil
}

// Candidates returns the arrangements of word's letters, at least minLength
// long, that pass rules
func Candidates(word string, minLength int, rules Rules) ([]string, error) {
	all, err := Permutations(word, minLength)
	if err != nil {
		return nil, err
	}
	return rules.Filter(all), nil
}

// Filter returns the words rules allows, in order
func (r Rules) Filter(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if r.Allows(w) {
			out = append(out, w)
		}
	}
	return out
}

func mustParseRules(text string) []string {
	lines, err := ReadWordsString(text)
	if err != nil {
		panic(fmt.Sprintf("dictionary: embedded rule list is unreadable: %v", err))
	}
	return lowerAll(lines)
}

func lowerAll(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.ToLower(l))
	}
	return out
}
