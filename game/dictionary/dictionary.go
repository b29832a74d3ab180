package dictionary

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultName is the dictionary served from the embedded word list when none is stored
const DefaultName = "default"

var (
	ErrDictionaryNotFound = errors.New("dictionary not found")
	ErrInvalidName        = errors.New("invalid dictionary name")
	ErrNoBackup           = errors.New("no backup available")
)

//go:embed default_words.txt
var embeddedDefault string

var (
	defaultOnce  sync.Once
	defaultWords []string
)

// DefaultWords returns the embedded default word list, normalized
func DefaultWords() []string {
	defaultOnce.Do(func() {
		defaultWords = mustParseWords(embeddedDefault)
	})
	out := make([]string, len(defaultWords))
	copy(out, defaultWords)
	return out
}

// mustParseWords normalizes an embedded word list. The list ships with the
// binary, so a read error is a build defect.
func mustParseWords(text string) []string {
	lines, err := ReadWordsString(text)
	if err != nil {
		panic(fmt.Sprintf("dictionary: embedded word list is unreadable: %v", err))
	}
	return Normalize(lines)
}

// Dictionary is a named, normalized word list
type Dictionary struct {
	Name      string    `json:"name"`
	Words     []string  `json:"words"`
	UpdatedAt time.Time `json:"updated_at"`

	index map[string]struct{}
}

// New creates a dictionary from raw entries, normalizing them
func New(name string, words []string) *Dictionary {
	return newNormalized(name, Normalize(words), time.Now())
}

func newNormalized(name string, words []string, updatedAt time.Time) *Dictionary {
	index := make(map[string]struct{}, len(words))
	for _, w := range words {
		index[w] = struct{}{}
	}
	return &Dictionary{
		Name:      name,
		Words:     words,
		UpdatedAt: updatedAt,
		index:     index,
	}
}

// Contains reports whether word is in the dictionary
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.index[word]
	return ok
}

// Len returns the number of words
func (d *Dictionary) Len() int {
	return len(d.Words)
}

// ValidateName checks that name is usable as a file name and database key:
// 1-64 characters from a-z, 0-9, '-' and '_'
func ValidateName(name string) error {
	if name == "" || len(name) > 64 {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}
