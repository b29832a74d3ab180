// Command validate checks the solver configuration JSON files in a directory
// (../configs by default). It checks:
//   - JSON structure, unknown fields and required fields
//   - Board size, minimum word length and worker bounds
//   - That the referenced dictionary can be loaded
//   - Coverage: the dictionary holds at least one word that fits on the board
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/wricardo/word-hunt-solver/game/dictionary"
	"github.com/wricardo/word-hunt-solver/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// DictionaryLookup loads a dictionary by name
type DictionaryLookup func(name string) (*dictionary.Dictionary, error)

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string, lookup DictionaryLookup) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.SolverConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if config.Name == "" {
		result.fail("name is required")
	}
	if config.BoardSize == 0 {
		result.fail("board_size is required")
	} else if config.BoardSize < engine.MinBoardSize || config.BoardSize > engine.MaxBoardSize {
		result.fail("board_size must be between %d and %d, got %d", engine.MinBoardSize, engine.MaxBoardSize, config.BoardSize)
	}
	if config.MinWordLength < 0 {
		result.fail("min_word_length must be positive, got %d", config.MinWordLength)
	}
	if config.Workers < 0 || config.Workers > engine.MaxWorkers {
		result.fail("workers must be between 0 and %d, got %d", engine.MaxWorkers, config.Workers)
	}

	// Fields left empty fall back to the defaults the server applies
	engine.ApplyDefaults(&config)

	cells := config.BoardSize * config.BoardSize
	if config.BoardSize > 0 && config.MinWordLength > cells {
		result.fail("min_word_length (%d) cannot exceed the %d cells of a %dx%d board",
			config.MinWordLength, cells, config.BoardSize, config.BoardSize)
	}

	if result.Valid {
		if err := engine.ValidateSolverConfig(&config); err != nil {
			result.fail("%v", err)
		}
	}

	if !result.Valid {
		return result
	}

	dict, err := lookup(config.Dictionary)
	if err != nil {
		result.fail("Dictionary '%s' cannot be loaded: %v", config.Dictionary, err)
		return result
	}

	playable := countPlayable(dict.Words, config.MinWordLength, cells)
	if playable == 0 {
		result.fail("Dictionary '%s' has no words of %d to %d letters", config.Dictionary, config.MinWordLength, cells)
		return result
	}

	result.Errors = append(result.Errors,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Board: %dx%d", config.BoardSize, config.BoardSize),
		fmt.Sprintf("✓ Min word length: %d", config.MinWordLength),
		fmt.Sprintf("✓ Dictionary: %s (%d words)", dict.Name, dict.Len()),
		fmt.Sprintf("✓ Playable words: %d", playable),
	)
	if config.Workers > 1 {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Workers: %d", config.Workers))
	}

	return result
}

// countPlayable counts the words long enough to report and short enough to fit on the board
func countPlayable(words []string, minLength, cells int) int {
	count := 0
	for _, w := range words {
		if n := utf8.RuneCountInString(w); n >= minLength && n <= cells {
			count++
		}
	}
	return count
}

// newLookup opens dictionary storage the same way the server does
func newLookup(dictionaryDir, dictionaryDB string) (DictionaryLookup, func(), error) {
	if dictionaryDB != "" {
		db, err := dictionary.OpenSQLite(dictionaryDB)
		if err != nil {
			return nil, nil, err
		}
		return dictionary.NewManagerWithPersistence(db).Get, func() { db.Close() }, nil
	}

	fp, err := dictionary.NewFilePersistence(dictionaryDir)
	if err != nil {
		return nil, nil, err
	}
	return dictionary.NewManagerWithPersistence(fp).Get, func() {}, nil
}

// main scans the config directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := flag.String("config-dir", "../configs", "Directory containing solver configurations")
	dictionaryDir := flag.String("dictionary-dir", "../dictionaries", "Directory containing dictionary word lists")
	dictionaryDB := flag.String("dictionary-db", "", "SQLite dictionary database (overrides -dictionary-dir)")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No configuration files found in %s\n", *configDir)
		os.Exit(1)
	}

	lookup, closeLookup, err := newLookup(*dictionaryDir, *dictionaryDB)
	if err != nil {
		fmt.Printf("Error opening dictionaries: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file, lookup)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}
	closeLookup()

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
