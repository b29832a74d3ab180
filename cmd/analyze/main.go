// Command analyze prints statistics about a word list and, optionally, the
// words it yields on a board or the likely words hidden in a word's letters
// (--permute). The list comes from a raw file (--file) or from
// dictionary storage (--dictionary with --dictionary-dir or --dictionary-db).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/word-hunt-solver/game/dictionary"
	"github.com/wricardo/word-hunt-solver/game/engine"
	"github.com/wricardo/word-hunt-solver/game/service"
)

// Report is the analysis output, also printed as JSON with --json
type Report struct {
	Source string           `json:"source"`
	Stats  dictionary.Stats `json:"stats"`
	Board  *BoardReport     `json:"board,omitempty"`

	Candidates *CandidatesReport `json:"candidates,omitempty"`
}

// CandidatesReport holds the arrangements of --permute that pass the rules
type CandidatesReport struct {
	Word       string   `json:"word"`
	MinLength  int      `json:"min_length"`
	Candidates []string `json:"candidates"`
	New        []string `json:"new"` // candidates missing from the list
}

// BoardReport holds the words found on --board
type BoardReport struct {
	Letters       string   `json:"letters"`
	Rows          []string `json:"rows"`
	MinWordLength int      `json:"min_word_length"`
	Words         []string `json:"words"`
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("analyze failed")
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "analyze",
		Usage:  "report statistics about a word list",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "raw word list, one entry per line",
			},
			&cli.StringFlag{
				Name:    "dictionary",
				Aliases: []string{"d"},
				Value:   dictionary.DefaultName,
				Usage:   "stored dictionary to analyze when --file is not given",
			},
			&cli.StringFlag{
				Name:    "dictionary-dir",
				Value:   "dictionaries",
				Usage:   "directory of stored dictionaries",
				Sources: cli.EnvVars("DICTIONARY_DIR"),
			},
			&cli.StringFlag{
				Name:    "dictionary-db",
				Usage:   "SQLite dictionary database (overrides --dictionary-dir)",
				Sources: cli.EnvVars("DICTIONARY_DB"),
			},
			&cli.StringFlag{
				Name:    "board",
				Aliases: []string{"b"},
				Usage:   "board letters, row by row, to solve with the list",
			},
			&cli.IntFlag{
				Name:  "min-length",
				Value: engine.DefaultMinWordLength,
				Usage: "shortest word reported for --board and --permute",
			},
			&cli.StringFlag{
				Name:  "permute",
				Usage: "word whose letter arrangements are filtered into likely words",
			},
			&cli.StringFlag{
				Name:    "rules-dir",
				Usage:   "directory of candidate rule files (default <dictionary-dir>/rules)",
				Sources: cli.EnvVars("RULES_DIR"),
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "trace words concurrently for --board",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the report as JSON",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	source, lines, err := loadLines(cmd)
	if err != nil {
		return err
	}

	report := Report{
		Source: source,
		Stats:  dictionary.Analyze(lines),
	}

	if letters := cmd.String("board"); letters != "" {
		board, err := solveBoard(ctx, letters, dictionary.Normalize(lines), int(cmd.Int("min-length")), int(cmd.Int("workers")))
		if err != nil {
			return err
		}
		report.Board = board
	}

	if word := cmd.String("permute"); word != "" {
		candidates, err := permuteWord(cmd, word, dictionary.Normalize(lines))
		if err != nil {
			return err
		}
		report.Candidates = candidates
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(cmd.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	writeReport(cmd.Writer, &report)
	return nil
}

// loadLines returns the raw entries of --file, or the words of a stored dictionary
func loadLines(cmd *cli.Command) (string, []string, error) {
	if path := cmd.String("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", nil, err
		}
		defer f.Close()

		lines, err := dictionary.ReadWords(f)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", path, err)
		}
		return path, lines, nil
	}

	var persistence dictionary.Persistence
	if dbPath := cmd.String("dictionary-db"); dbPath != "" {
		db, err := dictionary.OpenSQLite(dbPath)
		if err != nil {
			return "", nil, err
		}
		defer db.Close()
		persistence = db
	} else {
		fp, err := dictionary.NewFilePersistence(cmd.String("dictionary-dir"))
		if err != nil {
			return "", nil, err
		}
		persistence = fp
	}

	name := cmd.String("dictionary")
	dict, err := dictionary.NewManagerWithPersistence(persistence).Get(name)
	if err != nil {
		return "", nil, err
	}
	return "dictionary " + name, dict.Words, nil
}

// solveBoard runs the search on a square board inferred from the letter count
func solveBoard(ctx context.Context, letters string, words []string, minLength, workers int) (*BoardReport, error) {
	size, err := inferBoardSize(letters)
	if err != nil {
		return nil, err
	}

	config := engine.DefaultSolverConfig()
	config.BoardSize = size
	config.MinWordLength = minLength
	config.Workers = workers

	e, err := engine.NewEngine(config, words)
	if err != nil {
		return nil, err
	}
	found, err := e.Solve(ctx, letters)
	if err != nil {
		return nil, err
	}

	board, err := engine.NewBoard(letters, size)
	if err != nil {
		return nil, err
	}

	return &BoardReport{
		Letters:       board.Letters(),
		Rows:          board.Rows(),
		MinWordLength: minLength,
		Words:         service.SortByLength(found),
	}, nil
}

// permuteWord lists the rule-passing arrangements of word and which of them the list lacks
func permuteWord(cmd *cli.Command, word string, words []string) (*CandidatesReport, error) {
	dir := cmd.String("rules-dir")
	if dir == "" {
		dir = filepath.Join(cmd.String("dictionary-dir"), "rules")
	}
	rules, err := dictionary.LoadRules(dir)
	if err != nil {
		return nil, err
	}

	minLength := int(cmd.Int("min-length"))
	candidates, err := dictionary.Candidates(word, minLength, rules)
	if err != nil {
		return nil, err
	}

	known := dictionary.New("list", words)
	fresh := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !known.Contains(c) {
			fresh = append(fresh, c)
		}
	}

	return &CandidatesReport{
		Word:       word,
		MinLength:  minLength,
		Candidates: candidates,
		New:        fresh,
	}, nil
}

// inferBoardSize returns n when letters holds exactly n*n runes
func inferBoardSize(letters string) (int, error) {
	count := utf8.RuneCountInString(letters)
	size := int(math.Round(math.Sqrt(float64(count))))
	if size < engine.MinBoardSize || size*size != count {
		return 0, fmt.Errorf("board of %d letters is not square", count)
	}
	return size, nil
}

func writeReport(out io.Writer, report *Report) {
	stats := report.Stats

	fmt.Fprintf(out, "=== %s ===\n", report.Source)
	fmt.Fprintf(out, "Entries:    %d\n", stats.Lines)
	fmt.Fprintf(out, "Words:      %d\n", stats.Accepted)
	fmt.Fprintf(out, "Rejected:   %d\n", stats.Rejected)
	fmt.Fprintf(out, "Duplicates: %d\n", stats.Duplicates)
	if stats.Longest != "" {
		fmt.Fprintf(out, "Longest:    %s (%d)\n", stats.Longest, utf8.RuneCountInString(stats.Longest))
	}

	lengths := make([]int, 0, len(stats.Lengths))
	for n := range stats.Lengths {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)

	if len(lengths) > 0 {
		fmt.Fprintf(out, "\nLength histogram:\n")
		for _, n := range lengths {
			fmt.Fprintf(out, "  %2d: %d\n", n, stats.Lengths[n])
		}
	}

	if report.Candidates != nil {
		c := report.Candidates
		fmt.Fprintf(out, "\nCandidates from %s (min length %d): %d, %d new\n",
			c.Word, c.MinLength, len(c.Candidates), len(c.New))
		for _, w := range service.SortByLength(c.New) {
			fmt.Fprintf(out, "  %s\n", w)
		}
	}

	if report.Board == nil {
		return
	}

	board := report.Board
	fmt.Fprintf(out, "\nBoard %s (min length %d):\n", board.Letters, board.MinWordLength)
	for _, row := range board.Rows {
		fmt.Fprintf(out, "  %s\n", strings.Join(strings.Split(row, ""), " "))
	}
	switch len(board.Words) {
	case 0:
		fmt.Fprintf(out, "No words were found.\n")
	default:
		fmt.Fprintf(out, "%d words were found:\n", len(board.Words))
		for _, w := range board.Words {
			fmt.Fprintf(out, "  %s\n", w)
		}
	}
}
