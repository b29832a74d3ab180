package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/word-hunt-solver/game/service"
)

// ExitCommand ends a prompt loop
const ExitCommand = "exit"

// Solver is the part of service.SolverService the prompts need
type Solver interface {
	Solve(ctx context.Context, req service.SolveRequest) (*service.SolveResult, error)
	Anagrams(ctx context.Context, req service.AnagramRequest) (*service.AnagramResult, error)
}

// WordHunt asks for boards and prints the words found on each
type WordHunt struct {
	solver    Solver
	boardSize int
	template  service.SolveRequest
}

// NewWordHunt creates a board prompt. Every query copies template and sets
// its letters; lines that are not boardSize x boardSize letters long are skipped.
func NewWordHunt(solver Solver, boardSize int, template service.SolveRequest) *WordHunt {
	template.BoardSize = boardSize
	return &WordHunt{
		solver:    solver,
		boardSize: boardSize,
		template:  template,
	}
}

// Run reads boards from in until "exit" or EOF
func (p *WordHunt) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	return loop(ctx, in, out, "Enter text to word hunt (or 'exit' to exit): ", func(input string) error {
		if utf8.RuneCountInString(input) != p.boardSize*p.boardSize {
			return nil
		}

		req := p.template
		req.Letters = input
		result, err := p.solver.Solve(ctx, req)
		if err != nil {
			return err
		}

		printResults(out, input, "word", result.Sorted)
		return nil
	})
}

// Anagram asks for text and prints the words spelled from its letters
type Anagram struct {
	solver   Solver
	template service.AnagramRequest
}

// NewAnagram creates an anagram prompt
func NewAnagram(solver Solver, template service.AnagramRequest) *Anagram {
	return &Anagram{solver: solver, template: template}
}

// Run reads text from in until "exit" or EOF
func (p *Anagram) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	return loop(ctx, in, out, "Enter text to anagram (or 'exit' to exit): ", func(input string) error {
		req := p.template
		req.Text = input
		result, err := p.solver.Anagrams(ctx, req)
		if err != nil {
			return err
		}

		printResults(out, input, "anagram", result.Sorted)
		return nil
	})
}

// loop prompts, reads one line and hands it to handle. A handler error is
// printed and the loop continues; only read errors and cancellation end it early.
func loop(ctx context.Context, in io.Reader, out io.Writer, prompt string, handle func(string) error) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		input := strings.TrimRight(scanner.Text(), "\r")
		if input == ExitCommand {
			return nil
		}

		if err := handle(input); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Debug().Err(err).Str("input", input).Msg("prompt query failed")
			fmt.Fprintf(out, "Error: %v\n\n", err)
		}
	}
}

// printResults writes the found words one per line, in the order given
func printResults(out io.Writer, input, noun string, words []string) {
	switch len(words) {
	case 0:
		fmt.Fprintf(out, "No %ss were found for '%s'.\n", noun, input)
	case 1:
		fmt.Fprintf(out, "One %s of '%s' was found:\n", noun, input)
		fmt.Fprintln(out, words[0])
	default:
		fmt.Fprintf(out, "%d %ss of '%s' were found:\n", len(words), noun, input)
		fmt.Fprintln(out, strings.Join(words, "\n"))
	}
	fmt.Fprintln(out)
}
