// Package prompt provides the interactive terminal loops of the solver.
//
// WordHunt reads one board per line (row by row, board size squared letters)
// and prints the words found, shortest first. Anagram does the same for the
// words spelled from a line's letters. Both stop on "exit" or end of input.
package prompt
