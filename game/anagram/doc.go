// Package anagram finds the words that can be spelled from a bag of letters.
//
// An Inventory counts the 26 letters of the English alphabet. A Solver
// precomputes one Inventory per dictionary word and, for a query text,
// returns every word whose letters all fit within the text's inventory.
// Words do not have to use every letter:
//
//	solver := anagram.NewSolver(words, 3)
//	solver.Find("stone") // [eon net nose not one onset ...]
package anagram
