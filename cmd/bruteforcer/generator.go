package main

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// letterWeights approximates English letter frequency, per mille
var letterWeights = [26]int{
	82, 15, 28, 43, 127, 22, 20, 61, 70, 2, 8, 40, 24,
	67, 75, 19, 1, 60, 63, 91, 28, 10, 24, 2, 20, 1,
}

// BoardGenerator draws random boards with English-like letter frequencies.
// It is safe for concurrent use.
type BoardGenerator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	total int
}

// NewBoardGenerator creates a generator; equal seeds give equal board sequences
func NewBoardGenerator(seed uint64) *BoardGenerator {
	total := 0
	for _, w := range letterWeights {
		total += w
	}
	return &BoardGenerator{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		total: total,
	}
}

// Next returns size*size random lowercase letters
func (g *BoardGenerator) Next(size int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder
	sb.Grow(size * size)
	for i := 0; i < size*size; i++ {
		sb.WriteByte(g.letter())
	}
	return sb.String()
}

func (g *BoardGenerator) letter() byte {
	n := g.rng.IntN(g.total)
	for i, w := range letterWeights {
		if n < w {
			return byte('a' + i)
		}
		n -= w
	}
	return 'e'
}
