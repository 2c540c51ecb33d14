package algorithm

import (
	"attackSimBackend/internal/core/domain"
	"iter"
)

// Generator produces the candidate stream for one strategy.
// Generate returns a lazy, finite sequence that can be ranged more than once
// and yields the same candidates each time.
type Generator interface {
	Generate(wordlist []string) iter.Seq[string]
	Size(wordlist []string) int
	Name() domain.Strategy
}
