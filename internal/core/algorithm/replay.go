package algorithm

import (
	"attackSimBackend/internal/core/domain"
	"iter"
)

// Replay models credential stuffing: leaked values are tried verbatim.
type Replay struct{}

func NewReplay() *Replay {
	return &Replay{}
}

func (r *Replay) Generate(wordlist []string) iter.Seq[string] {
	return verbatim(wordlist)
}

func (r *Replay) Size(wordlist []string) int {
	return len(wordlist)
}

func (r *Replay) Name() domain.Strategy {
	return domain.StrategyReplayList
}
