package algorithm

import (
	"attackSimBackend/internal/core/domain"
	"fmt"
)

// Options carries the per-run inputs a generator may need.
type Options struct {
	Seed        uint64
	PrefixLimit int
}

// New builds the generator for the given attack.
func New(attack domain.AttackType, opts Options) (Generator, error) {
	switch attack.ID {
	case domain.StrategyExhaustive:
		return NewBruteForce(opts.Seed, opts.PrefixLimit), nil
	case domain.StrategyDictionary:
		return NewDictionary(), nil
	case domain.StrategyHybrid:
		return NewHybrid(attack.MutationRules)
	case domain.StrategyReplayList:
		return NewReplay(), nil
	case domain.StrategyTimingProbe:
		return NewTimingProbe(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrNoStrategy, attack.ID)
	}
}
