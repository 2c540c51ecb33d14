package algorithm

import (
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/utils/random"
	"iter"
)

const (
	// MaxRandomPrefix bounds the random candidates emitted before the wordlist pass.
	MaxRandomPrefix    = 50
	RandomCandidateLen = 6
)

// BruteForce models an exhaustive search: a bounded run of random fixed-length
// strings over a-z0-9, then a deterministic pass over the wordlist.
type BruteForce struct {
	seed        uint64
	prefixLimit int
}

// NewBruteForce clamps prefixLimit to [0, MaxRandomPrefix].
func NewBruteForce(seed uint64, prefixLimit int) *BruteForce {
	if prefixLimit < 0 {
		prefixLimit = 0
	}
	if prefixLimit > MaxRandomPrefix {
		prefixLimit = MaxRandomPrefix
	}
	return &BruteForce{seed: seed, prefixLimit: prefixLimit}
}

func (b *BruteForce) Generate(wordlist []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rng := random.New(b.seed)
		for i := 0; i < b.prefixLen(wordlist); i++ {
			if !yield(random.GenerateRandomString(rng, domain.CharsetExhaustive, RandomCandidateLen)) {
				return
			}
		}
		for _, word := range wordlist {
			if !yield(word) {
				return
			}
		}
	}
}

func (b *BruteForce) Size(wordlist []string) int {
	return b.prefixLen(wordlist) + len(wordlist)
}

func (b *BruteForce) Name() domain.Strategy {
	return domain.StrategyExhaustive
}

func (b *BruteForce) prefixLen(wordlist []string) int {
	return min(len(wordlist), b.prefixLimit)
}
