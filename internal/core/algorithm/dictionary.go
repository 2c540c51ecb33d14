package algorithm

import (
	"attackSimBackend/internal/core/domain"
	"iter"
)

// Dictionary emits the wordlist unmodified, in insertion order.
type Dictionary struct{}

func NewDictionary() *Dictionary {
	return &Dictionary{}
}

func (d *Dictionary) Generate(wordlist []string) iter.Seq[string] {
	return verbatim(wordlist)
}

func (d *Dictionary) Size(wordlist []string) int {
	return len(wordlist)
}

func (d *Dictionary) Name() domain.Strategy {
	return domain.StrategyDictionary
}

func verbatim(wordlist []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, word := range wordlist {
			if !yield(word) {
				return
			}
		}
	}
}
