package algorithm

import (
	"attackSimBackend/internal/core/domain"
	"iter"
)

// TimingProbe emits the wordlist verbatim. Latency telemetry is attached by
// the runner, not here.
type TimingProbe struct{}

func NewTimingProbe() *TimingProbe {
	return &TimingProbe{}
}

func (t *TimingProbe) Generate(wordlist []string) iter.Seq[string] {
	return verbatim(wordlist)
}

func (t *TimingProbe) Size(wordlist []string) int {
	return len(wordlist)
}

func (t *TimingProbe) Name() domain.Strategy {
	return domain.StrategyTimingProbe
}
