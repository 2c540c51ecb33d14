package random

import (
	"math/rand/v2"
	"time"
)

// New returns a deterministic source for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seed returns a seed derived from the wall clock, for callers that did not pin one.
func Seed() uint64 {
	return uint64(time.Now().UnixNano())
}

func GenerateRandomString(r *rand.Rand, charset string, length int) string {
	if length <= 0 || len(charset) == 0 {
		return ""
	}

	result := make([]byte, length)
	for i := range result {
		result[i] = charset[r.IntN(len(charset))]
	}
	return string(result)
}

// Jitter returns a uniform duration in [0, max).
func Jitter(r *rand.Rand, max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(r.Int64N(int64(max)))
}
