// Package defense evaluates toggled defensive controls against a run's progress.
package defense

import (
	"attackSimBackend/internal/core/domain"
	"fmt"
	"time"
)

const (
	DefaultRateLimitEvery      = 10
	DefaultRateLimitPenalty    = 1500 * time.Millisecond
	DefaultRateLimitMultiplier = 3
	DefaultCaptchaEvery        = 15
	DefaultCaptchaPenalty      = 700 * time.Millisecond
	DefaultLockoutThreshold    = 5
	DefaultLockoutPause        = 3 * time.Second
)

// Timings parameterizes the model. Zero fields fall back to the defaults.
type Timings struct {
	RateLimitEvery      int
	RateLimitPenalty    time.Duration
	RateLimitMultiplier int
	CaptchaEvery        int
	CaptchaPenalty      time.Duration
	LockoutThreshold    int
	LockoutPause        time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		RateLimitEvery:      DefaultRateLimitEvery,
		RateLimitPenalty:    DefaultRateLimitPenalty,
		RateLimitMultiplier: DefaultRateLimitMultiplier,
		CaptchaEvery:        DefaultCaptchaEvery,
		CaptchaPenalty:      DefaultCaptchaPenalty,
		LockoutThreshold:    DefaultLockoutThreshold,
		LockoutPause:        DefaultLockoutPause,
	}
}

// Model is stateless. Every counter it reads lives in domain.RunState.
type Model struct {
	timings Timings
}

func NewModel(t Timings) Model {
	d := DefaultTimings()
	if t.RateLimitEvery <= 0 {
		t.RateLimitEvery = d.RateLimitEvery
	}
	if t.RateLimitPenalty <= 0 {
		t.RateLimitPenalty = d.RateLimitPenalty
	}
	if t.RateLimitMultiplier < 1 {
		t.RateLimitMultiplier = d.RateLimitMultiplier
	}
	if t.CaptchaEvery <= 0 {
		t.CaptchaEvery = d.CaptchaEvery
	}
	if t.CaptchaPenalty <= 0 {
		t.CaptchaPenalty = d.CaptchaPenalty
	}
	if t.LockoutThreshold <= 0 {
		t.LockoutThreshold = d.LockoutThreshold
	}
	if t.LockoutPause <= 0 {
		t.LockoutPause = d.LockoutPause
	}
	return Model{timings: t}
}

func (m Model) Timings() Timings {
	return m.timings
}

// Evaluate decides how attempt (1-based) is treated before its comparison.
// Rules are independent and additive. TwoFactorAuth and IPBlocking never
// alter timing; PasswordHashing is ignored.
func (m Model) Evaluate(cfg domain.DefenseConfig, state domain.RunState, attempt int) domain.DefenseDecision {
	decision := domain.DefenseDecision{BaselineMultiplier: 1}

	if cfg.AccountLockout && state.LockoutStrikes >= m.timings.LockoutThreshold {
		decision.ShouldBlock = true
		decision.BlockPause = m.timings.LockoutPause
		decision.ResetStreak = true
		decision.Events = append(decision.Events, domain.EventDraft{
			Kind: domain.LogFailure,
			Message: fmt.Sprintf("Account locked after %d consecutive failures. Waiting %s before attempt %d...",
				state.LockoutStrikes, m.timings.LockoutPause, attempt),
		})
	}

	if cfg.RateLimiting {
		decision.BaselineMultiplier = m.timings.RateLimitMultiplier
		if attempt%m.timings.RateLimitEvery == 0 {
			decision.ExtraDelay += m.timings.RateLimitPenalty
			decision.Events = append(decision.Events, domain.EventDraft{
				Kind: domain.LogWarning,
				Message: fmt.Sprintf("Rate limit hit at attempt %d. Throttled for %s",
					attempt, m.timings.RateLimitPenalty),
			})
		}
	}

	if cfg.Captcha && attempt%m.timings.CaptchaEvery == 0 {
		decision.ExtraDelay += m.timings.CaptchaPenalty
		decision.Events = append(decision.Events, domain.EventDraft{
			Kind: domain.LogWarning,
			Message: fmt.Sprintf("CAPTCHA challenge at attempt %d. Simulated bypass took %s",
				attempt, m.timings.CaptchaPenalty),
		})
	}

	return decision
}
