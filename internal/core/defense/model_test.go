package defense

import (
	"attackSimBackend/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Evaluate(t *testing.T) {
	tests := []struct {
		name           string
		cfg            domain.DefenseConfig
		state          domain.RunState
		attempt        int
		wantMultiplier int
		wantExtra      time.Duration
		wantBlock      bool
		wantKinds      []domain.LogKind
	}{
		{
			name:           "no defenses",
			attempt:        10,
			wantMultiplier: 1,
		},
		{
			name:           "rate limiting off-cycle still triples baseline",
			cfg:            domain.DefenseConfig{RateLimiting: true},
			attempt:        3,
			wantMultiplier: 3,
		},
		{
			name:           "rate limiting every 10th",
			cfg:            domain.DefenseConfig{RateLimiting: true},
			attempt:        20,
			wantMultiplier: 3,
			wantExtra:      DefaultRateLimitPenalty,
			wantKinds:      []domain.LogKind{domain.LogWarning},
		},
		{
			name:           "captcha every 15th",
			cfg:            domain.DefenseConfig{Captcha: true},
			attempt:        15,
			wantMultiplier: 1,
			wantExtra:      DefaultCaptchaPenalty,
			wantKinds:      []domain.LogKind{domain.LogWarning},
		},
		{
			name:           "captcha off-cycle",
			cfg:            domain.DefenseConfig{Captcha: true},
			attempt:        10,
			wantMultiplier: 1,
		},
		{
			name:           "rate limit and captcha are additive",
			cfg:            domain.DefenseConfig{RateLimiting: true, Captcha: true},
			attempt:        30,
			wantMultiplier: 3,
			wantExtra:      DefaultRateLimitPenalty + DefaultCaptchaPenalty,
			wantKinds:      []domain.LogKind{domain.LogWarning, domain.LogWarning},
		},
		{
			name:           "lockout below threshold",
			cfg:            domain.DefenseConfig{AccountLockout: true},
			state:          domain.RunState{LockoutStrikes: 4},
			attempt:        5,
			wantMultiplier: 1,
		},
		{
			name:           "lockout at threshold blocks",
			cfg:            domain.DefenseConfig{AccountLockout: true},
			state:          domain.RunState{LockoutStrikes: 5},
			attempt:        6,
			wantMultiplier: 1,
			wantBlock:      true,
			wantKinds:      []domain.LogKind{domain.LogFailure},
		},
		{
			name:           "lockout disabled ignores streak",
			cfg:            domain.DefenseConfig{RateLimiting: false},
			state:          domain.RunState{LockoutStrikes: 50},
			attempt:        51,
			wantMultiplier: 1,
		},
		{
			name:           "2FA, IP blocking and hashing have no timing effect",
			cfg:            domain.DefenseConfig{TwoFactorAuth: true, IPBlocking: true, PasswordHashing: domain.HashArgon2},
			state:          domain.RunState{LockoutStrikes: 9},
			attempt:        30,
			wantMultiplier: 1,
		},
	}

	m := NewModel(Timings{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Evaluate(tt.cfg, tt.state, tt.attempt)

			assert.Equal(t, tt.wantMultiplier, got.BaselineMultiplier)
			assert.Equal(t, tt.wantExtra, got.ExtraDelay)
			assert.Equal(t, tt.wantBlock, got.ShouldBlock)
			assert.Equal(t, tt.wantBlock, got.ResetStreak)
			if tt.wantBlock {
				assert.Equal(t, DefaultLockoutPause, got.BlockPause)
			}

			var kinds []domain.LogKind
			for _, ev := range got.Events {
				kinds = append(kinds, ev.Kind)
				assert.NotEmpty(t, ev.Message)
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestModel_EvaluateIsPure(t *testing.T) {
	m := NewModel(Timings{})
	cfg := domain.DefenseConfig{RateLimiting: true, Captcha: true, AccountLockout: true}
	state := domain.RunState{AttemptsMade: 29, LockoutStrikes: 5}

	first := m.Evaluate(cfg, state, 30)
	second := m.Evaluate(cfg, state, 30)
	assert.Equal(t, first, second)
	assert.Equal(t, 5, state.LockoutStrikes)
}

func TestNewModel_CustomTimings(t *testing.T) {
	m := NewModel(Timings{RateLimitEvery: 2, LockoutThreshold: 1, LockoutPause: time.Second})
	timings := m.Timings()

	require.Equal(t, 2, timings.RateLimitEvery)
	assert.Equal(t, 1, timings.LockoutThreshold)
	assert.Equal(t, time.Second, timings.LockoutPause)
	assert.Equal(t, DefaultCaptchaEvery, timings.CaptchaEvery)

	got := m.Evaluate(domain.DefenseConfig{AccountLockout: true, RateLimiting: true}, domain.RunState{LockoutStrikes: 1}, 4)
	assert.True(t, got.ShouldBlock)
	assert.Equal(t, DefaultRateLimitPenalty, got.ExtraDelay)
}
