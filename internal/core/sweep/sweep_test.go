package sweep

import (
	"attackSimBackend/internal/adapter/memory"
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/core/service"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRequest(t *testing.T, strategy domain.Strategy) Request {
	t.Helper()
	attack, ok := domain.LookupAttack(strategy)
	require.True(t, ok)
	return Request{
		Target:   domain.Target{Username: "jane_smith", Secret: "admin2024"},
		Attack:   attack,
		Wordlist: memory.DefaultWordlist(),
		Pacing:   service.DefaultPacing(),
		Seed:     3,
		Workers:  3,
	}
}

func TestRun_DefaultMatrix(t *testing.T) {
	entries, err := Run(context.Background(), newRequest(t, domain.StrategyDictionary))
	require.NoError(t, err)

	wantScores := map[string]int{
		"No defenses":     100,
		"Rate Limiting":   85,
		"CAPTCHA":         100,
		"Account Lockout": 85,
		"2FA":             100,
		"IP Blocking":     100,
		"All defenses":    85,
	}

	matrix := DefaultMatrix(domain.HashBcrypt)
	require.Len(t, entries, len(matrix))
	for i, entry := range entries {
		assert.Equal(t, matrix[i], entry.Scenario, "entries keep scenario order")
		assert.Equal(t, domain.StatusSucceeded, entry.Result.Status, entry.Scenario.Name)
		assert.Equal(t, 21, entry.Result.TotalAttempts, entry.Scenario.Name)
		assert.Equal(t, wantScores[entry.Scenario.Name], entry.Result.RiskScore, entry.Scenario.Name)
		assert.NotEmpty(t, entry.Result.RunID)
	}

	assert.Equal(t, 4, entries[3].Result.Lockouts)
	assert.Greater(t, entries[6].Result.ElapsedSeconds, entries[0].Result.ElapsedSeconds)
}

func TestRun_IsolatedState(t *testing.T) {
	req := newRequest(t, domain.StrategyDictionary)
	req.Target.Secret = "not-in-the-list"
	req.Scenarios = []Scenario{
		{Name: "lockout a", Defenses: domain.DefenseConfig{AccountLockout: true}},
		{Name: "plain", Defenses: domain.DefenseConfig{}},
		{Name: "lockout b", Defenses: domain.DefenseConfig{AccountLockout: true}},
	}

	entries, err := Run(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, entries[0].Result.Lockouts, entries[2].Result.Lockouts)
	assert.Equal(t, 7, entries[0].Result.Lockouts)
	assert.Zero(t, entries[1].Result.Lockouts)
	for _, entry := range entries {
		assert.Equal(t, domain.StatusExhausted, entry.Result.Status)
		assert.Equal(t, 38, entry.Result.TotalAttempts)
	}
	assert.Equal(t, 15, entries[0].Result.RiskScore)
	assert.Equal(t, 20, entries[1].Result.RiskScore)
}

func TestRun_Rejects(t *testing.T) {
	req := newRequest(t, domain.StrategyDictionary)
	req.Wordlist = nil
	_, err := Run(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmptyWordlist)

	req = newRequest(t, domain.StrategyDictionary)
	req.Attack = domain.AttackType{ID: "rainbow"}
	_, err = Run(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNoStrategy)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := Run(ctx, newRequest(t, domain.StrategyHybrid))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, entries)
}
