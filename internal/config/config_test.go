package config

import (
	"attackSimBackend/internal/core/defense"
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/core/service"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefault_MatchesPackageDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	if diff := cmp.Diff(service.DefaultPacing(), cfg.Pacing.ToPacing()); diff != "" {
		t.Errorf("pacing mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(defense.DefaultTimings(), cfg.DefenseTiming.ToTimings()); diff != "" {
		t.Errorf("timings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			content: `
seed: 42
defenses:
  rate_limiting: true
  account_lockout: true
  password_hashing: argon2
pacing:
  base_delay_ms: 10
  max_lockouts: 3
hybrid:
  rules: [reverse, append_year]
targets:
  - id: "9"
    username: ops
    secret: hunter2
    active: true
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `
seed = 42

[defenses]
rate_limiting = true
account_lockout = true
password_hashing = "argon2"

[pacing]
base_delay_ms = 10
max_lockouts = 3

[hybrid]
rules = ["reverse", "append_year"]

[[targets]]
id = "9"
username = "ops"
secret = "hunter2"
active = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, uint64(42), cfg.Seed)
			assert.Equal(t, domain.DefenseConfig{
				RateLimiting:    true,
				AccountLockout:  true,
				PasswordHashing: domain.HashArgon2,
			}, cfg.Defenses)
			assert.Equal(t, 10*time.Millisecond, cfg.Pacing.ToPacing().BaseDelay)
			assert.Equal(t, 3, cfg.Pacing.MaxLockouts)
			// untouched keys keep their defaults
			assert.Equal(t, Default().Pacing.JitterMS, cfg.Pacing.JitterMS)
			assert.Equal(t, Default().DefenseTiming, cfg.DefenseTiming)
			assert.Equal(t, []string{"reverse", "append_year"}, cfg.Hybrid.Rules)
			require.Len(t, cfg.Targets, 1)
			assert.Equal(t, domain.TargetAccount{ID: "9", Username: "ops", Secret: "hunter2", IsActive: true}, cfg.Targets[0])
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed", content: "pacing: [unterminated"},
		{name: "unknown hashing", content: "defenses:\n  password_hashing: md5\n"},
		{name: "negative delay", content: "pacing:\n  base_delay_ms: -1\n"},
		{name: "zero trace interval", content: "pacing:\n  trace_every: 0\n"},
		{name: "prefix above cap", content: "pacing:\n  prefix_limit: 51\n"},
		{name: "unknown mutation rule", content: "hybrid:\n  rules: [rot13]\n"},
		{name: "bad log level", content: "logging:\n  level: loud\n"},
		{name: "no workers", content: "sweep:\n  workers: 0\n"},
		{name: "duplicate target", content: "targets:\n  - {id: a, username: x}\n  - {id: a, username: y}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := Default()
			want.Seed = 7
			want.Defenses.Captcha = true
			want.Report.Path = "/tmp/report.json"

			require.NoError(t, Save(&want, path))
			got, err := Load(path)
			require.NoError(t, err)
			if diff := cmp.Diff(want, *got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_UnknownFormat(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, Decode([]byte("x"), "ini", &cfg), domain.ErrInvalidInput)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	logger, err = NewLogger(LoggingConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger(LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defenses:\n  captcha: false\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan *Config, 1)
	stopped := make(chan error, 1)
	go func() {
		stopped <- Watch(ctx, path, zap.NewNop(), func(cfg *Config) {
			select {
			case changes <- cfg:
			default:
			}
		})
	}()

	// the watcher may not be registered yet; keep rewriting until a reload lands
	deadline := time.After(5 * time.Second)
	var got *Config
	for got == nil {
		require.NoError(t, os.WriteFile(path, []byte("defenses:\n  captcha: true\n  two_factor_auth: true\n"), 0644))
		select {
		case got = <-changes:
		case <-time.After(250 * time.Millisecond):
		case <-deadline:
			t.Fatal("config change was never delivered")
		}
	}
	assert.True(t, got.Defenses.Captcha)
	assert.True(t, got.Defenses.TwoFactorAuth)

	cancel()
	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
