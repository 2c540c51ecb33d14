package cli

import (
	"attackSimBackend/internal/core/domain"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\nseed: 9\n"), 0644))
	return executeWithConfig(t, cfgPath, args...)
}

func executeWithConfig(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "attacksim v"+Version)
}

func TestStrategiesAndTargets(t *testing.T) {
	out, err := execute(t, "strategies")
	require.NoError(t, err)
	for _, a := range domain.AttackTypes() {
		assert.Contains(t, out, string(a.ID))
	}

	out, err = execute(t, "targets")
	require.NoError(t, err)
	assert.Contains(t, out, "jane_smith")
	assert.NotContains(t, out, "admin2024")
}

func TestRun_Instant(t *testing.T) {
	report := filepath.Join(t.TempDir(), "report.json")
	out, err := execute(t, "run", "--instant", "--target", "2", "--strategy", "dictionary", "--report", report)
	require.NoError(t, err)

	assert.Contains(t, out, `PASSWORD FOUND: "admin2024" for user jane_smith`)
	assert.Contains(t, out, "SUCCEEDED")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"results"`)
	assert.Contains(t, string(data), `"metrics"`)
	assert.Contains(t, string(data), `"foundValue": "admin2024"`)
}

func TestRun_DefenseFlagsAndRepeat(t *testing.T) {
	wordlist := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(wordlist, []byte("alpha,bravo\ncharlie\n"), 0644))

	out, err := execute(t, "run", "--instant", "-t", "1", "-w", wordlist, "--2fa", "--captcha", "--repeat", "2")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Simulation Results"))
	assert.Contains(t, out, "Active defenses: CAPTCHA, 2FA")
	assert.Contains(t, out, "Wordlist loaded: 3 entries")
	assert.Contains(t, out, "EXHAUSTED")
	assert.Contains(t, out, "5/100 (low)")
}

func TestRun_Rejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "inactive target", args: []string{"run", "--instant", "-t", "5"}, want: domain.ErrNoTarget},
		{name: "no target", args: []string{"run", "--instant"}, want: domain.ErrNoTarget},
		{name: "unknown strategy", args: []string{"run", "--instant", "-t", "2", "-s", "rainbow"}, want: domain.ErrNoStrategy},
		{name: "bad hashing", args: []string{"run", "--instant", "-t", "2", "--hashing", "md5"}, want: domain.ErrInvalidInput},
		{name: "bad repeat", args: []string{"run", "--instant", "-t", "2", "--repeat", "0"}, want: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSweep(t *testing.T) {
	out, err := execute(t, "sweep", "-t", "2", "--workers", "2", "--hashing", "argon2")
	require.NoError(t, err)

	assert.Contains(t, out, "Dictionary Attack vs jane_smith (argon2)")
	for _, name := range []string{"No defenses", "Rate Limiting", "Account Lockout", "All defenses"} {
		assert.Contains(t, out, name)
	}

	_, err = execute(t, "sweep", "-t", "42")
	assert.ErrorIs(t, err, domain.ErrNoTarget)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "attacksim.toml")

	out, err := executeWithConfig(t, path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	out, err = executeWithConfig(t, path, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "exists: true")
	assert.Contains(t, out, "[pacing]")
	assert.Contains(t, out, "base_delay_ms = 50")
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sweep:\n  workers: 0\n"), 0644))

	_, err := executeWithConfig(t, path, "version")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
