// Package config loads simulator settings from YAML or TOML.
package config

import (
	"attackSimBackend/internal/core/algorithm"
	"attackSimBackend/internal/core/defense"
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/core/service"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Seed pins the random source of every run. 0 draws a fresh seed per run.
	Seed          uint64                 `yaml:"seed" toml:"seed"`
	Defenses      domain.DefenseConfig   `yaml:"defenses" toml:"defenses"`
	Pacing        PacingConfig           `yaml:"pacing" toml:"pacing"`
	DefenseTiming DefenseTimingConfig    `yaml:"defense_timing" toml:"defense_timing"`
	Hybrid        HybridConfig           `yaml:"hybrid" toml:"hybrid"`
	Wordlist      WordlistConfig         `yaml:"wordlist" toml:"wordlist"`
	Targets       []domain.TargetAccount `yaml:"targets,omitempty" toml:"targets,omitempty"`
	Logging       LoggingConfig          `yaml:"logging" toml:"logging"`
	Report        ReportConfig           `yaml:"report" toml:"report"`
	Sweep         SweepConfig            `yaml:"sweep" toml:"sweep"`
}

type PacingConfig struct {
	BaseDelayMS  int `yaml:"base_delay_ms" toml:"base_delay_ms"`
	JitterMS     int `yaml:"jitter_ms" toml:"jitter_ms"`
	PhasePauseMS int `yaml:"phase_pause_ms" toml:"phase_pause_ms"`
	TraceFirst   int `yaml:"trace_first" toml:"trace_first"`
	TraceEvery   int `yaml:"trace_every" toml:"trace_every"`
	MaxLockouts  int `yaml:"max_lockouts" toml:"max_lockouts"`
	PrefixLimit  int `yaml:"prefix_limit" toml:"prefix_limit"`
}

type DefenseTimingConfig struct {
	RateLimitEvery      int `yaml:"rate_limit_every" toml:"rate_limit_every"`
	RateLimitPenaltyMS  int `yaml:"rate_limit_penalty_ms" toml:"rate_limit_penalty_ms"`
	RateLimitMultiplier int `yaml:"rate_limit_multiplier" toml:"rate_limit_multiplier"`
	CaptchaEvery        int `yaml:"captcha_every" toml:"captcha_every"`
	CaptchaPenaltyMS    int `yaml:"captcha_penalty_ms" toml:"captcha_penalty_ms"`
	LockoutThreshold    int `yaml:"lockout_threshold" toml:"lockout_threshold"`
	LockoutPauseMS      int `yaml:"lockout_pause_ms" toml:"lockout_pause_ms"`
}

type HybridConfig struct {
	// Rules replaces the default mutation set when non-empty.
	Rules []string `yaml:"rules" toml:"rules"`
}

type WordlistConfig struct {
	// Path to a TXT or CSV wordlist. Empty uses the built-in list.
	Path string `yaml:"path" toml:"path"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" toml:"level"`
	Development bool   `yaml:"development" toml:"development"`
}

type ReportConfig struct {
	Path string `yaml:"path" toml:"path"`
}

type SweepConfig struct {
	Workers int `yaml:"workers" toml:"workers"`
}

func Default() Config {
	p := service.DefaultPacing()
	t := defense.DefaultTimings()
	return Config{
		Defenses: domain.DefenseConfig{PasswordHashing: domain.HashBcrypt},
		Pacing: PacingConfig{
			BaseDelayMS:  int(p.BaseDelay.Milliseconds()),
			JitterMS:     int(p.Jitter.Milliseconds()),
			PhasePauseMS: int(p.PhasePause.Milliseconds()),
			TraceFirst:   p.TraceFirst,
			TraceEvery:   p.TraceEvery,
			MaxLockouts:  p.MaxLockouts,
			PrefixLimit:  p.PrefixLimit,
		},
		DefenseTiming: DefenseTimingConfig{
			RateLimitEvery:      t.RateLimitEvery,
			RateLimitPenaltyMS:  int(t.RateLimitPenalty.Milliseconds()),
			RateLimitMultiplier: t.RateLimitMultiplier,
			CaptchaEvery:        t.CaptchaEvery,
			CaptchaPenaltyMS:    int(t.CaptchaPenalty.Milliseconds()),
			LockoutThreshold:    t.LockoutThreshold,
			LockoutPauseMS:      int(t.LockoutPause.Milliseconds()),
		},
		Logging: LoggingConfig{Level: "info"},
		Sweep:   SweepConfig{Workers: 4},
	}
}

// DefaultConfigPath returns ~/.attacksim/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "attacksim.yaml"
	}
	return filepath.Join(home, ".attacksim", "config.yaml")
}

// Load reads path over the defaults. A missing file yields the defaults. The
// format follows the extension: .toml is TOML, anything else YAML.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Decode(data, FormatOf(path), &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Decode unmarshals data in the given format ("yaml" or "toml") into cfg.
// Fields absent from data keep their current values.
func Decode(data []byte, format string, cfg *Config) error {
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	case "yaml":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return fmt.Errorf("%w: unsupported config format %q", domain.ErrInvalidInput, format)
	}
	return nil
}

// Encode renders cfg in the given format.
func Encode(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "toml":
		return toml.Marshal(cfg)
	case "yaml":
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", domain.ErrInvalidInput, format)
	}
}

// Save writes cfg to path, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Encode(cfg, FormatOf(path))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	content := "# Credential attack simulator configuration\n" + string(data)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	if path == "" {
		path = DefaultConfigPath()
	}
	_, err := os.Stat(path)
	return err == nil
}

// FormatOf maps a config path to "toml" or "yaml" by extension.
func FormatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
	}

	if h := c.Defenses.PasswordHashing; h != "" && !h.Valid() {
		return invalid("unknown password hashing %q", h)
	}

	p := c.Pacing
	if p.BaseDelayMS < 0 || p.JitterMS < 0 || p.PhasePauseMS < 0 {
		return invalid("pacing delays must not be negative")
	}
	if p.TraceFirst < 0 || p.TraceEvery < 1 {
		return invalid("trace_first must be >= 0 and trace_every >= 1")
	}
	if p.MaxLockouts < 0 {
		return invalid("max_lockouts must not be negative")
	}
	if p.PrefixLimit < 0 || p.PrefixLimit > algorithm.MaxRandomPrefix {
		return invalid("prefix_limit must be within [0, %d]", algorithm.MaxRandomPrefix)
	}

	t := c.DefenseTiming
	if t.RateLimitEvery < 1 || t.CaptchaEvery < 1 || t.LockoutThreshold < 1 || t.RateLimitMultiplier < 1 {
		return invalid("defense_timing intervals, threshold and multiplier must be >= 1")
	}
	if t.RateLimitPenaltyMS < 0 || t.CaptchaPenaltyMS < 0 || t.LockoutPauseMS < 0 {
		return invalid("defense_timing penalties must not be negative")
	}

	if len(c.Hybrid.Rules) > 0 {
		if _, err := algorithm.NewHybrid(c.Hybrid.Rules); err != nil {
			return err
		}
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging level %q", c.Logging.Level)
	}
	if c.Sweep.Workers < 1 {
		return invalid("sweep workers must be >= 1")
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, account := range c.Targets {
		if account.ID == "" || account.Username == "" {
			return invalid("targets need an id and a username")
		}
		if seen[account.ID] {
			return invalid("duplicate target id %q", account.ID)
		}
		seen[account.ID] = true
	}
	return nil
}

func (p PacingConfig) ToPacing() service.Pacing {
	return service.Pacing{
		BaseDelay:   ms(p.BaseDelayMS),
		Jitter:      ms(p.JitterMS),
		PhasePause:  ms(p.PhasePauseMS),
		TraceFirst:  p.TraceFirst,
		TraceEvery:  p.TraceEvery,
		MaxLockouts: p.MaxLockouts,
		PrefixLimit: p.PrefixLimit,
	}
}

func (t DefenseTimingConfig) ToTimings() defense.Timings {
	return defense.Timings{
		RateLimitEvery:      t.RateLimitEvery,
		RateLimitPenalty:    ms(t.RateLimitPenaltyMS),
		RateLimitMultiplier: t.RateLimitMultiplier,
		CaptchaEvery:        t.CaptchaEvery,
		CaptchaPenalty:      ms(t.CaptchaPenaltyMS),
		LockoutThreshold:    t.LockoutThreshold,
		LockoutPause:        ms(t.LockoutPauseMS),
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
