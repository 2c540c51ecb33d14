// Package sweep compares one attack across several defense configurations.
// Every scenario is an isolated run with its own state and virtual clock.
package sweep

import (
	"attackSimBackend/internal/core/defense"
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/core/service"
	"attackSimBackend/internal/pkg/concurrency"
	"attackSimBackend/internal/pkg/schedule"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Scenario names one defense configuration.
type Scenario struct {
	Name     string               `json:"name" yaml:"name"`
	Defenses domain.DefenseConfig `json:"defenses" yaml:"defenses"`
}

type Entry struct {
	Scenario Scenario         `json:"scenario"`
	Result   domain.RunResult `json:"result"`
}

type Request struct {
	Target   domain.Target
	Attack   domain.AttackType
	Wordlist []string
	// Scenarios defaults to DefaultMatrix.
	Scenarios []Scenario
	Pacing    service.Pacing
	Timings   defense.Timings
	// Seed is shared by every scenario so that only the defenses differ.
	Seed    uint64
	Workers int
	Logger  *zap.Logger
}

// DefaultMatrix is no defenses, each toggle alone, then everything on.
// Hashing stays at the given algorithm throughout.
func DefaultMatrix(hashing domain.HashAlgorithm) []Scenario {
	return []Scenario{
		{Name: "No defenses", Defenses: domain.DefenseConfig{PasswordHashing: hashing}},
		{Name: "Rate Limiting", Defenses: domain.DefenseConfig{RateLimiting: true, PasswordHashing: hashing}},
		{Name: "CAPTCHA", Defenses: domain.DefenseConfig{Captcha: true, PasswordHashing: hashing}},
		{Name: "Account Lockout", Defenses: domain.DefenseConfig{AccountLockout: true, PasswordHashing: hashing}},
		{Name: "2FA", Defenses: domain.DefenseConfig{TwoFactorAuth: true, PasswordHashing: hashing}},
		{Name: "IP Blocking", Defenses: domain.DefenseConfig{IPBlocking: true, PasswordHashing: hashing}},
		{Name: "All defenses", Defenses: domain.DefenseConfig{
			RateLimiting:    true,
			Captcha:         true,
			AccountLockout:  true,
			TwoFactorAuth:   true,
			IPBlocking:      true,
			PasswordHashing: hashing,
		}},
	}
}

// Run executes every scenario and returns the entries in scenario order.
// Cancelling ctx cancels the remaining runs and returns ctx.Err().
func Run(ctx context.Context, req Request) ([]Entry, error) {
	if len(req.Wordlist) == 0 {
		return nil, domain.ErrEmptyWordlist
	}
	if req.Scenarios == nil {
		req.Scenarios = DefaultMatrix(domain.HashBcrypt)
	}
	if req.Logger == nil {
		req.Logger = zap.NewNop()
	}
	model := defense.NewModel(req.Timings)
	jobID := uuid.NewString()

	pool := concurrency.NewWorkerPool(req.Workers, len(req.Scenarios))
	pool.Start(ctx)

	// Runners are built up front so configuration errors surface before any run starts.
	runners := make([]*service.Runner, len(req.Scenarios))
	for i, sc := range req.Scenarios {
		runner, err := service.NewRunner(service.RunRequest{
			ID:       uuid.NewString(),
			Target:   req.Target,
			Attack:   req.Attack,
			Wordlist: req.Wordlist,
			Defenses: sc.Defenses,
			Seed:     req.Seed,
		}, service.RunnerConfig{
			Scheduler: schedule.NewVirtual(time.Now()),
			Model:     &model,
			Pacing:    req.Pacing,
			Logger:    req.Logger.With(zap.String("scenario", sc.Name)),
		})
		if err != nil {
			pool.Stop()
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		runners[i] = runner
	}

	entries := make([]Entry, len(req.Scenarios))
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer pool.Stop()
		for i, runner := range runners {
			pool.Submit(concurrency.Task{
				ID:       strconv.Itoa(i),
				JobID:    jobID,
				Function: runner.Run,
			})
		}
		return nil
	})

	g.Go(func() error {
		for res := range pool.Results() {
			if res.Error != nil {
				return fmt.Errorf("scenario %s: %w", res.TaskID, res.Error)
			}
			i, err := strconv.Atoi(res.TaskID)
			if err != nil {
				return fmt.Errorf("unexpected task id %q: %w", res.TaskID, err)
			}
			entries[i] = Entry{Scenario: req.Scenarios[i], Result: res.Value}
		}
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := pool.GetMetrics()
	req.Logger.Info("Sweep finished",
		zap.String("job", jobID),
		zap.Int("scenarios", len(entries)),
		zap.Int64("completed", stats.CompletedTasks),
		zap.Duration("avgLatency", stats.AverageLatency))
	return entries, nil
}
