package service

import (
	"attackSimBackend/internal/core/algorithm"
	"attackSimBackend/internal/core/defense"
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/core/scoring"
	"attackSimBackend/internal/pkg/schedule"
	"attackSimBackend/internal/port"
	"attackSimBackend/internal/utils/random"
	"context"
	"crypto/subtle"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseDelay  = 50 * time.Millisecond
	DefaultJitter     = 100 * time.Millisecond
	DefaultPhasePause = 800 * time.Millisecond
	DefaultTraceFirst = 3
	DefaultTraceEvery = 8

	probeBaseLatency   = 80 * time.Millisecond
	probePerCharacter  = 3 * time.Millisecond
	probeLatencyJitter = 20 * time.Millisecond
)

// Pacing controls the synthetic timing and log volume of a run.
type Pacing struct {
	BaseDelay  time.Duration
	Jitter     time.Duration
	PhasePause time.Duration
	TraceFirst int
	TraceEvery int
	// MaxLockouts ends the run as Blocked once reached. 0 disables.
	MaxLockouts int
	PrefixLimit int
}

func DefaultPacing() Pacing {
	return Pacing{
		BaseDelay:   DefaultBaseDelay,
		Jitter:      DefaultJitter,
		PhasePause:  DefaultPhasePause,
		TraceFirst:  DefaultTraceFirst,
		TraceEvery:  DefaultTraceEvery,
		PrefixLimit: algorithm.MaxRandomPrefix,
	}
}

type RunRequest struct {
	ID       string
	Target   domain.Target
	Attack   domain.AttackType
	Wordlist []string
	Defenses domain.DefenseConfig
	Seed     uint64
}

type RunnerConfig struct {
	Scheduler port.Scheduler
	// Model defaults to defense.NewModel(defense.Timings{}) when nil.
	Model  *defense.Model
	Pacing Pacing
	Logger *zap.Logger
	// Events defaults to a fresh log on the scheduler's clock when nil.
	Events *EventLog
}

// Runner executes exactly one simulated attack. It owns the run's state;
// nothing outside the runner mutates it.
type Runner struct {
	req       RunRequest
	gen       algorithm.Generator
	total     int
	model     defense.Model
	pacing    Pacing
	scheduler port.Scheduler
	events    *EventLog
	logger    *zap.Logger
	rng       *rand.Rand

	mu     sync.RWMutex
	status domain.RunStatus
	state  domain.RunState
	found  string
}

func NewRunner(req RunRequest, cfg RunnerConfig) (*Runner, error) {
	if len(req.Wordlist) == 0 {
		return nil, domain.ErrEmptyWordlist
	}

	gen, err := algorithm.New(req.Attack, algorithm.Options{Seed: req.Seed, PrefixLimit: cfg.Pacing.PrefixLimit})
	if err != nil {
		return nil, err
	}

	if cfg.Scheduler == nil {
		cfg.Scheduler = schedule.NewReal()
	}
	model := defense.NewModel(defense.Timings{})
	if cfg.Model != nil {
		model = *cfg.Model
	}
	if cfg.Pacing.TraceEvery <= 0 {
		cfg.Pacing.TraceEvery = DefaultTraceEvery
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Events == nil {
		cfg.Events = NewEventLog(cfg.Scheduler.Now)
	}

	req.Wordlist = slices.Clone(req.Wordlist)

	return &Runner{
		req:       req,
		gen:       gen,
		total:     gen.Size(req.Wordlist),
		model:     model,
		pacing:    cfg.Pacing,
		scheduler: cfg.Scheduler,
		events:    cfg.Events,
		logger:    cfg.Logger.With(zap.String("run", req.ID), zap.String("strategy", string(req.Attack.ID))),
		rng:       random.New(req.Seed),
		status:    domain.StatusIdle,
	}, nil
}

func (r *Runner) Status() domain.RunStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// State returns a copy of the run's counters.
func (r *Runner) State() domain.RunState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Runner) Events() *EventLog {
	return r.events
}

// Run drives the run to a terminal state and returns its result. It may be
// called once; later calls return domain.ErrAlreadyRunning.
func (r *Runner) Run(ctx context.Context) (domain.RunResult, error) {
	r.mu.Lock()
	if r.status != domain.StatusIdle {
		r.mu.Unlock()
		return domain.RunResult{}, domain.ErrAlreadyRunning
	}
	r.status = domain.StatusRunning
	r.state.StartedAt = r.scheduler.Now()
	r.mu.Unlock()

	r.logger.Info("Simulation started",
		zap.String("target", r.req.Target.Username),
		zap.Int("candidates", r.total),
		zap.Strings("defenses", r.req.Defenses.ActiveDefenses()))

	status := r.execute(ctx)
	result := r.finish(status)

	r.logger.Info("Simulation finished",
		zap.String("status", string(result.Status)),
		zap.Int("attempts", result.TotalAttempts),
		zap.Int("riskScore", result.RiskScore))
	return result, nil
}

func (r *Runner) execute(ctx context.Context) domain.RunStatus {
	r.announce()

	if err := r.pause(ctx, r.pacing.PhasePause); err != nil {
		return r.abort()
	}
	r.emit(domain.LogInfo, "Simulated endpoint ready. Beginning attack simulation...")

	for candidate := range r.gen.Generate(r.req.Wordlist) {
		if ctx.Err() != nil {
			return r.abort()
		}

		r.mu.Lock()
		r.state.AttemptsMade++
		attempt := r.state.AttemptsMade
		snapshot := r.state
		r.mu.Unlock()

		decision := r.model.Evaluate(r.req.Defenses, snapshot, attempt)
		for _, ev := range decision.Events {
			r.emit(ev.Kind, ev.Message)
		}

		if decision.ShouldBlock {
			r.mu.Lock()
			r.state.LockoutsTriggered++
			if decision.ResetStreak {
				r.state.LockoutStrikes = 0
			}
			lockouts := r.state.LockoutsTriggered
			r.mu.Unlock()

			if r.pacing.MaxLockouts > 0 && lockouts >= r.pacing.MaxLockouts {
				r.emit(domain.LogFailure, fmt.Sprintf("Account disabled after %d lockouts. Attack halted.", lockouts))
				return domain.StatusBlocked
			}
			if err := r.pause(ctx, decision.BlockPause); err != nil {
				return r.abort()
			}
		}

		delay := r.pacing.BaseDelay*time.Duration(decision.BaselineMultiplier) +
			random.Jitter(r.rng, r.pacing.Jitter) +
			decision.ExtraDelay
		r.logger.Debug("Attempt evaluated",
			zap.Int("attempt", attempt),
			zap.Bool("blocked", decision.ShouldBlock),
			zap.Duration("delay", delay))

		if err := r.pause(ctx, delay); err != nil {
			return r.abort()
		}

		if r.matches(candidate) {
			r.mu.Lock()
			r.found = candidate
			r.mu.Unlock()
			r.emit(domain.LogSuccess, fmt.Sprintf("PASSWORD FOUND: %q for user %s", candidate, r.req.Target.Username))
			r.emit(domain.LogSuccess, fmt.Sprintf("Credential compromised after %d attempts using %s", attempt, r.req.Attack.Name))
			return domain.StatusSucceeded
		}

		r.mu.Lock()
		r.state.LockoutStrikes++
		r.mu.Unlock()

		if r.shouldTrace(attempt) {
			r.emit(domain.LogAttempt, r.traceMessage(candidate, attempt))
		}
	}

	r.emit(domain.LogFailure, "Attack completed. Password not found in wordlist.")
	return domain.StatusExhausted
}

func (r *Runner) announce() {
	defenses := "none"
	if active := r.req.Defenses.ActiveDefenses(); len(active) > 0 {
		defenses = strings.Join(active, ", ")
	}
	hashing := r.req.Defenses.PasswordHashing
	if hashing == "" {
		hashing = domain.HashBcrypt
	}

	r.emit(domain.LogInfo, fmt.Sprintf("Attack module initialized: %s", r.req.Attack.Name))
	r.emit(domain.LogInfo, fmt.Sprintf("Starting %s simulation on target: %s (secret: %s)",
		r.req.Attack.Name, r.req.Target.Username, mask(r.req.Target.Secret)))
	r.emit(domain.LogInfo, fmt.Sprintf("Wordlist loaded: %d entries, %d candidates", len(r.req.Wordlist), r.total))
	r.emit(domain.LogInfo, fmt.Sprintf("Active defenses: %s (password storage: %s)", defenses, hashing))
	r.emit(domain.LogInfo, "Initializing simulated authentication endpoint...")
}

// pause is a suspension point. Cancellation is checked as soon as it resumes.
func (r *Runner) pause(ctx context.Context, d time.Duration) error {
	if err := r.scheduler.Sleep(ctx, d); err != nil {
		return err
	}
	return ctx.Err()
}

func (r *Runner) abort() domain.RunStatus {
	r.mu.Lock()
	r.state.Cancelled = true
	r.mu.Unlock()
	r.emit(domain.LogWarning, "Simulation stopped by user.")
	return domain.StatusCancelled
}

func (r *Runner) finish(status domain.RunStatus) domain.RunResult {
	r.mu.RLock()
	state := r.state
	found := r.found
	r.mu.RUnlock()

	elapsed := r.scheduler.Now().Sub(state.StartedAt).Seconds()
	result := domain.RunResult{
		RunID:          r.req.ID,
		Strategy:       r.req.Attack.ID,
		StrategyName:   r.req.Attack.Name,
		TargetUsername: r.req.Target.Username,
		Status:         status,
		TotalAttempts:  state.AttemptsMade,
		Lockouts:       state.LockoutsTriggered,
		ElapsedSeconds: elapsed,
	}
	if status == domain.StatusSucceeded {
		result.MatchFound = true
		result.FoundValue = found
		result.SuccessfulAttempts = 1
		analysis := scoring.AnalyzePassword(found)
		result.Analysis = &analysis
	}
	result.RiskScore = scoring.Score(result, elapsed, r.req.Defenses)
	result.RiskLevel = scoring.Level(result.RiskScore)

	r.emit(domain.LogInfo, fmt.Sprintf("Simulation complete. Total attempts: %d, Time: %.2fs", result.TotalAttempts, elapsed))
	r.emit(domain.LogInfo, fmt.Sprintf("Outcome: %s. Risk score: %d/100 (%s)", status, result.RiskScore, result.RiskLevel))

	r.mu.Lock()
	r.status = status
	r.mu.Unlock()
	return result
}

func (r *Runner) matches(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(r.req.Target.Secret)) == 1
}

// shouldTrace bounds log volume: the first few attempts, then every Nth.
func (r *Runner) shouldTrace(attempt int) bool {
	return attempt <= r.pacing.TraceFirst || attempt%r.pacing.TraceEvery == 0
}

func (r *Runner) traceMessage(candidate string, attempt int) string {
	msg := fmt.Sprintf("Trying: %q ... Failed (%d/%d)", candidate, attempt, r.total)
	if r.req.Attack.ID == domain.StrategyTimingProbe {
		msg += fmt.Sprintf(" latency=%dms", r.probeLatency(candidate).Milliseconds())
	}
	return msg
}

// probeLatency is synthetic: longer shared prefixes with the secret respond slower.
func (r *Runner) probeLatency(candidate string) time.Duration {
	shared := 0
	secret := r.req.Target.Secret
	for shared < len(candidate) && shared < len(secret) && candidate[shared] == secret[shared] {
		shared++
	}
	return probeBaseLatency + time.Duration(shared)*probePerCharacter + random.Jitter(r.rng, probeLatencyJitter)
}

func (r *Runner) emit(kind domain.LogKind, message string) {
	r.events.Append(kind, message)
}

func mask(secret string) string {
	return fmt.Sprintf("%d chars, %s", len([]rune(secret)), strings.Repeat("•", min(len([]rune(secret)), 8)))
}
