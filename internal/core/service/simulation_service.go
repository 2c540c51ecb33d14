package service

import (
	"attackSimBackend/internal/core/defense"
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/pkg/metrics"
	"attackSimBackend/internal/pkg/schedule"
	"attackSimBackend/internal/port"
	"attackSimBackend/internal/utils/random"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Settings struct {
	Pacing  Pacing
	Timings defense.Timings
	// Seed pins every run's random source. 0 draws a fresh seed per run.
	Seed          uint64
	MutationRules []string
	// NewScheduler returns the clock for one run. Defaults to the wall clock.
	NewScheduler func() port.Scheduler
	Logger       *zap.Logger
	Collector    *metrics.Collector
}

// SimulationService starts, tracks and cancels runs. At most one run is
// active at a time.
type SimulationService struct {
	targets   port.TargetSource
	wordlists port.WordlistStore
	defenses  port.DefenseConfigStore
	settings  Settings
	model     defense.Model
	collector *metrics.Collector
	logger    *zap.Logger

	mu     sync.Mutex
	active *RunHandle
	runs   sync.Map
}

func NewSimulationService(
	targets port.TargetSource,
	wordlists port.WordlistStore,
	defenses port.DefenseConfigStore,
	settings Settings,
) *SimulationService {
	if settings.NewScheduler == nil {
		settings.NewScheduler = func() port.Scheduler { return schedule.NewReal() }
	}
	if settings.Logger == nil {
		settings.Logger = zap.NewNop()
	}
	if settings.Collector == nil {
		settings.Collector = metrics.NewCollector()
	}

	return &SimulationService{
		targets:   targets,
		wordlists: wordlists,
		defenses:  defenses,
		settings:  settings,
		model:     defense.NewModel(settings.Timings),
		collector: settings.Collector,
		logger:    settings.Logger,
	}
}

// StartRun validates the request and launches the run in the background.
// Rejections are domain.RejectionReason values. The run's context derives
// from ctx, so cancelling ctx cancels the run.
func (s *SimulationService) StartRun(ctx context.Context, targetID string, strategyID domain.Strategy) (*RunHandle, error) {
	target, err := s.resolveTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	attack, ok := domain.LookupAttack(strategyID)
	if !ok {
		return nil, domain.ErrNoStrategy
	}
	if attack.ID == domain.StrategyHybrid {
		attack.MutationRules = slices.Clone(s.settings.MutationRules)
	}

	wordlist, err := s.wordlists.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}
	if len(wordlist) == 0 {
		return nil, domain.ErrEmptyWordlist
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, domain.ErrAlreadyRunning
	}

	defenses, err := s.defenses.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot defenses: %w", err)
	}

	id := uuid.NewString()
	seed := s.settings.Seed
	if seed == 0 {
		seed = random.Seed()
	}

	scheduler := s.settings.NewScheduler()
	events := NewEventLog(scheduler.Now)
	runner, err := NewRunner(RunRequest{
		ID:       id,
		Target:   target.Target(),
		Attack:   attack,
		Wordlist: wordlist,
		Defenses: defenses,
		Seed:     seed,
	}, RunnerConfig{
		Scheduler: scheduler,
		Model:     &s.model,
		Pacing:    s.settings.Pacing,
		Logger:    s.logger,
		Events:    events,
	})
	if err != nil {
		return nil, err
	}

	s.collector.StartCollection(id)
	events.OnAppend(func(ev domain.LogEvent) {
		s.collector.Observe(id, ev)
	})

	runCtx, cancel := context.WithCancel(ctx)
	handle := newRunHandle(id, runner, cancel)
	s.active = handle
	s.runs.Store(id, handle)

	go s.execute(runCtx, handle)

	s.logger.Info("Run accepted",
		zap.String("run", id),
		zap.String("target", target.Username),
		zap.String("strategy", string(attack.ID)))
	return handle, nil
}

func (s *SimulationService) resolveTarget(ctx context.Context, targetID string) (domain.TargetAccount, error) {
	if targetID == "" {
		return domain.TargetAccount{}, domain.ErrNoTarget
	}

	accounts, err := s.targets.ListActive(ctx)
	if err != nil {
		return domain.TargetAccount{}, fmt.Errorf("failed to list targets: %w", err)
	}
	for _, account := range accounts {
		if account.ID == targetID && account.IsActive {
			return account, nil
		}
	}
	return domain.TargetAccount{}, domain.ErrNoTarget
}

func (s *SimulationService) execute(ctx context.Context, h *RunHandle) {
	defer h.cancel()

	result, err := h.runner.Run(ctx)
	if err != nil {
		s.logger.Error("Run could not start", zap.String("run", h.ID), zap.Error(err))
	}
	m := s.collector.StopCollection(h.ID, result)

	s.mu.Lock()
	if s.active == h {
		s.active = nil
	}
	s.mu.Unlock()

	h.complete(result, m)
}

// Cancel stops the run cooperatively. Cancelling a finished run is a no-op.
func (s *SimulationService) Cancel(runID string) error {
	h, ok := s.Run(runID)
	if !ok {
		return domain.ErrRunNotFound
	}
	h.Cancel()
	return nil
}

func (s *SimulationService) Subscribe(runID string, onLog func(domain.LogEvent), onResult func(domain.RunResult)) (<-chan struct{}, error) {
	h, ok := s.Run(runID)
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return h.Subscribe(onLog, onResult), nil
}

func (s *SimulationService) Run(runID string) (*RunHandle, bool) {
	v, ok := s.runs.Load(runID)
	if !ok {
		return nil, false
	}
	return v.(*RunHandle), true
}

func (s *SimulationService) ActiveRun() (*RunHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != nil
}

// RunHandle is the caller's view of one run.
type RunHandle struct {
	ID string

	runner     *Runner
	cancel     context.CancelFunc
	cancelOnce sync.Once
	done       chan struct{}

	mu      sync.RWMutex
	result  *domain.RunResult
	metrics *domain.RunMetrics
}

func newRunHandle(id string, runner *Runner, cancel context.CancelFunc) *RunHandle {
	return &RunHandle{
		ID:     id,
		runner: runner,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Cancel is idempotent.
func (h *RunHandle) Cancel() {
	h.cancelOnce.Do(h.cancel)
}

func (h *RunHandle) Done() <-chan struct{} {
	return h.done
}

func (h *RunHandle) Status() domain.RunStatus {
	return h.runner.Status()
}

func (h *RunHandle) Events() []domain.LogEvent {
	return h.runner.Events().Events()
}

func (h *RunHandle) Result() (domain.RunResult, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.result == nil {
		return domain.RunResult{}, false
	}
	return *h.result, true
}

func (h *RunHandle) Metrics() (domain.RunMetrics, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.metrics == nil {
		return domain.RunMetrics{}, false
	}
	return *h.metrics, true
}

// Wait blocks until the run is terminal or ctx ends.
func (h *RunHandle) Wait(ctx context.Context) (domain.RunResult, error) {
	select {
	case <-h.done:
		result, _ := h.Result()
		return result, nil
	case <-ctx.Done():
		return domain.RunResult{}, ctx.Err()
	}
}

// Subscribe delivers every log event from the first, in sequence order, then
// the result exactly once. The returned channel closes after onResult returns.
func (h *RunHandle) Subscribe(onLog func(domain.LogEvent), onResult func(domain.RunResult)) <-chan struct{} {
	delivered := make(chan struct{})
	log := h.runner.Events()

	go func() {
		defer close(delivered)
		next := 0
		for {
			batch, closed, changed := log.since(next)
			for _, ev := range batch {
				if onLog != nil {
					onLog(ev)
				}
			}
			next += len(batch)

			if closed {
				result, _ := h.Result()
				if onResult != nil {
					onResult(result)
				}
				return
			}
			<-changed
		}
	}()

	return delivered
}

func (h *RunHandle) complete(result domain.RunResult, m domain.RunMetrics) {
	h.mu.Lock()
	h.result = &result
	h.metrics = &m
	h.mu.Unlock()

	h.runner.Events().Close()
	close(h.done)
}
