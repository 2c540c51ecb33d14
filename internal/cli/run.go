package cli

import (
	"attackSimBackend/internal/adapter/memory"
	"attackSimBackend/internal/config"
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/core/service"
	"attackSimBackend/internal/pkg/metrics"
	"attackSimBackend/internal/pkg/schedule"
	"attackSimBackend/internal/platform/console"
	"attackSimBackend/internal/port"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runOptions struct {
	target   string
	strategy string
	wordlist string
	seed     uint64
	instant  bool
	report   string
	watch    bool
	repeat   int
	defenses defenseFlags
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulated attack against a target account",
		Long: `Runs a simulated credential-guessing attack and streams its log.

Defense flags override the config file. Press Ctrl+C to stop the simulation;
the partial result is still reported.

Example:
  attacksim run --target 2 --strategy hybrid --lockout --rate-limit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.run(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "target account id (see `attacksim targets`)")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", string(domain.StrategyDictionary), "attack strategy id (see `attacksim strategies`)")
	cmd.Flags().StringVarP(&opts.wordlist, "wordlist", "w", "", "TXT or CSV wordlist (default is the built-in list)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from config, 0 is random)")
	cmd.Flags().BoolVar(&opts.instant, "instant", false, "use a virtual clock so delays take no real time")
	cmd.Flags().StringVar(&opts.report, "report", "", "append a JSON report to this file")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload defense toggles from the config file between runs")
	cmd.Flags().IntVar(&opts.repeat, "repeat", 1, "number of consecutive runs")
	opts.defenses.register(cmd)

	return cmd
}

func (a *app) run(ctx context.Context, cmd *cobra.Command, opts *runOptions) error {
	if opts.repeat < 1 {
		return fmt.Errorf("%w: --repeat must be >= 1", domain.ErrInvalidInput)
	}

	defenses, err := opts.defenses.apply(cmd, a.cfg.Defenses)
	if err != nil {
		return err
	}
	words, err := a.wordlist(opts.wordlist)
	if err != nil {
		return err
	}

	seed := a.cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed = opts.seed
	}
	report := opts.report
	if report == "" {
		report = a.cfg.Report.Path
	}

	defenseStore := memory.NewDefenseStore(defenses)
	collector := metrics.NewCollector()
	svc := service.NewSimulationService(
		memory.NewTargetStore(a.accounts()),
		memory.NewWordlistStore(words),
		defenseStore,
		service.Settings{
			Pacing:        a.cfg.Pacing.ToPacing(),
			Timings:       a.cfg.DefenseTiming.ToTimings(),
			Seed:          seed,
			MutationRules: a.cfg.Hybrid.Rules,
			NewScheduler: func() port.Scheduler {
				if opts.instant {
					return schedule.NewVirtual(time.Now())
				}
				return schedule.NewReal()
			},
			Logger:    a.logger,
			Collector: collector,
		},
	)

	if opts.watch {
		watchCtx, cancelWatch := context.WithCancel(ctx)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := config.Watch(watchCtx, a.configPath(), a.logger, func(cfg *config.Config) {
				// Flags still win over the file.
				next, err := opts.defenses.apply(cmd, cfg.Defenses)
				if err != nil {
					return
				}
				defenseStore.Update(next)
				a.logger.Info("Defenses updated for the next run", zap.Strings("active", next.ActiveDefenses()))
			})
			if err != nil {
				a.logger.Warn("Config watch stopped", zap.Error(err))
			}
		}()
		defer func() {
			cancelWatch()
			wg.Wait()
		}()
	}

	var reporter *metrics.Reporter
	if report != "" {
		reporter, err = metrics.NewReporter(report)
		if err != nil {
			return err
		}
		defer func() {
			if err := reporter.Close(); err != nil {
				a.logger.Warn("Report not written", zap.Error(err))
			}
		}()
	}

	c := console.NewConsole(svc, a.out, console.NewDefaultConfig())
	for i := 0; i < opts.repeat; i++ {
		if ctx.Err() != nil {
			break
		}
		handle, result, err := c.Simulate(ctx, opts.target, domain.Strategy(opts.strategy))
		if err != nil {
			return err
		}
		if reporter != nil {
			reporter.Record("results", result)
			if m, ok := handle.Metrics(); ok {
				reporter.Record("metrics", m)
			}
			reporter.Record("events", handle.Events())
		}
	}
	return nil
}
