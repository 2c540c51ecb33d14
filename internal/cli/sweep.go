package cli

import (
	"attackSimBackend/internal/adapter/memory"
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/core/sweep"
	"attackSimBackend/internal/pkg/metrics"
	"attackSimBackend/internal/platform/console"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type sweepOptions struct {
	target   string
	strategy string
	wordlist string
	seed     uint64
	workers  int
	hashing  string
	report   string
}

func newSweepCmd(a *app) *cobra.Command {
	opts := &sweepOptions{}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare one attack across every defense configuration",
		Long: `Runs the same attack once with no defenses, once per single defense and
once with all defenses on, then prints the outcomes side by side. Runs use a
virtual clock and finish immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runSweep(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "target account id")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", string(domain.StrategyDictionary), "attack strategy id")
	cmd.Flags().StringVarP(&opts.wordlist, "wordlist", "w", "", "TXT or CSV wordlist (default is the built-in list)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed shared by every scenario (default from config)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel runs (default from config)")
	cmd.Flags().StringVar(&opts.hashing, "hashing", "", "password storage algorithm for every scenario")
	cmd.Flags().StringVar(&opts.report, "report", "", "append a JSON report to this file")

	return cmd
}

func (a *app) runSweep(ctx context.Context, cmd *cobra.Command, opts *sweepOptions) error {
	targets := memory.NewTargetStore(a.accounts())
	active, err := targets.ListActive(ctx)
	if err != nil {
		return err
	}
	var target *domain.TargetAccount
	for i := range active {
		if active[i].ID == opts.target {
			target = &active[i]
		}
	}
	if target == nil {
		return domain.ErrNoTarget
	}

	attack, ok := domain.LookupAttack(domain.Strategy(opts.strategy))
	if !ok {
		return domain.ErrNoStrategy
	}
	if attack.ID == domain.StrategyHybrid {
		attack.MutationRules = a.cfg.Hybrid.Rules
	}

	words, err := a.wordlist(opts.wordlist)
	if err != nil {
		return err
	}

	hashing := a.cfg.Defenses.PasswordHashing
	if opts.hashing != "" {
		hashing = domain.HashAlgorithm(opts.hashing)
		if !hashing.Valid() {
			return fmt.Errorf("%w: unknown hashing %q", domain.ErrInvalidInput, opts.hashing)
		}
	}
	seed := a.cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed = opts.seed
	}
	workers := a.cfg.Sweep.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}

	entries, err := sweep.Run(ctx, sweep.Request{
		Target:    target.Target(),
		Attack:    attack,
		Wordlist:  words,
		Scenarios: sweep.DefaultMatrix(hashing),
		Pacing:    a.cfg.Pacing.ToPacing(),
		Timings:   a.cfg.DefenseTiming.ToTimings(),
		Seed:      seed,
		Workers:   workers,
		Logger:    a.logger,
	})
	if err != nil {
		return err
	}

	r := console.NewRenderer(lipgloss.NewRenderer(a.out), console.NewDefaultConfig())
	a.printf("%s vs %s (%s)\n\n", attack.Name, target.Username, hashing)
	a.printf("%s\n", r.Sweep(entries))

	report := opts.report
	if report == "" {
		report = a.cfg.Report.Path
	}
	if report != "" {
		reporter, err := metrics.NewReporter(report)
		if err != nil {
			return err
		}
		reporter.Record("sweep", entries)
		return reporter.Close()
	}
	return nil
}
