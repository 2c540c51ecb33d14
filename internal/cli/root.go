// Package cli implements the attacksim command-line interface.
package cli

import (
	"attackSimBackend/internal/adapter/file"
	"attackSimBackend/internal/adapter/memory"
	"attackSimBackend/internal/config"
	"attackSimBackend/internal/core/domain"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const Version = "0.3.0"

// app carries what the subcommands share once the root has initialized.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd(os.Stdout).Execute()
}

func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:   "attacksim",
		Short: "Credential-guessing attack and defense simulator",
		Long: `attacksim replays credential-guessing strategies against simulated
accounts and shows how rate limiting, CAPTCHA, lockout and 2FA change the
outcome.

Every login attempt is simulated in memory. No network traffic is produced.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file, .yaml or .toml (default is ~/.attacksim/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newRunCmd(a),
		newSweepCmd(a),
		newTargetsCmd(a),
		newStrategiesCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := config.NewLogger(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.DefaultConfigPath()
}

func (a *app) accounts() []domain.TargetAccount {
	if len(a.cfg.Targets) > 0 {
		return a.cfg.Targets
	}
	return memory.DefaultTargets()
}

// wordlist prefers the flag, then the configured path, then the built-in list.
func (a *app) wordlist(path string) ([]string, error) {
	if path == "" {
		path = a.cfg.Wordlist.Path
	}
	if path == "" {
		return memory.DefaultWordlist(), nil
	}
	words, err := file.LoadWordlist(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Wordlist loaded", zap.String("path", path), zap.Int("entries", len(words)))
	return words, nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
