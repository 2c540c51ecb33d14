package cli

import (
	"attackSimBackend/internal/config"
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/platform/console"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newTargetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List target accounts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			r := console.NewRenderer(lipgloss.NewRenderer(a.out), nil)
			a.printf("%s\n", r.Targets(a.accounts()))
		},
	}
}

func newStrategiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List attack strategies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			r := console.NewRenderer(lipgloss.NewRenderer(a.out), nil)
			a.printf("%s\n", r.Strategies(domain.AttackTypes()))
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath()
			data, err := config.Encode(a.cfg, config.FormatOf(path))
			if err != nil {
				return err
			}
			a.printf("# path: %s (exists: %v)\n%s", path, config.Exists(path), data)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath()
			if config.Exists(path) {
				a.printf("Config already exists: %s\n", path)
				return nil
			}
			cfg := config.Default()
			if err := config.Save(&cfg, path); err != nil {
				return err
			}
			a.printf("Wrote %s\n", path)
			return nil
		},
	})
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.printf("attacksim v%s (%s)\n", Version, runtime.Version())
		},
	}
}
