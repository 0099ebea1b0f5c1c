package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmacinski/pocket/internal/app"
	"github.com/kmacinski/pocket/internal/config"
	"github.com/kmacinski/pocket/internal/logging"
	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"
)

var (
	version = "dev"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("pocket failed")
		return 1
	}
	return 0
}

type rootFlags struct {
	configPath string
	logFile    string
	logLevel   string
	seed       int64
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "pocket",
		Short:         "A phone-sized browser chrome in your terminal",
		Long:          "pocket draws a mobile browser chrome: tabs, a paginated menu and a\nhome screen, driven by keyboard and mouse.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (default ~/.config/pocket/config.yml)")
	root.Flags().StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	root.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, error")
	root.Flags().Int64Var(&flags.seed, "seed", 0, "seed for tab icons and colors (0 picks one)")

	root.AddCommand(newConfigCmd(&flags))
	root.AddCommand(newVersionCmd())

	return root
}

func run(cmd *cobra.Command, flags rootFlags) error {
	loader, err := config.NewLoader(flags.configPath)
	if err != nil {
		return err
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	// Flags win over file and environment
	if cmd.Flags().Changed("log-file") {
		cfg.Logging.File = flags.logFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flags.seed
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := pslog.ContextWithLogger(cmd.Context(), logger)

	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info("starting", "version", version, "config", loader.Path(), "seed", seed)

	application := app.New(cfg,
		app.WithLogger(logger),
		app.WithContext(ctx),
		app.WithRand(rand.New(rand.NewPCG(seed, seed))),
		app.WithLoader(loader),
	)

	p := tea.NewProgram(
		application,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	application.SetProgram(p)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running ui: %w", err)
	}
	logger.Info("stopped")
	return nil
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(flags.configPath, force)
			if err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pocket %s\n", version)
			return err
		},
	}
}
