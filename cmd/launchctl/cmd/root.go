// ====================================
// File: cmd/launchctl/cmd/root.go
// ====================================
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launch-economics/internal/config"
	"github.com/rovshanmuradov/launch-economics/internal/fees"
	"github.com/rovshanmuradov/launch-economics/internal/logger"
	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

// app holds state shared by every subcommand, set up in PersistentPreRunE.
type app struct {
	configPath string
	platform   string
	logFile    string
	debug      bool
	jsonOutput bool

	cfg       *config.Config
	log       *logger.Logger
	allocator *fees.Allocator
	simulator *pricing.Simulator
}

// NewRootCmd builds the launchctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "launchctl",
		Short:         "Token launch economics: fee distribution and initial-buy preview",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.HasParent() {
				return nil
			}
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to config file (json or yaml)")
	flags.StringVar(&a.platform, "platform", "", "platform fee address, overrides config")
	flags.StringVar(&a.logFile, "log-file", "", "rotating JSON log file, overrides config")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&a.jsonOutput, "json", false, "print results as JSON")

	cmd.AddCommand(
		newSimulateCmd(a),
		newFeeCheckCmd(a),
		newAllocateCmd(a),
		newPreviewCmd(a),
		newRenderCmd(a),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.Load(a.configPath)
	} else {
		cfg, err = config.Default(a.platform)
	}
	if err != nil {
		return err
	}

	if a.platform != "" {
		cfg.PlatformAddress = a.platform
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	if a.debug {
		cfg.DebugLogging = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	allocator, err := fees.NewAllocator(cfg.FeeConfig(), log.WithComponent("fees"))
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.allocator = allocator
	a.simulator = pricing.NewSimulator(cfg.TotalSupply, log.WithComponent("pricing"))

	log.Debug("launchctl initialized",
		zap.String("command", cmd.Name()),
		zap.String("platform", logger.ShortenAddress(cfg.PlatformAddress)),
		zap.String("config", a.configPath))
	return nil
}
