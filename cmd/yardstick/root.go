package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/yardstick/internal/config"
	"github.com/HendryAvila/yardstick/internal/logging"
	sserver "github.com/HendryAvila/yardstick/internal/server"
)

var rootFlags struct {
	envFile  string
	dataDir  string
	logLevel string
}

// app holds what PersistentPreRunE resolved for the running command.
var app struct {
	cfg config.Config
	log *zap.Logger
}

var rootCmd = &cobra.Command{
	Use:   "yardstick",
	Short: "Ethical review of AI and software use cases",
	Long: "Yardstick scores a use case and its planned implementation against five\n" +
		"ethical frameworks and produces prioritized recommendations.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.envFile, "env-file", ".env", "Optional .env file with YARDSTICK_* settings")
	f.StringVar(&rootFlags.dataDir, "data-dir", "", "Directory for history.db (overrides "+config.EnvDataDir+")")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides "+config.EnvLogLevel+")")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.Version = sserver.Version
}

// setup loads configuration and installs the logger before any command.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootFlags.envFile)
	if err != nil {
		return err
	}
	if rootFlags.dataDir != "" {
		cfg.DataDir = rootFlags.dataDir
	}
	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.log = logging.Init(level, cfg.LogFormat, cmd.ErrOrStderr())
	return nil
}
