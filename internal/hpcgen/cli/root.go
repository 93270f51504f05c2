// Package cli wires the hpcgen subcommands. Every command loads the tool
// configuration itself so tests can run commands in isolation.
package cli

import (
	"github.com/spf13/cobra"

	"hpcgen/pkg/config"
	"hpcgen/pkg/logger"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "hpcgen",
	Short: "hpcgen - HPC job descriptor generator",
	Long: `hpcgen renders validated HPC job configurations into the descriptor
files consumed by the job-dispatch daemon.

Typical flow:
  hpcgen init job.json          write a starter job configuration
  hpcgen validate job.json      align and consistency-check it
  hpcgen generate job.json      render the dispatch descriptor`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logLevel != "" {
			if level, err := logger.ParseLevel(logLevel); err == nil {
				logger.SetLevel(level)
			}
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the tool configuration for a command invocation.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel == "" && cfg.Logging.Level != "" {
		if level, err := logger.ParseLevel(cfg.Logging.Level); err == nil {
			logger.SetLevel(level)
		}
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to tool configuration file (falls back to $HPCGEN_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error")

	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewShowCmd())
}
