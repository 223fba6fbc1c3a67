// Package cli provides the nh3lab command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"nh3lab.klederson.com/internal/config"
	"nh3lab.klederson.com/internal/logging"
	"nh3lab.klederson.com/internal/synth"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagLogFile  string

	// Loaded by the root pre-run for every subcommand
	scenario *config.Scenario
	logger   = logging.Discard()
	closeLog = noClose

	setupLogging = logging.Setup
)

func noClose() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "nh3lab",
	Short: "NH3-LAB - litter box ammonia event toolkit",
	Long: `NH3-LAB supports development of an MQ-135 based ammonia sensor that
detects cat litter box events.

It synthesizes urination and defecation concentration traces, replays the
device's event detector against them, renders the documentation charts and
streams the board's serial output.

Settings come from built-in defaults, an optional YAML scenario (--config or
NH3LAB_CONFIG) and NH3LAB_* environment variables, in that order.`,
	Version:       config.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flagLogLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = flagLogFile
		}
		scenario = cfg

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}

		// The replay viewer owns the terminal; its logs only go to the file.
		var stderr io.Writer = cmd.ErrOrStderr()
		if cmd.Name() == "view" {
			stderr = io.Discard
		}
		logger, closeLog, err = setupLogging(stderr, cfg.LogFile, level)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return finishLog()
	},
}

// Execute adds all child commands to the root command and runs it. The log
// file is closed even when the command fails.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := finishLog(); err == nil {
		err = cerr
	}
	return err
}

func finishLog() error {
	closer := closeLog
	closeLog = noClose
	return closer()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML scenario file (default $NH3LAB_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also write JSON logs to this file")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(scenarioCmd)
}

// synthesize builds the series described by the loaded scenario.
func synthesize() (synth.Series, synth.Params, error) {
	params, err := synth.FromScenario(scenario)
	if err != nil {
		return synth.Series{}, synth.Params{}, fmt.Errorf("build parameters: %w", err)
	}
	series, err := synth.Synthesize(params)
	if err != nil {
		return synth.Series{}, synth.Params{}, fmt.Errorf("synthesize: %w", err)
	}
	return series, params, nil
}
