package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ndops/internal/logging"
)

var (
	rootConfigPath string
	rootSchemaPath string
	rootLogLevel   string
	rootPrintOnly  bool
	rootSimulated  bool
)

var rootCmd = &cobra.Command{
	Use:   "ndops",
	Short: "Noise-diode operations toolkit",
	Long:  "ndops schedules and synchronizes noise-diode firing across the digitisers of a subarray.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "config/observation.yaml", "Path to observation configuration YAML")
	rootCmd.PersistentFlags().StringVar(&rootSchemaPath, "schema", "schemas/observation.cue", "Path to CUE schema file")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootPrintOnly, "print-only", false, "Print dispatch events to STDOUT instead of writing to DB")
	rootCmd.PersistentFlags().BoolVar(&rootSimulated, "sim", false, "Force simulated mode regardless of configuration")

	rootCmd.AddCommand(onCmd)
	rootCmd.AddCommand(offCmd)
	rootCmd.AddCommand(triggerCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(discoverCmd)
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "trace":
		return logging.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
