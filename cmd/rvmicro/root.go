package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rvmicro/rvmicro/internal/logger"
	"github.com/rvmicro/rvmicro/kernel"
)

var (
	// Global flags
	logFile  string
	logLevel string

	// exitCode is what the process exits with. The run command sets it
	// to the simulated machine's power-off status.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "rvmicro",
	Short: "Boot and inspect a simulated RISC-V micro-kernel",
	Long: `rvmicro simulates a small rv64im machine (UART, CLINT timer, SysCon,
virtual disk) and boots a micro-kernel on it. The kernel's serial console
is attached to your terminal; programs on the virtual disk run as real
RV64 machine code in user mode.`,
	Version: kernel.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}
		return logger.Init(logger.Options{Path: logFile, Level: level})
	},
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&logFile, "log-file", "", "Write diagnostic logs to this file (stdout belongs to the serial console)")
	rootCmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "info", "Minimum log level: debug, info, warn, error")
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	}
}
