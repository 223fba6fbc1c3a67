package cli

import (
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"nh3lab.klederson.com/internal/console"
)

var (
	monitorPort     string
	monitorBaud     int
	monitorDuration time.Duration
	monitorNoReset  bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Stream the board's serial output with timestamps",
	Long: `Open the board's serial port, reset it so the boot log is captured, and
print every line with a local timestamp until the duration ends or Ctrl-C.

Examples:
  nh3lab monitor
  nh3lab monitor --port /dev/ttyUSB0 --duration 5m
  nh3lab monitor --duration 0 --no-reset`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVarP(&monitorPort, "port", "p", "", "serial port (default from scenario)")
	monitorCmd.Flags().IntVarP(&monitorBaud, "baud", "b", 0, "baud rate (default from scenario)")
	monitorCmd.Flags().DurationVarP(&monitorDuration, "duration", "d", 0, "how long to listen, 0 for no limit (default from scenario)")
	monitorCmd.Flags().BoolVar(&monitorNoReset, "no-reset", false, "do not pulse DTR/RTS before listening")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg := console.FromSpec(scenario.Serial)
	if cmd.Flags().Changed("port") {
		cfg.Port = monitorPort
	}
	if cmd.Flags().Changed("baud") {
		cfg.Baud = monitorBaud
	}
	if cmd.Flags().Changed("duration") {
		cfg.Duration = monitorDuration
	}
	if monitorNoReset {
		cfg.Reset = false
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return console.Run(ctx, cfg, cmd.OutOrStdout(), logger)
}
