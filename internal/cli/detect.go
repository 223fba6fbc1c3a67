package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"nh3lab.klederson.com/internal/detector"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Replay the device event detector over a synthesized trace",
	Long: `Run the firmware's IDLE/ACTIVE/COOLDOWN detector over the scenario's trace
and report every classified event next to the events that were scripted.

Use it to check trigger, hysteresis and end-tick settings before flashing.

Examples:
  nh3lab detect
  NH3LAB_DETECTOR__TRIGGER_DELTA=4 nh3lab detect`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	series, params, err := synthesize()
	if err != nil {
		return err
	}

	cfg := detector.FromSpec(scenario.Detector)
	found, _ := detector.Replay(cfg, logger, series.PPM)
	stepMin := params.Grid.StepSec() / 60

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scripted events: %d\n", len(params.Events))
	for _, ev := range params.Events {
		fmt.Fprintf(out, "  %s\n", ev)
	}
	fmt.Fprintf(out, "\ndetector: trigger +%.1f  hysteresis +%.1f  end %d ticks  cooldown %d ticks\n\n",
		cfg.TriggerDelta, cfg.Hysteresis, cfg.EndTicks, cfg.CooldownTicks)

	if len(found) == 0 {
		fmt.Fprintln(out, "no events classified")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EVENT\tSTART\tPEAK\tEND\tPEAK PPM\tBASELINE")
	for _, c := range found {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n", c.Event,
			float64(c.StartTick)*stepMin, float64(c.PeakTick)*stepMin, float64(c.EndTick)*stepMin,
			c.PeakPPM, c.Baseline)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
