package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"nh3lab.klederson.com/internal/chart"
	"nh3lab.klederson.com/internal/config"
	"nh3lab.klederson.com/internal/synth"
)

var (
	simulateCSV      bool
	simulatePNG      string
	simulateSeed     uint64
	simulateNoise    float64
	simulateDuration float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Synthesize an NH3 event trace",
	Long: `Synthesize a concentration trace from the scenario's baseline, noise and
events, and flag every sample at or above baseline + threshold delta.

Examples:
  nh3lab simulate
  nh3lab simulate --csv > trace.csv
  nh3lab simulate --seed 7 --noise 0.5 --png trace.png
  nh3lab simulate -c scenarios/two-cats.yaml`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&simulateCSV, "csv", false, "write CSV instead of a table")
	simulateCmd.Flags().StringVar(&simulatePNG, "png", "", "also render the event pattern chart to this file")
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", config.NoiseSeed, "noise seed")
	simulateCmd.Flags().Float64Var(&simulateNoise, "noise", config.NoiseStdDev, "noise standard deviation (ppm)")
	simulateCmd.Flags().Float64Var(&simulateDuration, "duration", config.DurationMin, "simulated minutes")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("seed") {
		scenario.Seed = simulateSeed
	}
	if cmd.Flags().Changed("noise") {
		scenario.NoiseStdDev = simulateNoise
	}
	if cmd.Flags().Changed("duration") {
		scenario.DurationMin = simulateDuration
	}

	log := logger.With("run_id", uuid.NewString())

	series, params, err := synthesize()
	if err != nil {
		return err
	}
	sum := series.Summary()
	log.Info("series synthesized",
		"samples", sum.Samples, "seed", params.Seed, "events", len(params.Events),
		"max_ppm", sum.Max, "detected", sum.Detected)

	out := cmd.OutOrStdout()
	if simulateCSV {
		err = writeCSV(out, series)
	} else {
		err = writeTable(out, series, sum)
	}
	if err != nil {
		return err
	}

	if simulatePNG != "" {
		p, err := chart.EventPattern(series, params.Events, chart.EventOptions{ShadeFraction: config.ShadeFraction})
		if err != nil {
			return fmt.Errorf("build chart: %w", err)
		}
		if err := chart.Save(p, simulatePNG, chart.Width, chart.Height); err != nil {
			return err
		}
		log.Info("chart written", "path", simulatePNG)
	}
	return nil
}

func writeCSV(w io.Writer, s synth.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"minute", "ppm", "detected"}); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for i, hit := range s.Detections() {
		rec := []string{
			strconv.FormatFloat(s.Minutes[i], 'f', 4, 64),
			strconv.FormatFloat(s.PPM[i], 'f', 4, 64),
			strconv.FormatBool(hit),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeTable(w io.Writer, s synth.Series, sum synth.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MINUTE\tPPM\tDETECTED\t")
	for i, hit := range s.Detections() {
		mark := ""
		if hit {
			mark = "*"
		}
		fmt.Fprintf(tw, "%.2f\t%.2f\t%s\t\n", s.Minutes[i], s.PPM[i], mark)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	fmt.Fprintf(w, "\nsamples %d  min %.2f  max %.2f  mean %.2f  stddev %.2f\n",
		sum.Samples, sum.Min, sum.Max, sum.Mean, sum.StdDev)
	fmt.Fprintf(w, "threshold %.1f ppm (baseline %.1f + %.1f): %d samples detected\n",
		s.Threshold.Level(), s.Threshold.Baseline, s.Threshold.Delta, sum.Detected)
	return nil
}
