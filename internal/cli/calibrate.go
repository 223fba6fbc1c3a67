package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"nh3lab.klederson.com/internal/sensor"
)

var (
	calibrateRaw int
	calibrateR0  float64
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Compute R0 from a clean-air ADC reading",
	Long: `Compute the sensor's R0 from a raw ADC reading taken in clean air after
warm-up, then show how that same reading converts with the resulting R0.

Pass --r0 to convert a reading with a known R0 instead.

Examples:
  nh3lab calibrate --raw 674
  nh3lab calibrate --raw 2048 --r0 10.0`,
	Args: cobra.NoArgs,
	RunE: runCalibrate,
}

func init() {
	calibrateCmd.Flags().IntVar(&calibrateRaw, "raw", 0, "raw 12-bit ADC reading")
	calibrateCmd.Flags().Float64Var(&calibrateR0, "r0", 0, "known R0 in kOhm; skips calibration")
	_ = calibrateCmd.MarkFlagRequired("raw")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	fe := sensor.DefaultFrontend()
	out := cmd.OutOrStdout()

	if calibrateR0 > 0 {
		fe.R0KOhm = calibrateR0
	} else {
		r0, err := fe.R0FromCleanAir(calibrateRaw)
		if err != nil {
			return fmt.Errorf("calibrate: %w", err)
		}
		fe.R0KOhm = r0
		logger.Info("calibrated", "raw", calibrateRaw, "r0_kohm", r0)
		fmt.Fprintf(out, "R0 = %.3f kOhm (clean air Rs/R0 = %.1f)\n", r0, sensor.CleanAirRatio)
	}

	reading, err := fe.Convert(calibrateRaw)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	fmt.Fprintln(out, reading)
	if !sensor.InValidRange(reading.PPM) {
		fmt.Fprintf(out, "note: %.1f ppm is outside the curve's trusted range (%g-%g ppm)\n",
			reading.PPM, sensor.MinValidPPM, sensor.MaxValidPPM)
	}
	return nil
}
