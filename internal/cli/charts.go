package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"nh3lab.klederson.com/internal/chart"
	"nh3lab.klederson.com/internal/config"
	"nh3lab.klederson.com/internal/sensor"
)

var chartsOut string

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the documentation charts as PNG",
	Long: `Render the three documentation charts:

  event_pattern.png          synthesized trace with threshold and event windows
  sensitivity_curve.png      MQ-135 NH3 curve with datasheet points (log-log)
  concentration_context.png  expected concentrations around a litter box

Examples:
  nh3lab charts
  nh3lab charts --out docs/images`,
	Args: cobra.NoArgs,
	RunE: runCharts,
}

func init() {
	chartsCmd.Flags().StringVarP(&chartsOut, "out", "o", ".", "output directory")
}

func runCharts(cmd *cobra.Command, args []string) error {
	series, params, err := synthesize()
	if err != nil {
		return err
	}

	builders := []struct {
		file  string
		build func() (*plot.Plot, error)
	}{
		{"event_pattern.png", func() (*plot.Plot, error) {
			return chart.EventPattern(series, params.Events, chart.EventOptions{ShadeFraction: config.ShadeFraction})
		}},
		{"sensitivity_curve.png", chart.SensitivityCurve},
		{"concentration_context.png", func() (*plot.Plot, error) {
			return chart.ConcentrationContext(sensor.Situations)
		}},
	}

	for _, b := range builders {
		p, err := b.build()
		if err != nil {
			return fmt.Errorf("build %s: %w", b.file, err)
		}
		path := filepath.Join(chartsOut, b.file)
		if err := chart.Save(p, path, chart.Width, chart.Height); err != nil {
			return err
		}
		logger.Info("chart written", "path", path)
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
