package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"nh3lab.klederson.com/internal/app"
	"nh3lab.klederson.com/internal/config"
	"nh3lab.klederson.com/internal/detector"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Replay a synthesized trace in the terminal",
	Long: `Replay the scenario's trace one sample at a time with the detector running
alongside, the way the device would see it.

Keys: [S] start  [P] pause  [R] restart  [+/-] speed  [up/down] events  [Q] quit

Logs are written only to --log-file while the viewer is open.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	series, params, err := synthesize()
	if err != nil {
		return err
	}

	model := app.New(app.Options{
		Series:   series,
		Events:   params.Events,
		StepSec:  params.Grid.StepSec(),
		Detector: detector.FromSpec(scenario.Detector),
		Source:   fmt.Sprintf("seed %d", params.Seed),
		Log:      logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start the player with reference to the tea program
	model.Start(p)
	defer model.Stop()

	_, err = p.Run()
	return err
}
