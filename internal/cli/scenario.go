package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Print the effective scenario as YAML",
	Long: `Print the scenario after defaults, the --config file and NH3LAB_*
environment variables have been applied. The output is a valid --config file.

Examples:
  nh3lab scenario > my-scenario.yaml
  NH3LAB_SEED=7 nh3lab scenario`,
	Args: cobra.NoArgs,
	RunE: runScenario,
}

func runScenario(cmd *cobra.Command, args []string) error {
	data, err := scenario.YAML()
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
