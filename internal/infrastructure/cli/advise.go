package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Ask the AI advisor for a project risk assessment",
	Long: `Send the current earned-value picture to the configured AI provider
and persist the returned risk score and alerts on the project. When the
provider is unreachable or answers nonsense the command degrades to a
neutral score with a warning instead of failing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		assessment, err := services.Advisor.AnalyzeRisk(cmd.Context())
		if err != nil {
			return MapError(err)
		}

		cmd.Printf("Risk score: %.0f/100", assessment.Score)
		if assessment.Degraded {
			cmd.Print(" (degraded: the advisor answer could not be used)")
		}
		cmd.Println()
		if assessment.Model != "" {
			cmd.Printf("Model:      %s\n", assessment.Model)
		}
		if len(assessment.Alerts) > 0 {
			cmd.Println("Alerts:")
			for _, a := range assessment.Alerts {
				cmd.Printf("  [%s] %s: %s\n", a.Severity, a.Type, a.Message)
			}
		}
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario...>",
	Short: "Ask the AI advisor to evaluate a what-if scenario",
	Long: `Describe a scenario in plain language, for example:

  sazyar simulate "concrete deliveries slip by three weeks"

The advisor answers with a summary and estimated cost and schedule
deltas. Unlike 'advise', this command fails when the provider is
unreachable: there is no meaningful default answer to a what-if.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		result, err := services.Advisor.SimulateScenario(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return MapError(err)
		}

		cmd.Println(result.Summary)
		cmd.Printf("Cost delta:     %s\n", formatMoney(result.CostDelta))
		cmd.Printf("Schedule delta: %d days\n", result.TimeDeltaDays)
		for _, w := range result.Warnings {
			cmd.Printf("Warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(adviseCmd)
	RootCmd.AddCommand(simulateCmd)
}
