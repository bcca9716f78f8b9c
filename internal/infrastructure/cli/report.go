package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the earned-value report",
	Long: `Export the analysis in one of three formats:
  csv    per-task earned-value table with a project total
  curve  the S-curve time series (planned, earned, actual)
  json   the full report document`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		out, err := services.Report.Export(reportFormat)
		if err != nil {
			return MapError(err)
		}
		if reportOut == "" {
			cmd.Print(out)
			return nil
		}
		if err := os.WriteFile(reportOut, []byte(out), 0600); err != nil {
			return NewCLIError(fmt.Sprintf("Failed to write %s", reportOut), "", err)
		}
		cmd.Printf("Report written to %s\n", reportOut)
		return nil
	},
}

var scurveCmd = &cobra.Command{
	Use:   "scurve",
	Short: "Plot the cumulative cost S-curve in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		report, err := services.Analytics.Analyze()
		if err != nil {
			return MapError(err)
		}
		curve := report.Curve
		if len(curve) == 0 {
			cmd.Println("Nothing to plot.")
			return nil
		}

		maxVal := 0.0
		for _, pt := range curve {
			if pt.PV > maxVal {
				maxVal = pt.PV
			}
			if pt.EV != nil && *pt.EV > maxVal {
				maxVal = *pt.EV
			}
			if pt.AC != nil && *pt.AC > maxVal {
				maxVal = *pt.AC
			}
		}
		if maxVal <= 0 {
			maxVal = 1
		}

		const width = 50
		cmd.Println("DATE         PV (#) / EV (=) / AC (-)")
		for _, pt := range curve {
			pv := int(pt.PV / maxVal * width)
			line := make([]rune, width+1)
			for i := range line {
				line[i] = ' '
			}
			for i := 0; i < pv; i++ {
				line[i] = '#'
			}
			if pt.EV != nil {
				ev := int(*pt.EV / maxVal * width)
				if ev >= 0 && ev <= width {
					line[ev] = '='
				}
			}
			if pt.AC != nil {
				ac := int(*pt.AC / maxVal * width)
				if ac >= 0 && ac <= width {
					line[ac] = '-'
				}
			}
			cmd.Printf("%-12s %s\n", pt.Label, string(line))
		}
		cmd.Printf("\nScale: full width = %s\n", formatMoney(maxVal))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "csv", "Output format: csv, curve or json")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write the report to a file instead of stdout")
	RootCmd.AddCommand(reportCmd)
	RootCmd.AddCommand(scurveCmd)
}
