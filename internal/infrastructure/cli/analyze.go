package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sazyar/sazyar/pkg/domain/evm"
	"github.com/sazyar/sazyar/pkg/domain/project"
)

var analyzeAsOf string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run earned-value analysis on the schedule",
	Long: `Analyze the project's earned value: budget at completion, earned
value, actual cost, cost performance and the completion forecast, per
task and for the project as a whole.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}

		var report *evm.Report
		if analyzeAsOf != "" {
			asOf, err := time.Parse(project.DateLayout, analyzeAsOf)
			if err != nil {
				return NewCLIError("Invalid --as-of date", "Use the YYYY-MM-DD format", err)
			}
			report, err = services.Analytics.AnalyzeAsOf(asOf)
			if err != nil {
				return MapError(err)
			}
		} else {
			report, err = services.Analytics.Analyze()
			if err != nil {
				return MapError(err)
			}
		}

		cmd.Printf("%-28s %10s %10s %10s %6s %10s %10s\n",
			"TASK", "BAC", "EV", "AC", "CPI", "EAC", "VAC")
		for _, a := range report.Tasks {
			title := a.Task.Title
			if len(title) > 28 {
				title = title[:25] + "..."
			}
			cmd.Printf("%-28s %10s %10s %10s %6.2f %10s %10s\n",
				title, formatMoney(a.BAC), formatMoney(a.EV), formatMoney(a.AC),
				a.CPI, formatMoney(a.EAC), formatMoney(a.VAC))
		}

		s := report.Summary
		cmd.Println()
		cmd.Printf("Budget at completion:   %s\n", formatMoney(s.TotalBAC))
		cmd.Printf("Earned value:           %s\n", formatMoney(s.TotalEV))
		cmd.Printf("Actual cost:            %s\n", formatMoney(s.TotalAC))
		cmd.Printf("Cost variance:          %s\n", formatMoney(s.CV))
		cmd.Printf("Cost performance (CPI): %.2f\n", s.CPI)
		cmd.Printf("Estimate at completion: %s\n", formatMoney(s.EAC))
		cmd.Printf("Variance at completion: %s\n", formatMoney(s.VAC))

		if len(report.Anomalies) > 0 {
			cmd.Println()
			cmd.Println("Data warnings:")
			for _, a := range report.Anomalies {
				if a.TaskID != "" {
					cmd.Printf("  [%s] %s: %s\n", a.Kind, a.TaskID, a.Detail)
				} else {
					cmd.Printf("  [%s] %s\n", a.Kind, a.Detail)
				}
			}
		}
		return nil
	},
}

var ganttCmd = &cobra.Command{
	Use:   "gantt",
	Short: "Render the schedule as a text Gantt chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		g, err := services.Analytics.GanttView()
		if err != nil {
			return MapError(err)
		}
		if len(g.Bars) == 0 {
			cmd.Println("No tasks to chart.")
			return nil
		}

		const width = 60
		cmd.Printf("%s .. %s (%d days)\n",
			g.Timeline.MinDate.Format(project.DateLayout),
			g.Timeline.MaxDate.Format(project.DateLayout),
			g.Timeline.TotalDays)
		for _, bar := range g.Bars {
			title := bar.Task.Title
			if len(title) > 24 {
				title = title[:21] + "..."
			}
			from := int(bar.OffsetPct / 100 * width)
			to := int((bar.OffsetPct + bar.WidthPct) / 100 * width)
			if to <= from {
				to = from + 1
			}
			if to > width {
				to = width
			}
			line := make([]rune, width)
			for i := range line {
				if i >= from && i < to {
					line[i] = '█'
				} else {
					line[i] = '·'
				}
			}
			marker := statusGlyph(bar.Task.Status)
			if bar.Critical {
				marker += " critical"
			}
			cmd.Printf("%-24s %s %s\n", title, string(line), marker)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeAsOf, "as-of", "", "Analyze as of a date (YYYY-MM-DD) instead of today")
	RootCmd.AddCommand(analyzeCmd)
	RootCmd.AddCommand(ganttCmd)
}
