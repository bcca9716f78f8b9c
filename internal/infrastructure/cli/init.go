package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

var (
	initDescription string
	initContractor  string
	initAddress     string
	initBudget      float64
	initContractNo  string
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new project workspace in the current directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}

		details := project.Details{
			Contractor: initContractor,
			Location:   project.Location{Address: initAddress},
			Contract:   project.Contract{ContractNumber: initContractNo},
			Financials: project.Financials{TotalBudget: initBudget},
		}
		p, err := services.Project.InitProject(args[0], details)
		if err != nil {
			return MapError(err)
		}
		if initDescription != "" {
			p.Description = initDescription
			if err := services.Workspace.Repo.SaveProject(p); err != nil {
				return MapError(err)
			}
		}

		cmd.Printf("Initialized project %q (%s)\n", p.Name, p.ID)
		cmd.Println("Next steps:")
		cmd.Println("  sazyar task add \"Excavation\" --start 2026-09-01 --duration 10")
		cmd.Println("  sazyar resource add \"Concrete C30\" --rate 120 --unit m3")
		cmd.Println("  sazyar analyze")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initDescription, "description", "", "Short project description")
	initCmd.Flags().StringVar(&initContractor, "contractor", "", "Main contractor name")
	initCmd.Flags().StringVar(&initAddress, "address", "", "Site address")
	initCmd.Flags().Float64Var(&initBudget, "budget", 0, "Contracted total budget")
	initCmd.Flags().StringVar(&initContractNo, "contract", "", "Contract number")
	RootCmd.AddCommand(initCmd)
}

// statusGlyph renders a one-character marker for task listings.
func statusGlyph(status project.TaskStatus) string {
	switch status {
	case project.StatusCompleted:
		return "✓"
	case project.StatusInProgress:
		return "▶"
	case project.StatusDelayed:
		return "!"
	default:
		return "·"
	}
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
