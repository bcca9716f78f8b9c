package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Manage the resource pool",
}

var (
	resourceAddType string
	resourceAddUnit string
	resourceAddRate float64
)

var resourceAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a resource with its cost rate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		r, err := services.Project.AddResource(args[0], project.ResourceType(resourceAddType), resourceAddUnit, resourceAddRate)
		if err != nil {
			return MapError(err)
		}
		cmd.Printf("Added resource %s: %s (%s per %s)\n", r.ID, r.Name, formatMoney(r.CostRate), r.Unit)
		return nil
	},
}

var resourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		p, err := services.Project.Load()
		if err != nil {
			return MapError(err)
		}
		if len(p.Resources) == 0 {
			cmd.Println("No resources yet. Add one with 'sazyar resource add'.")
			return nil
		}
		cmd.Printf("%-38s %-24s %-10s %-8s %10s\n", "ID", "NAME", "TYPE", "UNIT", "RATE")
		for _, r := range p.Resources {
			cmd.Printf("%-38s %-24s %-10s %-8s %10s\n", r.ID, r.Name, r.Type, r.Unit, formatMoney(r.CostRate))
		}
		return nil
	},
}

var resourceRateCmd = &cobra.Command{
	Use:   "rate <resource-id> <rate>",
	Short: "Update a resource's cost rate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		var rate float64
		if _, err := fmt.Sscanf(args[1], "%f", &rate); err != nil {
			return NewCLIError(fmt.Sprintf("Invalid rate %q", args[1]), "", err)
		}
		if err := services.Project.UpdateResourceRate(args[0], rate); err != nil {
			return MapError(err)
		}
		cmd.Printf("Resource %s rate set to %s\n", args[0], formatMoney(rate))
		return nil
	},
}

var assignQuantity float64

var resourceAssignCmd = &cobra.Command{
	Use:   "assign <task-id> <resource-id>",
	Short: "Assign a resource quantity to a task",
	Long: `Assign a resource to a task with a quantity. Assigning the same
resource again replaces the quantity instead of stacking a second
assignment.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		if err := services.Project.AssignResource(args[0], args[1], assignQuantity); err != nil {
			return MapError(err)
		}
		cmd.Printf("Assigned %.2f of %s to %s\n", assignQuantity, args[1], args[0])
		return nil
	},
}

var resourceRmCmd = &cobra.Command{
	Use:   "rm <resource-id>",
	Short: "Remove a resource from the pool",
	Long: `Remove a resource. Task assignments referencing it are kept and
resolve to zero cost until the assignment is removed or the resource
is re-created.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		if err := services.Project.RemoveResource(args[0]); err != nil {
			return MapError(err)
		}
		cmd.Printf("Removed resource %s\n", args[0])
		return nil
	},
}

func init() {
	resourceAddCmd.Flags().StringVar(&resourceAddType, "type", "material", "Resource type: work, material, equipment or cost")
	resourceAddCmd.Flags().StringVar(&resourceAddUnit, "unit", "", "Measurement unit, e.g. m3 or person-day")
	resourceAddCmd.Flags().Float64Var(&resourceAddRate, "rate", 0, "Cost per unit")

	resourceAssignCmd.Flags().Float64Var(&assignQuantity, "quantity", 1, "Quantity of the resource to assign")

	resourceCmd.AddCommand(resourceAddCmd)
	resourceCmd.AddCommand(resourceListCmd)
	resourceCmd.AddCommand(resourceRateCmd)
	resourceCmd.AddCommand(resourceAssignCmd)
	resourceCmd.AddCommand(resourceRmCmd)

	RootCmd.AddCommand(resourceCmd)
}
