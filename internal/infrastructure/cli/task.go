package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sazyar/sazyar/pkg/domain/project"
	"github.com/sazyar/sazyar/pkg/domain/schedule"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the task schedule",
}

var (
	taskAddStart    string
	taskAddDuration int
	taskAddPhase    string
	taskAddWBS      string
)

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task to the schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		t, err := services.Project.AddTask(args[0], taskAddStart, taskAddDuration)
		if err != nil {
			return MapError(err)
		}
		if taskAddPhase != "" || taskAddWBS != "" {
			err = services.Project.UpdateTask(t.ID, func(task *project.Task) error {
				task.Phase = taskAddPhase
				task.WBS = taskAddWBS
				return nil
			})
			if err != nil {
				return MapError(err)
			}
		}
		cmd.Printf("Added task %s: %s (%s, %d days)\n", t.ID, t.Title, t.StartDate, t.Duration)
		return nil
	},
}

var taskListOrder string

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		p, err := services.Project.Load()
		if err != nil {
			return MapError(err)
		}
		if len(p.Tasks) == 0 {
			cmd.Println("No tasks yet. Add one with 'sazyar task add'.")
			return nil
		}

		tasks := make([]project.Task, len(p.Tasks))
		copy(tasks, p.Tasks)
		switch taskListOrder {
		case "exec":
			order, err := schedule.NewDependencyGraph(tasks).ExecutionOrder()
			if err != nil {
				return MapError(err)
			}
			pos := make(map[string]int, len(order))
			for i, id := range order {
				pos[id] = i
			}
			sort.Slice(tasks, func(i, j int) bool {
				return pos[tasks[i].ID] < pos[tasks[j].ID]
			})
		default:
			sort.Slice(tasks, func(i, j int) bool {
				if tasks[i].StartDate != tasks[j].StartDate {
					return tasks[i].StartDate < tasks[j].StartDate
				}
				return tasks[i].ID < tasks[j].ID
			})
		}

		cmd.Printf("%-38s %-3s %-28s %-12s %-12s %6s\n", "ID", "", "TITLE", "START", "FINISH", "PCT")
		for _, t := range tasks {
			title := t.Title
			if len(title) > 28 {
				title = title[:25] + "..."
			}
			cmd.Printf("%-38s %-3s %-28s %-12s %-12s %5.0f%%\n",
				t.ID, statusGlyph(t.Status), title, t.StartDate, t.FinishDate, t.PercentComplete)
		}
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show a task with its earned-value figures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		p, err := services.Project.Load()
		if err != nil {
			return MapError(err)
		}
		t := p.TaskByID(args[0])
		if t == nil {
			return MapError(&project.NotFoundError{Kind: "task", ID: args[0]})
		}

		cmd.Printf("Task:       %s\n", t.Title)
		cmd.Printf("ID:         %s\n", t.ID)
		cmd.Printf("Status:     %s\n", t.Status)
		cmd.Printf("Planned:    %s .. %s (%d days)\n", t.StartDate, t.FinishDate, t.Duration)
		if t.ActualStart != "" {
			finish := t.ActualFinish
			if finish == "" {
				finish = "-"
			}
			cmd.Printf("Actual:     %s .. %s\n", t.ActualStart, finish)
		}
		cmd.Printf("Progress:   %.0f%%\n", t.PercentComplete)
		if len(t.Predecessors) > 0 {
			cmd.Println("Depends on:")
			for _, pre := range t.Predecessors {
				cmd.Printf("  %s (%s, lag %d)\n", pre.TaskID, pre.Type, pre.Lag)
			}
		}

		a, err := services.Analytics.TaskAnalysis(t.ID)
		if err != nil {
			return MapError(err)
		}
		cmd.Println("Earned value:")
		cmd.Printf("  BAC %s  EV %s  AC %s\n", formatMoney(a.BAC), formatMoney(a.EV), formatMoney(a.AC))
		cmd.Printf("  CPI %.2f  ETC %s  EAC %s  VAC %s\n", a.CPI, formatMoney(a.ETC), formatMoney(a.EAC), formatMoney(a.VAC))
		return nil
	},
}

var (
	rescheduleStart    string
	rescheduleDuration int
)

var taskRescheduleCmd = &cobra.Command{
	Use:   "reschedule <task-id>",
	Short: "Change a task's planned start and duration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		if err := services.Project.RescheduleTask(args[0], rescheduleStart, rescheduleDuration); err != nil {
			return MapError(err)
		}
		cmd.Printf("Rescheduled %s to %s (%d days)\n", args[0], rescheduleStart, rescheduleDuration)
		return nil
	},
}

var taskProgressCmd = &cobra.Command{
	Use:   "progress <task-id> <percent>",
	Short: "Record physical progress on a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		var pct float64
		if _, err := fmt.Sscanf(args[1], "%f", &pct); err != nil {
			return NewCLIError(fmt.Sprintf("Invalid percentage %q", args[1]), "Use a number between 0 and 100", err)
		}
		if err := services.Project.SetTaskProgress(args[0], pct); err != nil {
			return MapError(err)
		}
		cmd.Printf("Task %s progress set to %.0f%%\n", args[0], pct)
		return nil
	},
}

var taskCostCmd = &cobra.Command{
	Use:   "cost <task-id> <amount>",
	Short: "Record the actual cost spent on a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		var amount float64
		if _, err := fmt.Sscanf(args[1], "%f", &amount); err != nil {
			return NewCLIError(fmt.Sprintf("Invalid amount %q", args[1]), "", err)
		}
		if err := services.Project.SetTaskActualCost(args[0], amount); err != nil {
			return MapError(err)
		}
		cmd.Printf("Task %s actual cost set to %s\n", args[0], formatMoney(amount))
		return nil
	},
}

var fixedCostClear bool

var taskFixedCostCmd = &cobra.Command{
	Use:   "budget <task-id> [amount]",
	Short: "Set or clear a task's fixed budget override",
	Long: `Set a fixed budget for a task, overriding the resource-derived one.
An explicit budget of 0 is honored. Use --clear to return to the
resource-derived budget.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		if fixedCostClear {
			if err := services.Project.SetTaskFixedCost(args[0], nil); err != nil {
				return MapError(err)
			}
			cmd.Printf("Task %s budget override cleared\n", args[0])
			return nil
		}
		if len(args) < 2 {
			return NewCLIError("Missing budget amount", "Pass an amount, or --clear to remove the override", nil)
		}
		var amount float64
		if _, err := fmt.Sscanf(args[1], "%f", &amount); err != nil {
			return NewCLIError(fmt.Sprintf("Invalid amount %q", args[1]), "", err)
		}
		if err := services.Project.SetTaskFixedCost(args[0], &amount); err != nil {
			return MapError(err)
		}
		cmd.Printf("Task %s budget fixed at %s\n", args[0], formatMoney(amount))
		return nil
	},
}

var (
	linkType   string
	linkLag    int
	linkRemove bool
)

var taskLinkCmd = &cobra.Command{
	Use:   "link <task-id> <predecessor-id>",
	Short: "Add or remove a dependency link between tasks",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		if linkRemove {
			if err := services.Project.RemovePredecessor(args[0], args[1]); err != nil {
				return MapError(err)
			}
			cmd.Printf("Removed link %s -> %s\n", args[1], args[0])
			return nil
		}
		if err := services.Project.AddPredecessor(args[0], args[1], project.PredecessorType(linkType), linkLag); err != nil {
			return MapError(err)
		}
		cmd.Printf("Linked %s -> %s (%s)\n", args[1], args[0], linkType)
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Remove a task from the schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		if err := services.Project.RemoveTask(args[0]); err != nil {
			return MapError(err)
		}
		cmd.Printf("Removed task %s\n", args[0])
		return nil
	},
}

// createTaskCommand builds a lifecycle subcommand that fires one FSM event.
func createTaskCommand(event, short string) *cobra.Command {
	return &cobra.Command{
		Use:   event + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := loadServices()
			if err != nil {
				return MapError(err)
			}
			if err := services.Project.TransitionTask(args[0], event, currentActor()); err != nil {
				return MapError(err)
			}
			cmd.Printf("Task %s: %s\n", args[0], event)
			return nil
		},
	}
}

func init() {
	taskAddCmd.Flags().StringVar(&taskAddStart, "start", "", "Planned start date (YYYY-MM-DD)")
	taskAddCmd.Flags().IntVar(&taskAddDuration, "duration", 1, "Planned duration in days")
	taskAddCmd.Flags().StringVar(&taskAddPhase, "phase", "", "Project phase the task belongs to")
	taskAddCmd.Flags().StringVar(&taskAddWBS, "wbs", "", "WBS code for display")
	taskAddCmd.MarkFlagRequired("start")

	taskRescheduleCmd.Flags().StringVar(&rescheduleStart, "start", "", "New planned start date (YYYY-MM-DD)")
	taskRescheduleCmd.Flags().IntVar(&rescheduleDuration, "duration", 1, "New planned duration in days")
	taskRescheduleCmd.MarkFlagRequired("start")

	taskFixedCostCmd.Flags().BoolVar(&fixedCostClear, "clear", false, "Remove the fixed budget override")

	taskListCmd.Flags().StringVar(&taskListOrder, "order", "start", "List order: start (by planned date) or exec (predecessors first)")

	taskLinkCmd.Flags().StringVar(&linkType, "type", "FS", "Link type: FS, SS, FF or SF")
	taskLinkCmd.Flags().IntVar(&linkLag, "lag", 0, "Lag in days")
	taskLinkCmd.Flags().BoolVar(&linkRemove, "remove", false, "Remove the link instead of adding it")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskRescheduleCmd)
	taskCmd.AddCommand(taskProgressCmd)
	taskCmd.AddCommand(taskCostCmd)
	taskCmd.AddCommand(taskFixedCostCmd)
	taskCmd.AddCommand(taskLinkCmd)
	taskCmd.AddCommand(taskRmCmd)

	taskCmd.AddCommand(createTaskCommand("start", "Start work on a task"))
	taskCmd.AddCommand(createTaskCommand("complete", "Mark a task as completed"))
	taskCmd.AddCommand(createTaskCommand("delay", "Flag a task as delayed"))
	taskCmd.AddCommand(createTaskCommand("resume", "Resume a delayed task"))
	taskCmd.AddCommand(createTaskCommand("stop", "Stop a task and return it to pending"))
	taskCmd.AddCommand(createTaskCommand("reopen", "Reopen a completed task"))

	RootCmd.AddCommand(taskCmd)
}
