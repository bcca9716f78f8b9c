package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sazyar/sazyar/pkg/domain/project"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the project stands",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		p, err := services.Project.Load()
		if err != nil {
			return MapError(err)
		}
		s := project.BuildSnapshot(p, time.Now())

		cmd.Printf("Project:  %s\n", p.Name)
		cmd.Printf("Progress: %.0f%%\n", s.Progress)
		cmd.Printf("Tasks:    %d pending, %d in progress, %d completed, %d delayed\n",
			s.Counts.Pending, s.Counts.InProgress, s.Counts.Completed, s.Counts.Delayed)

		if len(s.ReadyTasks) > 0 {
			cmd.Println("Ready to start:")
			for _, id := range s.ReadyTasks {
				if t := p.TaskByID(id); t != nil {
					cmd.Printf("  %s  %s\n", t.ID, t.Title)
				}
			}
		}
		if len(s.BlockedTasks) > 0 {
			cmd.Println("Waiting on predecessors:")
			for _, id := range s.BlockedTasks {
				if t := p.TaskByID(id); t != nil {
					cmd.Printf("  %s  %s\n", t.ID, t.Title)
				}
			}
		}
		if p.RiskScore > 0 {
			cmd.Printf("Risk score: %.0f/100\n", p.RiskScore)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}
