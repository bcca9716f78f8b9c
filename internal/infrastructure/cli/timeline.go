package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var timelineLimit int

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the project's audit trail, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		events, err := services.Audit.GetTimeline()
		if err != nil {
			return MapError(err)
		}
		if len(events) == 0 {
			cmd.Println("No events recorded yet.")
			return nil
		}

		shown := 0
		for i := len(events) - 1; i >= 0; i-- {
			e := events[i]
			cmd.Printf("%s  %-20s %s\n", e.Timestamp.Format(time.RFC822), e.Action, e.Actor)
			shown++
			if timelineLimit > 0 && shown >= timelineLimit {
				break
			}
		}
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the audit trail's hash chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		violations, err := services.Audit.VerifyIntegrity()
		if err != nil {
			return MapError(err)
		}
		if len(violations) == 0 {
			cmd.Println("Audit trail verified: no tampering detected.")
			return nil
		}
		cmd.Printf("Audit trail FAILED verification (%d problems):\n", len(violations))
		for _, v := range violations {
			cmd.Printf("  %s\n", v)
		}
		return NewCLIError("Audit trail integrity check failed", "", nil)
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and verify the audit trail",
}

func init() {
	timelineCmd.Flags().IntVarP(&timelineLimit, "limit", "n", 0, "Show at most n events (0 = all)")
	auditCmd.AddCommand(auditVerifyCmd)
	RootCmd.AddCommand(timelineCmd)
	RootCmd.AddCommand(auditCmd)
}
