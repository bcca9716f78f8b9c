package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sazyar/sazyar/internal/infrastructure/watch"
	"github.com/sazyar/sazyar/pkg/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and re-run analysis on every change",
	Long: `Watch the workspace files and print a fresh earned-value summary
whenever the project document changes, from this terminal or another
process. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		root, err := getProjectRoot()
		if err != nil {
			return err
		}

		printSummary := func() {
			report, err := services.Analytics.Analyze()
			if err != nil {
				cmd.Printf("%s  analysis failed: %v\n", time.Now().Format("15:04:05"), err)
				return
			}
			s := report.Summary
			cmd.Printf("%s  BAC %s  EV %s  AC %s  CPI %.2f  EAC %s\n",
				time.Now().Format("15:04:05"),
				formatMoney(s.TotalBAC), formatMoney(s.TotalEV), formatMoney(s.TotalAC),
				s.CPI, formatMoney(s.EAC))
		}

		watcher, err := watch.NewFSWatcher(300*time.Millisecond, watch.WorkspaceFilter(), func(e watch.ChangeEvent) {
			printSummary()
		})
		if err != nil {
			return NewCLIError("Failed to start the file watcher", "", err)
		}

		workspaceDir := filepath.Join(root, storage.SazyarDir)
		if err := watcher.WatchRecursive(workspaceDir); err != nil {
			return NewCLIError(fmt.Sprintf("Failed to watch %s", workspaceDir), "Run 'sazyar init <name>' first", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd.Printf("Watching %s (Ctrl-C to stop)\n", workspaceDir)
		printSummary()
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			return MapError(err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
}
