package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var projectPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "sazyar",
	Version: Version,
	Short:   "Construction project scheduling and earned-value analytics",
	Long: `Sazyar is a construction project management toolkit.
It keeps the task schedule, the resource pool and the cost actuals in one
place and answers:
1. Where does the project stand against the plan?
2. What will it cost at completion?
3. Which tasks put the finish date at risk?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "Path to the workspace root (defaults to the current directory)")
}
