package cli

import (
	"fmt"
	"os"

	"github.com/sazyar/sazyar/internal/infrastructure/wiring"
)

// getProjectRoot resolves the workspace root from the --project flag,
// falling back to the current directory.
func getProjectRoot() (string, error) {
	if projectPath != "" {
		return projectPath, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", NewCLIError("Failed to determine current directory", "", err)
	}
	return cwd, nil
}

// loadServices builds the application services for the resolved workspace.
// Provider configuration problems degrade to the default provider with a
// warning instead of aborting the command.
func loadServices() (*wiring.AppServices, error) {
	root, err := getProjectRoot()
	if err != nil {
		return nil, err
	}
	services, loadErr := wiring.BuildAppServices(root)
	if services == nil {
		return nil, NewCLIError("Failed to build application services", "", loadErr)
	}
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", loadErr)
	}
	return services, nil
}

// currentActor names the human behind the command for the audit trail.
func currentActor() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown-human"
}
