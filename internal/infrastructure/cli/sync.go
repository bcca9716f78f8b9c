package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sazyar/sazyar/pkg/domain"
	"github.com/sazyar/sazyar/pkg/storage"
)

var (
	syncGCPProject string
	syncUID        string
	syncPull       bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the workspace with Firestore",
	Long: `Push the local project document and audit trail to Firestore, or
pull the cloud copy into the workspace with --pull. The document lives at
users/{uid}/projects/default with an events subcollection.

Credentials come from the standard Google application-default mechanism
(GOOGLE_APPLICATION_CREDENTIALS or gcloud auth).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		if syncUID == "" {
			syncUID = os.Getenv("SAZYAR_UID")
		}
		if syncUID == "" {
			return NewCLIError("Missing user ID", "Pass --uid or set SAZYAR_UID", nil)
		}

		remote, err := storage.NewFirestoreRepository(cmd.Context(), syncGCPProject, syncUID)
		if err != nil {
			return NewCLIError("Failed to connect to Firestore", "Check GOOGLE_APPLICATION_CREDENTIALS and --gcp-project", err)
		}
		defer remote.Close()

		local := services.Workspace.Repo
		var src, dst domain.ProjectRepository = local, remote
		if syncPull {
			src, dst = remote, local
		}

		p, err := src.LoadProject()
		if err != nil {
			return MapError(err)
		}
		if p == nil {
			return NewCLIError("Nothing to sync: no project document found", "", nil)
		}
		if syncPull && !local.IsInitialized() {
			if err := local.Initialize(); err != nil {
				return MapError(err)
			}
		}
		if err := dst.SaveProject(p); err != nil {
			return MapError(err)
		}

		events, err := src.LoadEvents()
		if err != nil {
			return MapError(err)
		}
		// Both stores are append-only; skip events the destination already
		// holds so repeated syncs stay idempotent.
		existing, err := dst.LoadEvents()
		if err != nil {
			return MapError(err)
		}
		seen := make(map[string]bool, len(existing))
		for _, e := range existing {
			seen[e.ID] = true
		}
		pushed := 0
		for _, e := range events {
			if seen[e.ID] {
				continue
			}
			if err := dst.RecordEvent(e); err != nil {
				return MapError(err)
			}
			pushed++
		}

		direction := "pushed to"
		if syncPull {
			direction = "pulled from"
		}
		cmd.Printf("Project %q and %d new events %s Firestore (uid %s)\n", p.Name, pushed, direction, syncUID)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncGCPProject, "gcp-project", "", "Google Cloud project ID")
	syncCmd.Flags().StringVar(&syncUID, "uid", "", "User ID owning the cloud document")
	syncCmd.Flags().BoolVar(&syncPull, "pull", false, "Pull the cloud copy into the workspace instead of pushing")
	syncCmd.MarkFlagRequired("gcp-project")
	RootCmd.AddCommand(syncCmd)
}
