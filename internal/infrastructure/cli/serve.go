package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sazyar/sazyar/internal/infrastructure/sse"
	"github.com/sazyar/sazyar/internal/infrastructure/watch"
	"github.com/sazyar/sazyar/internal/infrastructure/wiring"
	"github.com/sazyar/sazyar/pkg/domain/evm"
	"github.com/sazyar/sazyar/pkg/domain/project"
	"github.com/sazyar/sazyar/pkg/infrastructure/dashboard"
	"github.com/sazyar/sazyar/pkg/storage"
)

var serveAddr string

// serviceDataProvider adapts the application services to the dashboard.
type serviceDataProvider struct {
	services *wiring.AppServices
}

func (p *serviceDataProvider) GetProject() (*project.Project, error) {
	return p.services.Project.Load()
}

func (p *serviceDataProvider) GetReport() (*evm.Report, error) {
	return p.services.Analytics.Analyze()
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the project dashboard over HTTP",
	Long: `Start a local web server with the project dashboard: headline
earned-value figures, the task table and the S-curve. Connected
browsers get a live event stream at /events and refresh when the
workspace files change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return MapError(err)
		}
		root, err := getProjectRoot()
		if err != nil {
			return err
		}

		broker := sse.NewBroker()
		server, err := dashboard.NewServer(serveAddr, &serviceDataProvider{services: services}, broker)
		if err != nil {
			return MapError(err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Republish workspace file changes to connected dashboards.
		watcher, err := watch.NewFSWatcher(300*time.Millisecond, watch.WorkspaceFilter(), func(e watch.ChangeEvent) {
			events, err := services.Audit.GetTimeline()
			if err != nil || len(events) == 0 {
				return
			}
			broker.Publish(events[len(events)-1])
		})
		if err != nil {
			return NewCLIError("Failed to start the file watcher", "", err)
		}
		if err := watcher.WatchRecursive(filepath.Join(root, storage.SazyarDir)); err == nil {
			go func() { _ = watcher.Run(ctx) }()
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()

		cmd.Printf("Dashboard at http://%s (Ctrl-C to stop)\n", serveAddr)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			return MapError(err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8420", "Address to listen on")
	RootCmd.AddCommand(serveCmd)
}
