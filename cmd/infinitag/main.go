// Command infinitag tags documents held by a tagging server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/Alma-hanif/infinitag/internal/adapters/driven/backend/rest"
	"github.com/Alma-hanif/infinitag/internal/adapters/driven/config/file"
	"github.com/Alma-hanif/infinitag/internal/adapters/driven/export"
	"github.com/Alma-hanif/infinitag/internal/adapters/driven/notify"
	"github.com/Alma-hanif/infinitag/internal/adapters/driven/storage/sqlite"
	"github.com/Alma-hanif/infinitag/internal/adapters/driven/watch"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/cli"
	"github.com/Alma-hanif/infinitag/internal/core/services"
	"github.com/Alma-hanif/infinitag/internal/logger"
	"github.com/Alma-hanif/infinitag/internal/observability/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetSetup(newServices)

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newServices wires the adapters behind the core services.
func newServices(opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("settings: %w", err)
	}
	if opts.ServerURL != "" {
		settings.Backend.URL = strings.TrimRight(opts.ServerURL, "/")
	}
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}
	logger.Debug("Using backend %s", settings.Backend.URL)

	store, err := sqlite.NewStore(settings.Workspace.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("workspace store: %w", err)
	}

	backend := rest.New(rest.ConfigFromSettings(settings.Backend))
	collector := notify.NewCollector()
	feed := notify.NewChannel(32)
	taggingMetrics := metrics.NewTaggingMetrics()

	table := services.NewDocumentTableView()
	workflow := services.NewTagApplicationWorkflow(
		table, backend, backend,
		notify.Multi{notify.LogNotifier{}, collector, feed},
	)
	workflow.SetWorkspace(store.WorkspaceStore())
	workflow.SetMetrics(taggingMetrics)
	workflow.SetJobIDGenerator(uuid.NewString)
	workflow.SetConcurrency(settings.Bulk.Concurrency)
	workflow.SetExporter(export.XLSX{})

	s := &cli.Services{
		Tagging:       workflow,
		Table:         table,
		Catalog:       services.NewKeywordCatalog(backend),
		Workspace:     workflow,
		Settings:      settingsService,
		Status:        services.NewStatusService(backend, backend.BaseURL()),
		Export:        workflow,
		Notices:       collector,
		Notifications: feed.C(),
		Watch: func(ctx context.Context, dir string) (<-chan string, error) {
			return watch.New(dir, 0).Watch(ctx)
		},
		Metrics: taggingMetrics.Handler(),
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing workspace store: %v", err)
		}
	}
	return s, cleanup, nil
}
