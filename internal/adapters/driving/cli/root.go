// Package cli provides the infinitag command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
	"github.com/Alma-hanif/infinitag/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	verbose   bool
	serverURL string
	configDir string
)

// Options are the global flag values handed to the setup function.
type Options struct {
	ServerURL string
	ConfigDir string
}

// NoticeSource yields the notifications raised while a command ran.
type NoticeSource interface {
	Drain() []domain.Notification
}

// Services are the core services the commands drive.
type Services struct {
	Tagging   driving.TaggingService
	Table     driving.TableView
	Catalog   driving.KeywordCatalog
	Workspace driving.WorkspaceService
	Settings  driving.SettingsService
	Status    driving.StatusService
	Export    driving.ExportService
	Notices   NoticeSource

	// Notifications feeds the TUI status bar while it runs.
	Notifications <-chan domain.Notification

	// Watch reports files dropped into a directory, for upload --watch.
	Watch WatchFunc

	// Metrics serves Prometheus metrics when mcp serve listens on HTTP.
	Metrics http.Handler
}

// WatchFunc starts watching dir and returns the paths of new files.
// The channel closes when ctx is done.
type WatchFunc func(ctx context.Context, dir string) (<-chan string, error)

// SetupFunc builds the services once flags are parsed.
// The returned cleanup runs after the command finishes.
type SetupFunc func(opts Options) (*Services, func(), error)

var (
	setupFunc SetupFunc
	cleanup   func()

	taggingService   driving.TaggingService
	tableView        driving.TableView
	keywordCatalog   driving.KeywordCatalog
	workspaceService driving.WorkspaceService
	settingsService  driving.SettingsService
	statusService    driving.StatusService
	exportService    driving.ExportService
	watchDir         WatchFunc
	notices          NoticeSource
	notificationFeed <-chan domain.Notification
	metricsHandler   http.Handler
)

var rootCmd = &cobra.Command{
	Use:   "infinitag",
	Short: "Tag documents on a tagging server",
	Long: `infinitag lists the documents held by a tagging server and attaches
keywords to them, one document at a time, in bulk over a selection, or by
running a keyword model or automated tagging method on the server.

The table, selection and filter are kept locally between invocations.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Backend URL (overrides backend.url)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.infinitag)")
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx. Notifications raised by
// the command are printed and services released whether or not it failed.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	flushNotices(rootCmd)
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
	return err
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetSetup registers the function that builds services before a command runs.
func SetSetup(fn SetupFunc) {
	setupFunc = fn
}

// SetServices installs services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	taggingService = s.Tagging
	tableView = s.Table
	keywordCatalog = s.Catalog
	workspaceService = s.Workspace
	settingsService = s.Settings
	statusService = s.Status
	exportService = s.Export
	watchDir = s.Watch
	notices = s.Notices
	notificationFeed = s.Notifications
	metricsHandler = s.Metrics
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if setupFunc == nil || cmd.Annotations[annotationSetup] == setupSkip {
		return nil
	}
	s, done, err := setupFunc(Options{ServerURL: serverURL, ConfigDir: configDir})
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	SetServices(s)
	cleanup = done
	logger.Debug("command %s ready", cmd.CommandPath())
	return nil
}

// flushNotices prints notifications raised during the command to stderr.
func flushNotices(cmd *cobra.Command) {
	if notices == nil {
		return
	}
	for _, n := range notices.Drain() {
		cmd.PrintErrf("%s: %s\n", n.Level, n.Message)
	}
}

// commandContext returns the command context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Commands annotated with annotationSetup=setupSkip run without services.
const (
	annotationSetup = "setup"
	setupSkip       = "skip"
)

var errTaggingNotConfigured = errors.New("tagging service not configured")

func requireTagging() error {
	if taggingService == nil || tableView == nil {
		return errTaggingNotConfigured
	}
	return nil
}

// loadTable restores the stored workspace, fetching from the backend when
// nothing was stored or refresh is set.
func loadTable(ctx context.Context, refresh bool) error {
	if err := requireTagging(); err != nil {
		return err
	}
	if !refresh && workspaceService != nil {
		restored, err := workspaceService.RestoreWorkspace(ctx)
		if err != nil {
			logger.Warn("restore workspace: %v", err)
		}
		if restored {
			return nil
		}
	}
	if err := taggingService.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to fetch documents: %w", err)
	}
	return nil
}

// saveTable stores the workspace. Failures are logged, not returned.
func saveTable(ctx context.Context) {
	if workspaceService == nil {
		return
	}
	if err := workspaceService.SaveWorkspace(ctx); err != nil {
		logger.Warn("save workspace: %v", err)
	}
}
