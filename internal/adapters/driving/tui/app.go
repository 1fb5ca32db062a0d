package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/components/status"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/keymap"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/messages"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/styles"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/views/documents"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/views/keywords"
	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui/views/tagging"
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	documentsView *documents.View
	keywordsView  *keywords.View
	taggingView   *tagging.View
	statusBar     *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// noticeSeq identifies the notification on display so that an older
	// expiry does not clear a newer one.
	noticeSeq int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		documentsView: documents.NewView(s, km, ports.Table),
		keywordsView:  keywords.NewView(s, ports.Catalog),
		taggingView:   tagging.NewView(s, ports.Table, ports.Catalog),
		statusBar:     status.NewBar(s, km),
		currentView:   messages.ViewDocuments,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It restores or fetches the documents and starts listening for notifications.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("infinitag"),
		a.loadDocuments(false),
		a.waitForNotification(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewKeywords:
			a.keywordsView, cmd = a.keywordsView.Update(msg)
		case messages.ViewTagging:
			a.taggingView, cmd = a.taggingView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "?" || msg.String() == "q" {
				a.currentView = messages.ViewDocuments
			}
		}
		a.syncCounts()
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewTagging {
			a.taggingView.Reset()
			return a, a.ensureCatalog()
		}
		return a, nil

	case messages.PickKeyword:
		a.currentView = messages.ViewKeywords
		label := msg.DocumentID
		if doc, ok := a.ports.Table.Get(msg.DocumentID); ok {
			label = doc.DisplayTitle()
		}
		load := a.ensureCatalog()
		return a, tea.Batch(a.keywordsView.Open(msg.DocumentID, label, load != nil), load)

	case messages.KeywordPicked:
		a.currentView = messages.ViewDocuments
		if msg.DocumentID == "" {
			return a, a.applyBulk(msg.Entry)
		}
		return a, a.applyKeyword(msg.DocumentID, msg.Entry)

	case messages.RemoveKeywordRequested:
		return a, a.removeKeyword(msg.DocumentID, msg.Value)

	case messages.KeywordApplied:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.syncCounts()
		if msg.Err != nil {
			return a, tea.Batch(cmd, a.showError(msg.Err))
		}
		return a, tea.Batch(cmd, a.notify(appliedNotice(msg)))

	case messages.BulkApplied:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.syncCounts()
		if msg.Err != nil && msg.Result == nil {
			return a, tea.Batch(cmd, a.showError(msg.Err))
		}
		return a, tea.Batch(cmd, a.notify(bulkNotice(msg)))

	case messages.TaggingRequested:
		a.currentView = messages.ViewDocuments
		if a.ports.Tagging.Busy() {
			return a, a.notify(domain.Notification{
				Level: domain.NotifyWarning, Message: "A tagging request is already running",
			})
		}
		a.statusBar.SetState(status.StateBusy)
		return a, a.submitTagging(msg)

	case messages.TaggingSubmitted:
		a.statusBar.SetState(status.StateReady)
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.syncCounts()
		if msg.Err != nil {
			return a, tea.Batch(cmd, a.showError(msg.Err))
		}
		return a, tea.Batch(cmd, a.notify(domain.Notification{
			Level: domain.NotifyInfo, Message: "Tagging finished, documents refreshed",
		}))

	case messages.RefreshRequested:
		a.statusBar.SetState(status.StateLoading)
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, tea.Batch(cmd, a.loadDocuments(true))

	case messages.DocumentsLoaded:
		if a.statusBar.State() == status.StateLoading {
			a.statusBar.SetState(status.StateReady)
		}
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.syncCounts()
		if msg.Err != nil {
			return a, tea.Batch(cmd, a.showError(msg.Err))
		}
		return a, cmd

	case messages.CatalogLoaded:
		a.keywordsView, cmd = a.keywordsView.Update(msg)
		if msg.Err != nil {
			return a, tea.Batch(cmd, a.showError(msg.Err))
		}
		return a, cmd

	case messages.NotificationReceived:
		return a, a.notify(msg.Notification)

	case coreNotification:
		return a, tea.Batch(a.notify(msg.notification), a.waitForNotification())

	case messages.NotificationExpired:
		if msg.Seq == a.noticeSeq {
			a.statusBar.ClearNotification()
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, tea.Batch(cmd, a.showError(msg.Err))

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// coreNotification carries a notification read from Ports.Notifications.
type coreNotification struct {
	notification domain.Notification
}

// waitForNotification blocks on the notification feed. It returns nil when
// there is no feed or the feed is closed.
func (a *App) waitForNotification() tea.Cmd {
	ch := a.ports.Notifications
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return coreNotification{notification: n}
	}
}

// notify shows n in the status bar and schedules its expiry.
func (a *App) notify(n domain.Notification) tea.Cmd {
	a.noticeSeq++
	seq := a.noticeSeq
	a.statusBar.SetNotification(n)
	return tea.Tick(domain.NotificationDuration, func(time.Time) tea.Msg {
		return messages.NotificationExpired{Seq: seq}
	})
}

func (a *App) showError(err error) tea.Cmd {
	a.err = err
	return a.notify(domain.Notification{Level: domain.NotifyError, Message: err.Error(), Err: err})
}

// loadDocuments restores the stored workspace, or fetches from the server
// when nothing was stored or refresh is set.
func (a *App) loadDocuments(refresh bool) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		if !refresh && a.ports.Workspace != nil {
			restored, err := a.ports.Workspace.RestoreWorkspace(ctx)
			if err != nil {
				logger.Warn("restore workspace: %v", err)
			}
			if restored {
				return messages.DocumentsLoaded{}
			}
		}
		err := a.ports.Tagging.Refresh(ctx)
		if err == nil {
			a.save(ctx)
		}
		return messages.DocumentsLoaded{Err: err}
	}
}

// ensureCatalog returns a command loading the catalog, or nil when it is
// already loaded or there is no catalog.
func (a *App) ensureCatalog() tea.Cmd {
	if a.ports.Catalog == nil || len(a.ports.Catalog.Entries()) > 0 {
		return nil
	}
	ctx := a.ctx
	catalog := a.ports.Catalog
	return func() tea.Msg {
		return messages.CatalogLoaded{Err: catalog.Load(ctx)}
	}
}

func (a *App) applyKeyword(id string, entry domain.KeywordCatalogEntry) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		result, err := a.ports.Tagging.ApplyKeyword(ctx, id, entry)
		if result != nil {
			a.save(ctx)
		}
		return messages.KeywordApplied{Result: result, Err: err}
	}
}

func (a *App) applyBulk(entry domain.KeywordCatalogEntry) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		result, err := a.ports.Tagging.ApplyBulkKeywords(ctx, entry)
		if result != nil {
			a.save(ctx)
		}
		return messages.BulkApplied{Result: result, Err: err}
	}
}

func (a *App) removeKeyword(id, value string) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		result, err := a.ports.Tagging.RemoveKeyword(ctx, id, value)
		if result != nil {
			a.save(ctx)
		}
		return messages.KeywordApplied{Result: result, Err: err}
	}
}

func (a *App) submitTagging(req messages.TaggingRequested) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		resp, err := a.ports.Tagging.ApplyTaggingMethod(ctx, domain.TaggingRequest{
			Method:       req.Method,
			KeywordModel: req.Model,
		})
		if err == nil {
			a.save(ctx)
		}
		return messages.TaggingSubmitted{Response: resp, Err: err}
	}
}

func (a *App) save(ctx context.Context) {
	if a.ports.Workspace == nil {
		return
	}
	if err := a.ports.Workspace.SaveWorkspace(ctx); err != nil {
		logger.Warn("save workspace: %v", err)
	}
}

func (a *App) syncCounts() {
	a.statusBar.SetCounts(len(a.ports.Table.Rows()), len(a.ports.Table.Selected()))
}

func appliedNotice(msg messages.KeywordApplied) domain.Notification {
	r := msg.Result
	switch {
	case r == nil:
		return domain.Notification{Level: domain.NotifyInfo, Message: "No change"}
	case len(r.Removed) > 0:
		return domain.Notification{
			Level: domain.NotifyInfo, DocumentID: r.Document.ID,
			Message: fmt.Sprintf("Removed %s from %s", strings.Join(r.Removed, ", "), r.Document.DisplayTitle()),
		}
	case len(r.Added) > 0:
		return domain.Notification{
			Level: domain.NotifyInfo, DocumentID: r.Document.ID,
			Message: fmt.Sprintf("Added %s to %s", strings.Join(r.Added, ", "), r.Document.DisplayTitle()),
		}
	default:
		return domain.Notification{
			Level: domain.NotifyWarning, DocumentID: r.Document.ID,
			Message: fmt.Sprintf("No change to %s", r.Document.DisplayTitle()),
		}
	}
}

func bulkNotice(msg messages.BulkApplied) domain.Notification {
	total := len(msg.Result.Results)
	ok := msg.Result.Succeeded()
	if ok == total {
		return domain.Notification{Level: domain.NotifyInfo, Message: fmt.Sprintf("Applied to %d documents", total)}
	}
	return domain.Notification{
		Level:   domain.NotifyError,
		Message: fmt.Sprintf("Applied to %d of %d documents, %d not saved", ok, total, total-ok),
		Err:     msg.Err,
	}
}

// View implements tea.Model.
// It renders the current view and the status bar.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewKeywords:
		body = a.keywordsView.View()
	case messages.ViewTagging:
		body = a.taggingView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	case messages.ViewDocuments:
		body = a.documentsView.View()
	default:
		body = a.documentsView.View()
	}
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view from the key map.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and its views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.documentsView.SetDimensions(width, height)
	a.keywordsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
