package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Alma-hanif/infinitag/internal/adapters/driven/export"
	"github.com/Alma-hanif/infinitag/internal/adapters/driven/notify"
	"github.com/Alma-hanif/infinitag/internal/adapters/driven/storage/memory"
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
	"github.com/Alma-hanif/infinitag/internal/core/services"
)

// fakeBackend is an in-memory tagging server.
type fakeBackend struct {
	mu sync.Mutex

	docs      []domain.Document
	catalog   []domain.KeywordCatalogEntry
	models    []domain.KeywordModel
	fetchErr  error
	persistFn func(doc *domain.Document) error
	health    string
	healthErr error
	status    int

	persisted map[string][]domain.Keyword
	uploaded  []string
	submitted []domain.TaggingRequest
}

var _ driven.Backend = (*fakeBackend)(nil)

func (b *fakeBackend) FetchDocuments(context.Context) ([]domain.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	out := make([]domain.Document, len(b.docs))
	for i := range b.docs {
		out[i] = b.docs[i].Clone()
	}
	return out, nil
}

func (b *fakeBackend) PersistKeywords(_ context.Context, doc *domain.Document) error {
	if b.persistFn != nil {
		if err := b.persistFn(doc); err != nil {
			return err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.persisted == nil {
		b.persisted = make(map[string][]domain.Keyword)
	}
	b.persisted[doc.ID] = append([]domain.Keyword(nil), doc.Keywords...)
	return nil
}

func (b *fakeBackend) UploadDocument(_ context.Context, name string, content io.Reader) (*domain.Document, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploaded = append(b.uploaded, name)
	doc := domain.Document{ID: name, Title: name, Size: int64(len(data))}
	b.docs = append(b.docs, doc)
	return &doc, nil
}

func (b *fakeBackend) DownloadDocuments(_ context.Context, ids []string, w io.Writer) error {
	_, err := io.WriteString(w, strings.Join(ids, ","))
	return err
}

func (b *fakeBackend) FetchKeywordCatalog(context.Context) ([]domain.KeywordCatalogEntry, error) {
	return b.catalog, nil
}

func (b *fakeBackend) FetchKeywordModels(context.Context) ([]domain.KeywordModel, error) {
	return b.models, nil
}

func (b *fakeBackend) SubmitTagging(_ context.Context, req domain.TaggingRequest) (*domain.TaggingResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitted = append(b.submitted, req)
	status := b.status
	if status == 0 {
		status = 200
	}
	return &domain.TaggingResponse{Status: status}, nil
}

func (b *fakeBackend) Health(context.Context) (string, error) {
	if b.health == "" && b.healthErr == nil {
		return "UP", nil
	}
	return b.health, b.healthErr
}

func (b *fakeBackend) persistedValues(id string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, k := range b.persisted[id] {
		out = append(out, k.Value)
	}
	return out
}

// testEnv holds the services installed for a test.
type testEnv struct {
	backend   *fakeBackend
	workflow  *services.TagApplicationWorkflow
	table     *services.DocumentTableView
	workspace *memory.WorkspaceStore
	notices   *notify.Collector
}

func testDocuments() []domain.Document {
	return []domain.Document{
		{
			ID: "report.pdf", Title: "Annual report", Type: "pdf", Language: "en", Size: 2048,
			CreationDate: time.Date(2023, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ID: "notes.txt", Title: "Meeting notes", Type: "txt", Language: "fr", Size: 300,
			Keywords: []domain.Keyword{{Value: "meeting", Type: domain.KeywordManual}},
		},
	}
}

// setupTestServices installs real services over a fake backend and
// resets command flags. Services are removed when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	backend := &fakeBackend{
		docs: testDocuments(),
		catalog: []domain.KeywordCatalogEntry{
			{ID: "football", Parents: []string{"sport"}},
			{ID: "sport"},
		},
		models: []domain.KeywordModel{{ID: "topics", Keywords: []string{"sport", "finance"}}},
	}
	table := services.NewDocumentTableView()
	collector := notify.NewCollector()
	workspace := memory.NewWorkspaceStore()

	workflow := services.NewTagApplicationWorkflow(table, backend, backend, collector)
	workflow.SetWorkspace(workspace)
	workflow.SetExporter(export.XLSX{})

	SetServices(&Services{
		Tagging:   workflow,
		Table:     table,
		Catalog:   services.NewKeywordCatalog(backend),
		Workspace: workflow,
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
		Status:    services.NewStatusService(backend, "http://tags.test"),
		Export:    workflow,
		Notices:   collector,
	})
	resetFlags(rootCmd)
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
	})

	return &testEnv{
		backend:   backend,
		workflow:  workflow,
		table:     table,
		workspace: workspace,
		notices:   collector,
	}
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns everything written.
// Flags are reset first since cobra keeps parsed values between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()
	err := ExecuteContext(context.Background())
	return buf.String(), err
}

var errBoom = errors.New("boom")
