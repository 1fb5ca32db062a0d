package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Alma-hanif/infinitag/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
)

// Store is a SQLite database holding the local workspace.
// Stores for each port are obtained through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.infinitag/data/workspace.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".infinitag", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "workspace.db")

	// WAL lets the TUI and a CLI invocation share the file.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// WorkspaceStore returns a WorkspaceStore interface backed by this store.
func (s *Store) WorkspaceStore() driven.WorkspaceStore {
	return &workspaceStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_workspace.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Workspace Store ====================

// workspaceStore implements driven.WorkspaceStore.
type workspaceStore struct {
	store *Store
}

var _ driven.WorkspaceStore = (*workspaceStore)(nil)

// SaveSnapshot replaces the stored documents in one transaction.
func (s *workspaceStore) SaveSnapshot(ctx context.Context, docs []domain.Document) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, position, title, type, language, size, creation_date, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position = excluded.position,
			title = excluded.title,
			type = excluded.type,
			language = excluded.language,
			size = excluded.size,
			creation_date = excluded.creation_date,
			keywords = excluded.keywords
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range docs {
		doc := &docs[i]
		keywordsJSON, err := json.Marshal(keywordsOrEmpty(doc.Keywords))
		if err != nil {
			return fmt.Errorf("marshalling keywords of %s: %w", doc.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, doc.ID, i, doc.Title, doc.Type, doc.Language, doc.Size,
			formatTime(doc.CreationDate), string(keywordsJSON)); err != nil {
			return fmt.Errorf("saving document %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored documents in saved order.
func (s *workspaceStore) LoadSnapshot(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, type, language, size, creation_date, keywords
		FROM documents ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	return result, rows.Err()
}

// SaveSelection replaces the stored selection.
func (s *workspaceStore) SaveSelection(ctx context.Context, ids []string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM selection`); err != nil {
		return fmt.Errorf("clearing selection: %w", err)
	}
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO selection (document_id, position) VALUES (?, ?)
			ON CONFLICT(document_id) DO NOTHING
		`, id, i); err != nil {
			return fmt.Errorf("saving selection: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing selection: %w", err)
	}
	return nil
}

// LoadSelection returns the stored selection in insertion order.
func (s *workspaceStore) LoadSelection(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT document_id FROM selection ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying selection: %w", err)
	}
	defer rows.Close()

	result := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning selection: %w", err)
		}
		result = append(result, id)
	}
	return result, rows.Err()
}

// SaveViewState stores the filter and sort choice.
func (s *workspaceStore) SaveViewState(ctx context.Context, state domain.ViewState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO view_state (id, filter, sort_column, descending)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filter = excluded.filter,
			sort_column = excluded.sort_column,
			descending = excluded.descending
	`, state.Filter, string(state.SortColumn), state.Descending)
	if err != nil {
		return fmt.Errorf("saving view state: %w", err)
	}
	return nil
}

// LoadViewState returns the stored view state, or the zero value.
func (s *workspaceStore) LoadViewState(ctx context.Context) (domain.ViewState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT filter, sort_column, descending FROM view_state WHERE id = 1
	`)

	var state domain.ViewState
	var column string
	if err := row.Scan(&state.Filter, &column, &state.Descending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ViewState{}, nil
		}
		return domain.ViewState{}, fmt.Errorf("scanning view state: %w", err)
	}
	state.SortColumn = domain.SortColumn(column)
	return state, nil
}

// MarkUnsynced records an unsynced row, replacing any earlier record.
func (s *workspaceStore) MarkUnsynced(ctx context.Context, row domain.UnsyncedRow) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO unsynced_rows (document_id, reason, since)
		VALUES (?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			reason = excluded.reason,
			since = excluded.since
	`, row.DocumentID, row.Reason, formatTime(row.Since))
	if err != nil {
		return fmt.Errorf("marking unsynced: %w", err)
	}
	return nil
}

// ClearUnsynced removes the record for a document.
func (s *workspaceStore) ClearUnsynced(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx, `DELETE FROM unsynced_rows WHERE document_id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("clearing unsynced: %w", err)
	}
	return nil
}

// ListUnsynced returns every unsynced record ordered by document id.
func (s *workspaceStore) ListUnsynced(ctx context.Context) ([]domain.UnsyncedRow, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT document_id, reason, since FROM unsynced_rows ORDER BY document_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying unsynced: %w", err)
	}
	defer rows.Close()

	result := make([]domain.UnsyncedRow, 0)
	for rows.Next() {
		var row domain.UnsyncedRow
		var since string
		if err := rows.Scan(&row.DocumentID, &row.Reason, &since); err != nil {
			return nil, fmt.Errorf("scanning unsynced: %w", err)
		}
		if row.Since, err = parseTime(since); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ClearAllUnsynced removes every unsynced record.
func (s *workspaceStore) ClearAllUnsynced(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM unsynced_rows`); err != nil {
		return fmt.Errorf("clearing unsynced: %w", err)
	}
	return nil
}

// ==================== Helpers ====================

func scanDocument(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var created, keywordsJSON string
	if err := rows.Scan(&doc.ID, &doc.Title, &doc.Type, &doc.Language, &doc.Size,
		&created, &keywordsJSON); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	var err error
	if doc.CreationDate, err = parseTime(created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &doc.Keywords); err != nil {
		return nil, fmt.Errorf("unmarshalling keywords of %s: %w", doc.ID, err)
	}
	if len(doc.Keywords) == 0 {
		doc.Keywords = nil
	}
	return &doc, nil
}

func keywordsOrEmpty(kws []domain.Keyword) []domain.Keyword {
	if kws == nil {
		return []domain.Keyword{}
	}
	return kws
}

// formatTime stores times as RFC 3339 text in UTC. The zero time is stored empty.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t.UTC(), nil
}
