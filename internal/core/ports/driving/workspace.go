package driving

import (
	"context"
	"io"
	"time"
)

// WorkspaceService keeps the table state between sessions.
type WorkspaceService interface {
	// SaveWorkspace stores the documents, selection and view state.
	SaveWorkspace(ctx context.Context) error

	// RestoreWorkspace loads the stored state into the table.
	// It reports false when no snapshot was stored.
	RestoreWorkspace(ctx context.Context) (bool, error)
}

// StatusService reports backend reachability.
type StatusService interface {
	Status(ctx context.Context) BackendStatus
}

// BackendStatus is the result of a health probe.
type BackendStatus struct {
	URL     string
	Status  string
	Latency time.Duration
	Err     error
}

// Up reports whether the backend answered with status UP.
func (s BackendStatus) Up() bool {
	return s.Err == nil && s.Status == "UP"
}

// ExportService writes the document table to a file format.
type ExportService interface {
	// Export writes the visible rows, or every document when all is set.
	// It returns the number of documents written.
	Export(w io.Writer, all bool) (int, error)
}
