package services

import (
	"errors"
	"fmt"
	"io"

	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

var _ driving.ExportService = (*TagApplicationWorkflow)(nil)

// errNoExporter is returned by Export when no exporter was configured.
var errNoExporter = errors.New("no exporter configured")

// SetExporter sets the format used by Export.
func (w *TagApplicationWorkflow) SetExporter(e driven.DocumentExporter) {
	w.exporter = e
}

// Export writes the visible rows in sort order, or every document in
// backing order when all is set.
func (w *TagApplicationWorkflow) Export(out io.Writer, all bool) (int, error) {
	if w.exporter == nil {
		return 0, errNoExporter
	}
	docs := w.view.Rows()
	if all {
		docs = w.view.All()
	}
	if err := w.exporter.Export(out, docs); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	return len(docs), nil
}
