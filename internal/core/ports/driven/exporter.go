package driven

import (
	"io"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// DocumentExporter writes documents in a file format.
type DocumentExporter interface {
	Export(w io.Writer, docs []domain.Document) error
}
