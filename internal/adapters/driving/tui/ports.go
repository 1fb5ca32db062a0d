// Package tui provides the interactive terminal interface for infinitag.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

// Ports aggregates the driving ports and feeds the TUI needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Tagging applies keywords and runs tagging methods.
	Tagging driving.TaggingService

	// Table holds the document rows and the selection.
	Table driving.TableView

	// Catalog provides keyword suggestions. Optional.
	Catalog driving.KeywordCatalog

	// Workspace restores the table on start and stores it after changes. Optional.
	Workspace driving.WorkspaceService

	// Notifications delivers messages raised by the core. Optional.
	Notifications <-chan domain.Notification
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Tagging == nil {
		return ErrMissingTaggingService
	}
	if p.Table == nil {
		return ErrMissingTableView
	}
	return nil
}
