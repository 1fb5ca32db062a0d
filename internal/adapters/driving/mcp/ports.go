package mcp

import (
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Tagging applies and removes keywords.
	Tagging driving.TaggingService

	// Table holds the document rows.
	Table driving.TableView

	// Catalog provides keyword suggestions. Optional.
	Catalog driving.KeywordCatalog

	// Workspace stores the table after each change. Optional.
	Workspace driving.WorkspaceService
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
