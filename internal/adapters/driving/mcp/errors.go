// Package mcp provides an MCP (Model Context Protocol) server adapter for infinitag.
// It lets AI assistants list documents, look up keywords and tag documents.
package mcp

import "errors"

var (
	// ErrMissingTaggingService is returned when the tagging service is not provided.
	ErrMissingTaggingService = errors.New("mcp: tagging service is required")

	// ErrMissingTableView is returned when the table view is not provided.
	ErrMissingTableView = errors.New("mcp: table view is required")
)
