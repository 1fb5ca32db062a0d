package tui

import "errors"

// ErrMissingTaggingService is returned when the tagging service is not provided.
var ErrMissingTaggingService = errors.New("tui: tagging service is required")

// ErrMissingTableView is returned when the table view is not provided.
var ErrMissingTableView = errors.New("tui: table view is required")
