// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentBackend: Document listing, keyword persistence, upload, download
//   - KeywordBackend: Keyword catalog and keyword models
//   - TaggingBackend: Tagging method submission
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Notifier: User-facing notifications. Without it, notifications are only logged.
//   - WorkspaceStore: Local table state. Without it, nothing survives the process.
//   - MetricsRecorder: Tagging counters. NopMetrics is used when unset.
//   - DocumentExporter: Spreadsheet export of the table.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
