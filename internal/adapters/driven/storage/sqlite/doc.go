// Package sqlite provides a SQLite-based implementation of the workspace store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. The workspace keeps the state of the
// document table between CLI invocations:
//
//   - the last fetched document snapshot, in table order
//   - the row selection, in insertion order
//   - the filter and sort choice
//   - rows whose keyword changes were not persisted by the server
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.infinitag/data/workspace.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
