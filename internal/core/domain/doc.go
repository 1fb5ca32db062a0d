// Package domain defines the core business entities for infinitag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A row of the document table with its keywords
//   - Keyword: A tag attached to a document (manual, keyword model or ML)
//   - KeywordCatalogEntry: A known keyword with its ancestor ids
//   - TaggingRequest: A submission of a tagging method over documents
//
// # Invariants
//
// A document's keywords never hold two entries with the same value, and
// they are kept sorted ascending by value.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
