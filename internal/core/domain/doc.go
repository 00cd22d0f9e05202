// Package domain defines the core business entities for lexdraft.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Extracted text of one uploaded or seeded file
//   - Chunk: A bounded word window of a document, ready for embedding
//   - StoreEntry: An embedded chunk held by a vector partition
//   - RetrievalResult: One piece of context returned for a query
//   - CaseFacts: The structured facts a petition is drafted from
//   - RenderBlock: A parsed paragraph or table section of model output
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
