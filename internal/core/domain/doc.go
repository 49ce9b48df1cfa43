// Package domain defines the core business entities for DocuBot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document with registry metadata
//   - Chunk: A bounded span of document text, the unit of embedding
//   - RetrievedChunk: A chunk paired with a similarity score
//   - Answer: The composed answer to a user question
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
