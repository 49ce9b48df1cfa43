// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// Each external dependency of the retrieval pipeline sits behind one of
// these interfaces so that it can be swapped for a test double:
//
//   - EmbeddingService: external embeddings API
//   - LLMService: external completion API
//   - VectorIndex: similarity search over chunk embeddings
//   - DocumentStore: registry of documents and chunks
//   - Normaliser: raw bytes to plain text
//   - PostProcessor: document text to chunks
//
// Implementations live in internal/adapters/driven, internal/normalisers
// and internal/postprocessors.
package driven
