package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a document with the same content has
	// already been ingested.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidParameter indicates malformed input or configuration,
	// such as a chunk overlap that is not smaller than the chunk size.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDimensionMismatch indicates a vector whose length does not match
	// the index's configured dimension. The index rejects the operation
	// and its state is unchanged.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbedding indicates the external embedding service failed after
	// bounded retries.
	ErrEmbedding = errors.New("embedding failed")

	// ErrComposition indicates the external LLM call failed after bounded
	// retries. The caller decides the user-facing fallback text.
	ErrComposition = errors.New("answer composition failed")

	// ErrUnsupportedType indicates an upload with no matching normaliser.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and retrieval are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Question answering is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the external API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
