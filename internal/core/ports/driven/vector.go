package driven

import "context"

// VectorIndex stores chunk embeddings and answers nearest-neighbour
// queries by cosine similarity.
//
// Implementations must serialise concurrent inserts and deletes against
// concurrent searches: a search never observes a partially inserted
// vector. Results are ordered by descending similarity with ties broken
// by insertion order, and that ordering must survive a persist/load
// round trip.
type VectorIndex interface {
	// Insert stores a vector for the given chunk ID. Re-inserting an
	// existing chunk ID replaces the prior entry in place, keeping its
	// original insertion rank. Fails with domain.ErrDimensionMismatch
	// if the vector length does not match the index dimension; the
	// index state is unchanged on failure.
	Insert(ctx context.Context, chunkID string, embedding []float32) error

	// Delete removes a vector from the index. Deleting an unknown chunk
	// ID is a no-op, not an error.
	Delete(ctx context.Context, chunkID string) error

	// Search finds the k most similar entries to the query vector.
	// Returns at most k hits in descending similarity order. An empty
	// index returns an empty result. Fails with
	// domain.ErrDimensionMismatch on a wrong-sized query.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Dimension returns the configured vector dimension.
	Dimension() int

	// Len returns the number of indexed vectors.
	Len() int

	// Persist writes the index to its durable store. Vectors round-trip
	// bit-for-bit.
	Persist() error

	// Load restores the index from its durable store. A missing store
	// leaves the index empty.
	Load() error

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score.
	Similarity float64
}
