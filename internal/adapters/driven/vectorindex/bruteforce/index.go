// Package bruteforce provides an exact cosine-similarity vector index.
//
// The index keeps all vectors in memory and scans them linearly on every
// search. At the scale of a personal document set (hundreds to thousands
// of chunks) this is faster and simpler than an approximate structure,
// and it makes tie ordering fully deterministic: equal similarities are
// returned in insertion order, and that order survives persistence.
package bruteforce

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is a single indexed vector. Entries are kept in insertion order;
// that order is the tie-breaker for equal similarities.
type entry struct {
	chunkID   string
	embedding []float32
}

// Index is an in-memory brute-force cosine similarity index.
// A single RWMutex serialises writers against readers, so a search
// always sees a consistent snapshot.
type Index struct {
	mu        sync.RWMutex
	dimension int
	path      string
	entries   []entry
	byID      map[string]int
}

// New creates an empty index for vectors of the given dimension,
// persisted at path. An empty path disables persistence.
func New(dimension int, path string) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension %d must be positive", domain.ErrInvalidParameter, dimension)
	}
	return &Index{
		dimension: dimension,
		path:      path,
		byID:      make(map[string]int),
	}, nil
}

// Insert stores a vector for the given chunk ID. Re-inserting an existing
// chunk ID replaces the prior entry in place, keeping its insertion rank.
func (idx *Index) Insert(_ context.Context, chunkID string, embedding []float32) error {
	if len(embedding) != idx.dimension {
		return fmt.Errorf("%w: got %d, index dimension is %d",
			domain.ErrDimensionMismatch, len(embedding), idx.dimension)
	}

	// Copy so later caller mutations cannot corrupt the index.
	vec := make([]float32, len(embedding))
	copy(vec, embedding)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if pos, ok := idx.byID[chunkID]; ok {
		idx.entries[pos].embedding = vec
		return nil
	}

	idx.byID[chunkID] = len(idx.entries)
	idx.entries = append(idx.entries, entry{chunkID: chunkID, embedding: vec})
	return nil
}

// Delete removes a vector from the index. Unknown IDs are a no-op.
func (idx *Index) Delete(_ context.Context, chunkID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	pos, ok := idx.byID[chunkID]
	if !ok {
		return nil
	}

	idx.entries = append(idx.entries[:pos], idx.entries[pos+1:]...)
	delete(idx.byID, chunkID)
	for i := pos; i < len(idx.entries); i++ {
		idx.byID[idx.entries[i].chunkID] = i
	}
	return nil
}

// Search finds the k most similar entries to the query vector.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d, index dimension is %d",
			domain.ErrDimensionMismatch, len(query), idx.dimension)
	}
	if k <= 0 {
		return []driven.VectorHit{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type scored struct {
		hit  driven.VectorHit
		rank int // insertion rank, the tie-breaker
	}

	scores := make([]scored, 0, len(idx.entries))
	for rank, e := range idx.entries {
		scores = append(scores, scored{
			hit: driven.VectorHit{
				ChunkID:    e.chunkID,
				Similarity: cosineSimilarity(query, e.embedding),
			},
			rank: rank,
		})
	}

	// Insertion sort by descending similarity, stable on insertion rank.
	// The candidate set is small enough that this beats setting up a heap.
	for i := 1; i < len(scores); i++ {
		for j := i; j > 0; j-- {
			a, b := scores[j-1], scores[j]
			if b.hit.Similarity > a.hit.Similarity ||
				(b.hit.Similarity == a.hit.Similarity && b.rank < a.rank) {
				scores[j-1], scores[j] = b, a
			} else {
				break
			}
		}
	}

	if k > len(scores) {
		k = len(scores)
	}
	hits := make([]driven.VectorHit, k)
	for i := 0; i < k; i++ {
		hits[i] = scores[i].hit
	}
	return hits, nil
}

// Dimension returns the configured vector dimension.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

// cosineSimilarity computes the normalised dot product of two vectors.
// Accumulation in float64 keeps the score stable across vector lengths.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
