package bruteforce

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

func newTestIndex(t *testing.T, dimension int) *Index {
	t.Helper()
	idx, err := New(dimension, "")
	require.NoError(t, err)
	return idx
}

func TestNew_InvalidDimension(t *testing.T) {
	_, err := New(0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = New(-3, "")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestIndex_InsertAndSearchSelf(t *testing.T) {
	idx := newTestIndex(t, 3)
	ctx := context.Background()

	vec := []float32{0.5, 0.3, 0.8}
	require.NoError(t, idx.Insert(ctx, "chunk-1", vec))

	hits, err := idx.Search(ctx, vec, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "chunk-1", hits[0].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
}

func TestIndex_InsertDimensionMismatchLeavesStateUnchanged(t *testing.T) {
	idx := newTestIndex(t, 3)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "chunk-1", []float32{1, 0, 0}))

	err := idx.Insert(ctx, "chunk-2", []float32{1, 0})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 1, idx.Len())
}

func TestIndex_InsertReplacesKeepingRank(t *testing.T) {
	idx := newTestIndex(t, 2)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Insert(ctx, "b", []float32{1, 0}))

	// Replace a's vector; with equal similarity it must still rank first
	require.NoError(t, idx.Insert(ctx, "a", []float32{0, 1}))
	assert.Equal(t, 2, idx.Len())

	hits, err := idx.Search(ctx, []float32{0.5, 0.5}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.InDelta(t, hits[0].Similarity, hits[1].Similarity, 1e-9)
	assert.Equal(t, "a", hits[0].ChunkID)
}

func TestIndex_SearchOrdersByDescendingSimilarity(t *testing.T) {
	idx := newTestIndex(t, 2)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "far", []float32{0, 1}))
	require.NoError(t, idx.Insert(ctx, "near", []float32{1, 0}))
	require.NoError(t, idx.Insert(ctx, "mid", []float32{1, 1}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "near", hits[0].ChunkID)
	assert.Equal(t, "mid", hits[1].ChunkID)
	assert.Equal(t, "far", hits[2].ChunkID)
	assert.GreaterOrEqual(t, hits[0].Similarity, hits[1].Similarity)
	assert.GreaterOrEqual(t, hits[1].Similarity, hits[2].Similarity)
}

func TestIndex_SearchTieBreaksByInsertionOrder(t *testing.T) {
	idx := newTestIndex(t, 2)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "second", []float32{2, 0}))
	require.NoError(t, idx.Insert(ctx, "third", []float32{3, 0}))
	require.NoError(t, idx.Insert(ctx, "first", []float32{1, 0}))

	// All three are parallel to the query: identical similarity
	hits, err := idx.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "second", hits[0].ChunkID)
	assert.Equal(t, "third", hits[1].ChunkID)
	assert.Equal(t, "first", hits[2].ChunkID)
}

func TestIndex_SearchEmptyIndex(t *testing.T) {
	idx := newTestIndex(t, 2)

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_SearchKClamped(t *testing.T) {
	idx := newTestIndex(t, 2)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "only", []float32{1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = idx.Search(ctx, []float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_SearchDimensionMismatch(t *testing.T) {
	idx := newTestIndex(t, 3)

	_, err := idx.Search(context.Background(), []float32{1, 0}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestIndex_DeleteThenSearch(t *testing.T) {
	idx := newTestIndex(t, 2)
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "keep", []float32{1, 0}))
	require.NoError(t, idx.Insert(ctx, "drop", []float32{1, 0}))

	require.NoError(t, idx.Delete(ctx, "drop"))
	assert.Equal(t, 1, idx.Len())

	hits, err := idx.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "keep", hits[0].ChunkID)

	// Unknown IDs are a no-op
	require.NoError(t, idx.Delete(ctx, "never-existed"))
}

func TestIndex_InsertCopiesVector(t *testing.T) {
	idx := newTestIndex(t, 2)
	ctx := context.Background()

	vec := []float32{1, 0}
	require.NoError(t, idx.Insert(ctx, "a", vec))

	// Mutating the caller's slice must not affect the index
	vec[0] = 0
	vec[1] = 1

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestIndex_PersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")
	ctx := context.Background()

	idx, err := New(2, path)
	require.NoError(t, err)
	require.NoError(t, idx.Insert(ctx, "b", []float32{1, 0}))
	require.NoError(t, idx.Insert(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Insert(ctx, "c", []float32{0, 1}))
	require.NoError(t, idx.Persist())

	loaded, err := New(2, path)
	require.NoError(t, err)
	require.NoError(t, loaded.Load())
	assert.Equal(t, 3, loaded.Len())

	// Insertion order, and therefore tie ordering, survives persistence
	before, err := idx.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	after, err := loaded.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, "b", after[0].ChunkID)
	assert.Equal(t, "a", after[1].ChunkID)
}

func TestIndex_LoadMissingFileStartsEmpty(t *testing.T) {
	idx, err := New(2, filepath.Join(t.TempDir(), "missing.bin"))
	require.NoError(t, err)
	require.NoError(t, idx.Load())
	assert.Equal(t, 0, idx.Len())
}

func TestIndex_LoadDimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")

	idx, err := New(2, path)
	require.NoError(t, err)
	require.NoError(t, idx.Insert(context.Background(), "a", []float32{1, 0}))
	require.NoError(t, idx.Persist())

	other, err := New(3, path)
	require.NoError(t, err)
	assert.ErrorIs(t, other.Load(), domain.ErrDimensionMismatch)
}
