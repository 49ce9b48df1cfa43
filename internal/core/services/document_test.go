package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docubot-labs/docubot/internal/adapters/driven/storage/memory"
	"github.com/docubot-labs/docubot/internal/core/domain"
)

func TestDocumentService_ListAndGet(t *testing.T) {
	store := memory.NewDocStore()
	svc := NewDocumentService(store)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "d1", Title: "First", Status: domain.StatusIndexed}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "d2", Title: "Second", Status: domain.StatusIndexed}))

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	doc, err := svc.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "First", doc.Title)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_GetContentReconstructsOverlap(t *testing.T) {
	store := memory.NewDocStore()
	svc := NewDocumentService(store)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "d1", Status: domain.StatusIndexed}))

	// Three chunks of "abcdefghij" with a two-rune overlap, stored out
	// of order to exercise the position sort.
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c2", DocumentID: "d1", Position: 1, Content: "cdefg", StartOffset: 2, EndOffset: 7},
		{ID: "c1", DocumentID: "d1", Position: 0, Content: "abcd", StartOffset: 0, EndOffset: 4},
		{ID: "c3", DocumentID: "d1", Position: 2, Content: "fghij", StartOffset: 5, EndOffset: 10},
	}))

	content, err := svc.GetContent(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", content)
}

func TestDocumentService_GetContentSingleChunk(t *testing.T) {
	store := memory.NewDocStore()
	svc := NewDocumentService(store)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "d1", Status: domain.StatusIndexed}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c1", DocumentID: "d1", Position: 0, Content: "whole document", StartOffset: 0, EndOffset: 14},
	}))

	content, err := svc.GetContent(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "whole document", content)
}

func TestDocumentService_GetContentUnknownDocument(t *testing.T) {
	svc := NewDocumentService(memory.NewDocStore())

	_, err := svc.GetContent(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_GetContentNoChunks(t *testing.T) {
	store := memory.NewDocStore()
	svc := NewDocumentService(store)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "d1", Status: domain.StatusPending}))

	content, err := svc.GetContent(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, content)
}
