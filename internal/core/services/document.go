package services

import (
	"context"
	"sort"
	"strings"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driven"
	"github.com/docubot-labs/docubot/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService provides read access to the document registry.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// List returns all registered documents, oldest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, documentID)
}

// GetContent reconstructs the document text from its chunks. Chunk
// offsets tell how much consecutive chunks overlap, so the overlap is
// emitted only once.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return "", err
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return "", err
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Position < chunks[j].Position
	})

	var b strings.Builder
	prevEnd := 0
	for i, chunk := range chunks {
		content := []rune(chunk.Content)
		if i == 0 {
			b.WriteString(chunk.Content)
			prevEnd = chunk.EndOffset
			continue
		}
		skip := prevEnd - chunk.StartOffset
		if skip < 0 {
			skip = 0
		}
		if skip > len(content) {
			skip = len(content)
		}
		b.WriteString(string(content[skip:]))
		prevEnd = chunk.EndOffset
	}
	return b.String(), nil
}
