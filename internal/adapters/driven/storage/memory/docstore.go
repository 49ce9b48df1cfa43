package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driven"
)

// Ensure DocStore implements the interface.
var _ driven.DocumentStore = (*DocStore)(nil)

// DocStore is a thread-safe in-memory document registry.
type DocStore struct {
	mu     sync.RWMutex
	docs   map[string]domain.Document
	chunks map[string]domain.Chunk
}

// NewDocStore creates an empty in-memory store.
func NewDocStore() *DocStore {
	return &DocStore{
		docs:   make(map[string]domain.Document),
		chunks: make(map[string]domain.Chunk),
	}
}

func (s *DocStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if doc.IngestedAt.IsZero() {
		doc.IngestedAt = now
	}
	doc.UpdatedAt = now
	s.docs[doc.ID] = *doc
	return nil
}

func (s *DocStore) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, chunkCount int) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidParameter, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	doc.ChunkCount = chunkCount
	doc.UpdatedAt = time.Now().UTC()
	s.docs[id] = doc
	return nil
}

func (s *DocStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (s *DocStore) GetDocumentBySHA256(_ context.Context, digest string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.docs {
		if doc.SHA256 == digest {
			d := doc
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *DocStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].IngestedAt.Equal(docs[j].IngestedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].IngestedAt.Before(docs[j].IngestedAt)
	})
	return docs, nil
}

func (s *DocStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	for chunkID, chunk := range s.chunks {
		if chunk.DocumentID == id {
			delete(s.chunks, chunkID)
		}
	}
	return nil
}

func (s *DocStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

func (s *DocStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chunks []domain.Chunk
	for _, chunk := range s.chunks {
		if chunk.DocumentID == documentID {
			chunks = append(chunks, chunk)
		}
	}
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Position < chunks[j].Position
	})
	return chunks, nil
}

func (s *DocStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunk, ok := s.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}
