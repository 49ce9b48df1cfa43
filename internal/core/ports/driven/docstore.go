package driven

import (
	"context"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// DocumentStore is the registry of ingested documents and their chunks.
// Backed by SQLite for durable metadata storage.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// UpdateStatus transitions a document's lifecycle state and records
	// the owned chunk count.
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, chunkCount int) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentBySHA256 retrieves a document by content hash.
	// Used to detect duplicate uploads.
	GetDocumentBySHA256(ctx context.Context, digest string) (*domain.Document, error)

	// ListDocuments returns all registered documents, oldest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and cascades to its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// SaveChunks stores chunks for a document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)
}
