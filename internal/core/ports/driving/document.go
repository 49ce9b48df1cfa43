package driving

import (
	"context"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// DocumentService provides read access to the document registry.
type DocumentService interface {
	// List returns all registered documents, oldest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the reconstructed text of a document by
	// concatenating its chunks, deduplicating the configured overlap.
	GetContent(ctx context.Context, documentID string) (string, error)
}
