package driving

import (
	"context"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// IngestService runs the ingestion pipeline: normalise, chunk, embed,
// index and register. It is the single write path into the document
// registry and vector index.
type IngestService interface {
	// Ingest processes an uploaded document and returns its registry
	// entry. Duplicate content (same hash) fails with
	// domain.ErrAlreadyExists. A failure partway marks the document
	// failed rather than leaving it partially indexed.
	Ingest(ctx context.Context, content []byte, filename string) (*domain.Document, error)

	// Remove deletes a document, its chunks and its index entries.
	// Removing an unknown ID fails with domain.ErrNotFound.
	Remove(ctx context.Context, documentID string) error
}
