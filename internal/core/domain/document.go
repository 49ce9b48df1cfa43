package domain

import (
	"fmt"
	"time"
)

// DocumentStatus tracks a document through the ingestion lifecycle.
type DocumentStatus string

const (
	// StatusPending means the document is registered but not yet indexed.
	StatusPending DocumentStatus = "pending"

	// StatusIndexed means chunking, embedding and indexing completed.
	StatusIndexed DocumentStatus = "indexed"

	// StatusFailed means ingestion failed partway. The document is never
	// left looking partially indexed.
	StatusFailed DocumentStatus = "failed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusIndexed, StatusFailed:
		return true
	}
	return false
}

// ParseDocumentStatus converts a stored string into a DocumentStatus.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	status := DocumentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown document status %q", ErrInvalidParameter, s)
	}
	return status, nil
}

// Document represents an ingested document tracked by the registry.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original upload filename.
	Filename string

	// Title is the human-readable title derived from the filename.
	Title string

	// SHA256 is the hex digest of the raw upload, used to detect
	// duplicate uploads.
	SHA256 string

	// Status is the ingestion lifecycle state.
	Status DocumentStatus

	// ChunkCount is the number of chunks owned by this document.
	// It always equals the number of stored chunks.
	ChunkCount int

	// IngestedAt is when the document was first registered.
	IngestedAt time.Time

	// UpdatedAt is when the document last changed state.
	UpdatedAt time.Time
}

// Chunk represents a bounded span of document text. Chunks are immutable
// once created and are deleted together with their owning document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Position is the ordinal position within the document.
	Position int

	// Content is the text content of this chunk.
	Content string

	// StartOffset and EndOffset delimit the chunk within the document
	// text, measured in runes. Consecutive chunks overlap by the
	// configured chunker overlap.
	StartOffset int
	EndOffset   int

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}

// RawDocument represents opaque uploaded bytes before normalisation.
type RawDocument struct {
	// Filename is the original upload filename.
	Filename string

	// MIMEType is the detected content type (e.g. "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}
