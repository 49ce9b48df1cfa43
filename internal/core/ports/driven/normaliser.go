package driven

import (
	"context"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// Normaliser extracts plain text from raw uploaded bytes.
// Each normaliser handles specific MIME types (e.g. PDF, plain text).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred) when
	// several normalisers claim the same MIME type.
	Priority() int

	// Normalise extracts the document text from raw bytes.
	// Chunking is handled by the PostProcessor pipeline.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Title is the human-readable title derived from the upload.
	Title string

	// Text is the full extracted text before chunking.
	Text string
}

// NormaliserRegistry selects a normaliser for a MIME type.
type NormaliserRegistry interface {
	// Register adds a normaliser for its supported MIME types.
	Register(n Normaliser)

	// ForMIMEType returns the highest-priority normaliser for the MIME
	// type, or domain.ErrUnsupportedType if none is registered.
	ForMIMEType(mimeType string) (Normaliser, error)
}
