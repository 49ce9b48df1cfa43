package driven

import (
	"context"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// PostProcessor processes document text to produce chunks.
// PostProcessors are chained in a pipeline.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document's text and the chunks produced so far.
	// A chunk-creating processor (the chunker) receives nil and returns
	// new chunks; a chunk-modifying processor receives and returns them.
	Process(ctx context.Context, doc *domain.Document, text string, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document text through all processors in order.
	Process(ctx context.Context, doc *domain.Document, text string) ([]domain.Chunk, error)
}
