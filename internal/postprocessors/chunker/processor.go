package chunker

import (
	"context"

	"github.com/google/uuid"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// Processor splits document text into chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the segment size in runes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between segments in runes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a chunker processor. Fails with domain.ErrInvalidParameter
// when the configured size and overlap cannot produce valid segments.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}

	// Validate eagerly so misconfiguration surfaces at construction,
	// not on the first ingest.
	if _, err := Split("x", p.chunkSize, p.overlap); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document text into chunks.
// Input chunks are ignored; this processor creates new chunks.
func (p *Processor) Process(_ context.Context, doc *domain.Document, text string, _ []domain.Chunk) ([]domain.Chunk, error) {
	segments, err := Split(text, p.chunkSize, p.overlap)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, 0, len(segments))
	for i, seg := range segments {
		chunks = append(chunks, domain.Chunk{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			Position:    i,
			Content:     seg.Text,
			StartOffset: seg.Start,
			EndOffset:   seg.End,
		})
	}
	return chunks, nil
}
