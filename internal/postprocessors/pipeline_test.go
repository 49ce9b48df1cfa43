package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// appendProcessor records that it ran by appending a chunk tagged with
// its name.
type appendProcessor struct {
	name string
	err  error
}

func (p *appendProcessor) Name() string { return p.name }

func (p *appendProcessor) Process(_ context.Context, doc *domain.Document, _ string, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if p.err != nil {
		return nil, p.err
	}
	return append(chunks, domain.Chunk{DocumentID: doc.ID, Content: p.name}), nil
}

func TestPipeline_RunsProcessorsInOrder(t *testing.T) {
	p := NewPipeline(&appendProcessor{name: "first"}, &appendProcessor{name: "second"})

	chunks, err := p.Process(context.Background(), &domain.Document{ID: "d1"}, "text")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "first", chunks[0].Content)
	assert.Equal(t, "second", chunks[1].Content)
	assert.Equal(t, "d1", chunks[0].DocumentID)
}

func TestPipeline_ProcessorErrorNamed(t *testing.T) {
	p := NewPipeline(&appendProcessor{name: "broken", err: errors.New("boom")})

	_, err := p.Process(context.Background(), &domain.Document{ID: "d1"}, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestPipeline_NilDocument(t *testing.T) {
	p := NewPipeline()

	_, err := p.Process(context.Background(), nil, "text")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	assert.Equal(t, 0, p.Len())

	p.Add(&appendProcessor{name: "late"})
	assert.Equal(t, 1, p.Len())

	chunks, err := p.Process(context.Background(), &domain.Document{ID: "d1"}, "text")
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}
