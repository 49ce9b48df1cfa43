package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// stubRetriever returns canned results or a canned error.
type stubRetriever struct {
	results []domain.RetrievedChunk
	err     error
	gotK    int
}

func (s *stubRetriever) Retrieve(_ context.Context, _ string, k int) ([]domain.RetrievedChunk, error) {
	s.gotK = k
	return s.results, s.err
}

func TestAnswer_ComposesFromRetrieval(t *testing.T) {
	retriever := &stubRetriever{results: []domain.RetrievedChunk{
		retrievedChunk("c1", "Manual", "relevant text", 0.95),
	}}
	llm := &fakeLLM{response: "grounded answer"}

	svc := NewAnswerService(retriever, NewComposerService(llm), 3)

	answer, err := svc.Answer(context.Background(), "a question")
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", answer.Text)
	assert.True(t, answer.Grounded)
	assert.Equal(t, 3, retriever.gotK)
}

func TestAnswer_EmptyRetrievalSkipsLLM(t *testing.T) {
	retriever := &stubRetriever{}
	llm := &fakeLLM{response: "unused"}

	svc := NewAnswerService(retriever, NewComposerService(llm), 3)

	answer, err := svc.Answer(context.Background(), "a question")
	require.NoError(t, err)
	assert.Equal(t, NotFoundAnswer, answer.Text)
	assert.False(t, answer.Grounded)
	assert.Equal(t, 0, llm.calls)
}

func TestAnswer_RetrievalErrorPropagates(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("index corrupted")}
	svc := NewAnswerService(retriever, NewComposerService(&fakeLLM{}), 3)

	_, err := svc.Answer(context.Background(), "a question")
	assert.EqualError(t, err, "index corrupted")
}

func TestNewAnswerService_TopKDefault(t *testing.T) {
	retriever := &stubRetriever{}
	svc := NewAnswerService(retriever, NewComposerService(&fakeLLM{}), 0)

	_, err := svc.Answer(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, retriever.gotK)
}
