package services

import (
	"context"
	"errors"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driven"
)

// fakeEmbedder produces deterministic vectors derived from the text so
// identical texts always embed identically. failures > 0 makes the next
// that many calls return failErr before succeeding.
type fakeEmbedder struct {
	dims     int
	failures int
	failErr  error
	calls    int
}

func newFakeEmbedder(dims int) *fakeEmbedder {
	return &fakeEmbedder{dims: dims}
}

func (f *fakeEmbedder) vector(text string) []float32 {
	vec := make([]float32, f.dims)
	for i, r := range text {
		vec[i%f.dims] += float32(r % 13)
	}
	vec[0] += 1 // never the zero vector
	return vec
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, f.failErr
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, f.failErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int              { return f.dims }
func (f *fakeEmbedder) ModelName() string            { return "fake-embedder" }
func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

// fakeLLM returns a canned response and records prompts.
type fakeLLM struct {
	response string
	err      error
	prompts  []string
	calls    int
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) ModelName() string            { return "fake-llm" }
func (f *fakeLLM) Ping(_ context.Context) error { return nil }
func (f *fakeLLM) Close() error                 { return nil }

var _ driven.LLMService = (*fakeLLM)(nil)

// failingIndex wraps a VectorIndex and fails Insert after a set number
// of successful inserts, for testing rollback behaviour.
type failingIndex struct {
	driven.VectorIndex
	failAfter int
	inserts   int
}

func (f *failingIndex) Insert(ctx context.Context, chunkID string, embedding []float32) error {
	if f.inserts >= f.failAfter {
		return errors.New("index full")
	}
	f.inserts++
	return f.VectorIndex.Insert(ctx, chunkID, embedding)
}

// transientErr satisfies the Transient interface the retry loop probes
// for, mirroring the adapter API error types.
type transientErr struct {
	transient bool
}

func (e *transientErr) Error() string   { return "upstream error" }
func (e *transientErr) Transient() bool { return e.transient }

func retrievedChunk(id, title, content string, score float64) domain.RetrievedChunk {
	return domain.RetrievedChunk{
		Chunk: domain.Chunk{
			ID:      id,
			Content: content,
		},
		DocumentTitle: title,
		Score:         score,
	}
}
