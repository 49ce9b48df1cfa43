package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driven"
	"github.com/docubot-labs/docubot/internal/core/ports/driving"
	"github.com/docubot-labs/docubot/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.Retriever = (*RetrieverService)(nil)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// RetrieverService embeds a question and finds the most relevant chunks.
type RetrieverService struct {
	docStore    driven.DocumentStore
	embedder    driven.EmbeddingService
	vectorIndex driven.VectorIndex

	maxRetries int
	retryDelay time.Duration
}

// NewRetrieverService creates a new retriever.
func NewRetrieverService(
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
) *RetrieverService {
	return &RetrieverService{
		docStore:    docStore,
		embedder:    embedder,
		vectorIndex: vectorIndex,
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
	}
}

// SetRetry overrides the bounded retry policy for embedding calls.
func (s *RetrieverService) SetRetry(maxRetries int, delay time.Duration) {
	s.maxRetries = maxRetries
	s.retryDelay = delay
}

// Retrieve returns the top-k most relevant chunks for the question with
// their text hydrated from the registry. An empty index returns an
// empty result.
func (s *RetrieverService) Retrieve(ctx context.Context, question string, k int) ([]domain.RetrievedChunk, error) {
	logger.Section("Retrieve")
	logger.Debug("Question: %q, k=%d", question, k)

	if s.embedder == nil || s.vectorIndex == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidParameter)
	}
	if k <= 0 {
		k = DefaultTopK
	}

	if s.vectorIndex.Len() == 0 {
		logger.Debug("Index is empty, nothing to retrieve")
		return []domain.RetrievedChunk{}, nil
	}

	var embedding []float32
	err := withRetry(ctx, s.maxRetries, s.retryDelay, func(ctx context.Context) error {
		var embedErr error
		embedding, embedErr = s.embedder.Embed(ctx, question)
		return embedErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}

	hits, err := s.vectorIndex.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Index returned %d hits", len(hits))

	return s.hydrate(ctx, hits)
}

// hydrate attaches chunk text and document titles to raw index hits.
// Titles are looked up once per document.
func (s *RetrieverService) hydrate(ctx context.Context, hits []driven.VectorHit) ([]domain.RetrievedChunk, error) {
	titles := make(map[string]string)
	results := make([]domain.RetrievedChunk, 0, len(hits))

	for _, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			return nil, fmt.Errorf("hydrate chunk %s: %w", hit.ChunkID, err)
		}

		title, ok := titles[chunk.DocumentID]
		if !ok {
			doc, err := s.docStore.GetDocument(ctx, chunk.DocumentID)
			if err != nil {
				return nil, fmt.Errorf("hydrate document %s: %w", chunk.DocumentID, err)
			}
			title = doc.Title
			titles[chunk.DocumentID] = title
		}

		results = append(results, domain.RetrievedChunk{
			Chunk:         *chunk,
			DocumentTitle: title,
			Score:         hit.Similarity,
		})
	}
	return results, nil
}
