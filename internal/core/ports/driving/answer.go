package driving

import (
	"context"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// AnswerService answers a user question from the ingested documents.
type AnswerService interface {
	// Answer embeds the question, retrieves the most relevant chunks
	// and composes a grounded answer. When nothing relevant is indexed
	// it returns the designated "not found" answer rather than letting
	// the model fabricate one.
	Answer(ctx context.Context, question string) (*domain.Answer, error)
}

// Retriever exposes the retrieval stage on its own, for callers that
// want relevant chunks without answer composition.
type Retriever interface {
	// Retrieve returns the top-k most relevant chunks for the question,
	// descending by similarity. An empty index yields an empty result,
	// not an error.
	Retrieve(ctx context.Context, question string, k int) ([]domain.RetrievedChunk, error)
}
