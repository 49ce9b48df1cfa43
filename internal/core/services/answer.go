package services

import (
	"context"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driving"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerService chains retrieval and composition into the single
// question-answering entry point.
type AnswerService struct {
	retriever driving.Retriever
	composer  *ComposerService
	topK      int
}

// NewAnswerService creates a new answer service.
func NewAnswerService(retriever driving.Retriever, composer *ComposerService, topK int) *AnswerService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerService{
		retriever: retriever,
		composer:  composer,
		topK:      topK,
	}
}

// Answer retrieves the most relevant chunks for the question and
// composes a grounded answer from them.
func (s *AnswerService) Answer(ctx context.Context, question string) (*domain.Answer, error) {
	retrieved, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, err
	}
	return s.composer.Compose(ctx, question, retrieved)
}
