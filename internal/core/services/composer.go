package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driven"
	"github.com/docubot-labs/docubot/internal/logger"
)

// DefaultContextBudget is the maximum context size in runes handed to
// the LLM. Lowest-ranked segments are dropped first when over budget.
const DefaultContextBudget = 6000

// NotFoundAnswer is the designated response when retrieval produced
// nothing. Returning it instead of calling the model is a policy
// decision: the bot must not fabricate answers.
const NotFoundAnswer = "I could not find an answer to that in the ingested documents."

// answerPrompt grounds the model in retrieved context. The instruction
// to admit ignorance keeps the model from answering outside the
// documents.
const answerPrompt = `You are a helpful assistant that answers questions using only the provided document excerpts.
If the excerpts do not contain the answer, say "%s" and nothing else.

Document excerpts:
%s

Question: %s

Answer:`

// ComposerService builds a grounded prompt from retrieved chunks and
// delegates to the LLM.
type ComposerService struct {
	llm           driven.LLMService
	contextBudget int
	maxTokens     int
	temperature   float64

	maxRetries int
	retryDelay time.Duration
}

// ComposerOption configures the composer.
type ComposerOption func(*ComposerService)

// WithContextBudget sets the context size limit in runes.
func WithContextBudget(budget int) ComposerOption {
	return func(s *ComposerService) {
		if budget > 0 {
			s.contextBudget = budget
		}
	}
}

// WithCompletionLimits sets the LLM generation parameters.
func WithCompletionLimits(maxTokens int, temperature float64) ComposerOption {
	return func(s *ComposerService) {
		s.maxTokens = maxTokens
		s.temperature = temperature
	}
}

// WithComposerRetry overrides the bounded retry policy for LLM calls.
func WithComposerRetry(maxRetries int, delay time.Duration) ComposerOption {
	return func(s *ComposerService) {
		s.maxRetries = maxRetries
		s.retryDelay = delay
	}
}

// NewComposerService creates a new answer composer.
func NewComposerService(llm driven.LLMService, opts ...ComposerOption) *ComposerService {
	s := &ComposerService{
		llm:           llm,
		contextBudget: DefaultContextBudget,
		maxTokens:     500,
		temperature:   0.7,
		maxRetries:    DefaultMaxRetries,
		retryDelay:    DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compose builds the grounded answer. With no retrieved segments it
// returns the designated "not found" answer without calling the model.
func (s *ComposerService) Compose(ctx context.Context, question string, retrieved []domain.RetrievedChunk) (*domain.Answer, error) {
	logger.Section("Compose")

	if len(retrieved) == 0 {
		logger.Debug("No segments retrieved, returning designated answer")
		return &domain.Answer{Text: NotFoundAnswer, Grounded: false}, nil
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	kept, contextText := s.buildContext(retrieved)
	logger.Debug("Context: %d of %d segments, %d runes", len(kept), len(retrieved), len([]rune(contextText)))

	prompt := fmt.Sprintf(answerPrompt, NotFoundAnswer, contextText, question)

	var text string
	err := withRetry(ctx, s.maxRetries, s.retryDelay, func(ctx context.Context) error {
		var genErr error
		text, genErr = s.llm.Generate(ctx, prompt, driven.GenerateOptions{
			MaxTokens:   s.maxTokens,
			Temperature: s.temperature,
		})
		return genErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrComposition, err)
	}

	return &domain.Answer{
		Text:     strings.TrimSpace(text),
		Sources:  kept,
		Grounded: true,
	}, nil
}

// buildContext assembles excerpt text under the budget. Segments are
// taken in rank order, so when the budget runs out it is the
// lowest-ranked segments that are dropped.
func (s *ComposerService) buildContext(retrieved []domain.RetrievedChunk) ([]domain.RetrievedChunk, string) {
	var b strings.Builder
	kept := make([]domain.RetrievedChunk, 0, len(retrieved))
	used := 0

	for i, rc := range retrieved {
		excerpt := fmt.Sprintf("[%d] %s\n%s\n\n", i+1, rc.DocumentTitle, rc.Chunk.Content)
		size := len([]rune(excerpt))
		if used+size > s.contextBudget {
			if len(kept) == 0 {
				// A single oversized top segment is truncated rather
				// than dropped, or there would be no context at all.
				runes := []rune(excerpt)
				b.WriteString(string(runes[:s.contextBudget]))
				kept = append(kept, rc)
			}
			break
		}
		b.WriteString(excerpt)
		kept = append(kept, rc)
		used += size
	}
	return kept, b.String()
}
