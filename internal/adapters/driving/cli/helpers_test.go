package cli

import (
	"context"
	"time"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// fakeIngestService records ingested and removed documents.
type fakeIngestService struct {
	ingestErr error
	removeErr error
	removed   []string
}

func (f *fakeIngestService) Ingest(_ context.Context, _ []byte, filename string) (*domain.Document, error) {
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	return &domain.Document{ID: "doc-1", Filename: filename, Title: "Test Document 1", ChunkCount: 3}, nil
}

func (f *fakeIngestService) Remove(_ context.Context, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, id)
	return nil
}

// fakeAnswerService returns a canned answer.
type fakeAnswerService struct {
	answer *domain.Answer
	err    error
}

func (f *fakeAnswerService) Answer(context.Context, string) (*domain.Answer, error) {
	return f.answer, f.err
}

// fakeDocumentService returns canned documents.
type fakeDocumentService struct {
	docs    []domain.Document
	content string
	err     error
}

func (f *fakeDocumentService) List(context.Context) ([]domain.Document, error) {
	return f.docs, f.err
}

func (f *fakeDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.docs {
		if f.docs[i].ID == id {
			return &f.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDocumentService) GetContent(context.Context, string) (string, error) {
	return f.content, f.err
}

// setupTestServices wires fakes into the package-level services and
// returns a cleanup function restoring the previous state.
func setupTestServices() func() {
	prevIngest := ingestService
	prevAnswer := answerService
	prevDocument := documentService

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ingestService = &fakeIngestService{}
	answerService = &fakeAnswerService{answer: &domain.Answer{
		Text: "The answer is 42.",
		Sources: []domain.RetrievedChunk{
			{DocumentTitle: "Test Document 1", Score: 0.91},
		},
		Grounded: true,
	}}
	documentService = &fakeDocumentService{
		docs: []domain.Document{
			{
				ID:         "doc-1",
				Filename:   "test.pdf",
				Title:      "Test Document 1",
				SHA256:     "abc123",
				Status:     domain.StatusIndexed,
				ChunkCount: 3,
				IngestedAt: now,
				UpdatedAt:  now,
			},
		},
		content: "Full document text.",
	}

	return func() {
		ingestService = prevIngest
		answerService = prevAnswer
		documentService = prevDocument
	}
}
