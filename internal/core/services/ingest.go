package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docubot-labs/docubot/internal/core/domain"
	"github.com/docubot-labs/docubot/internal/core/ports/driven"
	"github.com/docubot-labs/docubot/internal/core/ports/driving"
	"github.com/docubot-labs/docubot/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.IngestService = (*IngestOrchestrator)(nil)

// embedBatchSize bounds how many chunk texts go into one embedding
// request.
const embedBatchSize = 64

// IngestOrchestrator coordinates the ingestion pipeline:
// normalise, chunk, embed, index, register.
type IngestOrchestrator struct {
	docStore    driven.DocumentStore
	registry    driven.NormaliserRegistry
	pipeline    driven.PostProcessorPipeline
	embedder    driven.EmbeddingService
	vectorIndex driven.VectorIndex

	maxRetries int
	retryDelay time.Duration
}

// NewIngestOrchestrator creates a new ingest orchestrator.
func NewIngestOrchestrator(
	docStore driven.DocumentStore,
	registry driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		docStore:    docStore,
		registry:    registry,
		pipeline:    pipeline,
		embedder:    embedder,
		vectorIndex: vectorIndex,
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
	}
}

// SetRetry overrides the bounded retry policy for embedding calls.
func (o *IngestOrchestrator) SetRetry(maxRetries int, delay time.Duration) {
	o.maxRetries = maxRetries
	o.retryDelay = delay
}

// Ingest processes an uploaded document end to end. A failure after the
// document is registered marks it failed; index entries written before
// the failure are rolled back so the document is never half indexed.
func (o *IngestOrchestrator) Ingest(ctx context.Context, content []byte, filename string) (*domain.Document, error) {
	logger.Section("Ingest")
	logger.Debug("File: %s (%d bytes)", filename, len(content))

	if o.embedder == nil || o.vectorIndex == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidParameter)
	}

	// Duplicate detection by content hash.
	sum := sha256.Sum256(content)
	digest := hex.EncodeToString(sum[:])
	if existing, err := o.docStore.GetDocumentBySHA256(ctx, digest); err == nil {
		return nil, fmt.Errorf("%w: document %s has identical content", domain.ErrAlreadyExists, existing.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking for duplicate: %w", err)
	}

	normaliser, err := o.registry.ForMIMEType(DetectMIMEType(filename))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:         uuid.New().String(),
		Filename:   filename,
		SHA256:     digest,
		Status:     domain.StatusPending,
		IngestedAt: now,
		UpdatedAt:  now,
	}

	result, err := normaliser.Normalise(ctx, &domain.RawDocument{
		Filename: filename,
		MIMEType: DetectMIMEType(filename),
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", filename, err)
	}
	doc.Title = result.Title

	if err := o.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("register document: %w", err)
	}

	chunks, err := o.index(ctx, doc, result.Text)
	if err != nil {
		o.markFailed(ctx, doc.ID)
		return nil, err
	}

	if err := o.docStore.UpdateStatus(ctx, doc.ID, domain.StatusIndexed, len(chunks)); err != nil {
		return nil, fmt.Errorf("finalise document: %w", err)
	}
	doc.Status = domain.StatusIndexed
	doc.ChunkCount = len(chunks)

	logger.Info("Indexed %s: %d chunks", filename, len(chunks))
	return doc, nil
}

// index runs chunking, embedding and vector insertion. On error it
// removes any vectors already inserted for this document.
func (o *IngestOrchestrator) index(ctx context.Context, doc *domain.Document, text string) ([]domain.Chunk, error) {
	chunks, err := o.pipeline.Process(ctx, doc, text)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	logger.Debug("Chunked into %d segments", len(chunks))

	inserted := make([]string, 0, len(chunks))
	rollback := func() {
		for _, id := range inserted {
			if derr := o.vectorIndex.Delete(ctx, id); derr != nil {
				logger.Warn("rollback of chunk %s failed: %v", id, derr)
			}
		}
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		var vectors [][]float32
		err := withRetry(ctx, o.maxRetries, o.retryDelay, func(ctx context.Context) error {
			var embedErr error
			vectors, embedErr = o.embedder.EmbedBatch(ctx, texts)
			return embedErr
		})
		if err != nil {
			rollback()
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
		}
		if len(vectors) != len(batch) {
			rollback()
			return nil, fmt.Errorf("%w: got %d vectors for %d texts", domain.ErrEmbedding, len(vectors), len(batch))
		}

		for i := range batch {
			chunks[start+i].Embedding = vectors[i]
			if err := o.vectorIndex.Insert(ctx, batch[i].ID, vectors[i]); err != nil {
				rollback()
				return nil, fmt.Errorf("index chunk %d: %w", batch[i].Position, err)
			}
			inserted = append(inserted, batch[i].ID)
		}
	}

	if err := o.docStore.SaveChunks(ctx, chunks); err != nil {
		rollback()
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	if err := o.vectorIndex.Persist(); err != nil {
		logger.Warn("persisting vector index failed: %v", err)
	}
	return chunks, nil
}

// Remove deletes a document, its chunks and its index entries.
func (o *IngestOrchestrator) Remove(ctx context.Context, documentID string) error {
	chunks, err := o.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load chunks: %w", err)
	}
	if _, err := o.docStore.GetDocument(ctx, documentID); err != nil {
		return err
	}

	if o.vectorIndex != nil {
		for _, chunk := range chunks {
			if err := o.vectorIndex.Delete(ctx, chunk.ID); err != nil {
				return fmt.Errorf("remove chunk %s from index: %w", chunk.ID, err)
			}
		}
		if err := o.vectorIndex.Persist(); err != nil {
			logger.Warn("persisting vector index failed: %v", err)
		}
	}

	if err := o.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	logger.Info("Removed document %s (%d chunks)", documentID, len(chunks))
	return nil
}

// markFailed records the failed status. Best effort: the ingest error it
// accompanies is the one worth reporting.
func (o *IngestOrchestrator) markFailed(ctx context.Context, documentID string) {
	if err := o.docStore.UpdateStatus(ctx, documentID, domain.StatusFailed, 0); err != nil {
		logger.Warn("marking document %s failed: %v", documentID, err)
	}
}

// DetectMIMEType maps an upload filename to a MIME type, falling back to
// text/plain for unknown extensions so the plaintext normaliser can
// decide whether the bytes are usable.
func DetectMIMEType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".txt", ".md", ".markdown":
		return "text/plain"
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if i := strings.Index(mt, ";"); i >= 0 {
			mt = mt[:i]
		}
		return mt
	}
	return "text/plain"
}
