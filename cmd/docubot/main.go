// Command docubot is a personal document question answering tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docubot-labs/docubot/internal/adapters/driven/ai"
	"github.com/docubot-labs/docubot/internal/adapters/driven/config/file"
	"github.com/docubot-labs/docubot/internal/adapters/driven/storage/sqlite"
	"github.com/docubot-labs/docubot/internal/adapters/driven/vectorindex/bruteforce"
	"github.com/docubot-labs/docubot/internal/adapters/driving/cli"
	"github.com/docubot-labs/docubot/internal/core/services"
	"github.com/docubot-labs/docubot/internal/logger"
	"github.com/docubot-labs/docubot/internal/normalisers"
	"github.com/docubot-labs/docubot/internal/normalisers/pdf"
	"github.com/docubot-labs/docubot/internal/normalisers/plaintext"
	"github.com/docubot-labs/docubot/internal/postprocessors"
	"github.com/docubot-labs/docubot/internal/postprocessors/chunker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	defer store.Close()

	dataDir := filepath.Dir(store.Path())

	cli.SetDocumentService(services.NewDocumentService(store))

	// AI-backed services are optional: commands that don't need them
	// (document list, settings, version) still work without credentials.
	embedder, err := ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		logger.Debug("embedding service unavailable: %v", err)
		return cli.Execute()
	}
	defer embedder.Close()

	index, err := bruteforce.New(embedder.Dimensions(), filepath.Join(dataDir, "index.bin"))
	if err != nil {
		return fmt.Errorf("creating vector index: %w", err)
	}
	defer index.Close()

	if err := index.Load(); err != nil {
		return fmt.Errorf("loading vector index: %w", err)
	}

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(pdf.New())

	chunkProc, err := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}

	cli.SetIngestService(services.NewIngestOrchestrator(
		store,
		registry,
		postprocessors.NewPipeline(chunkProc),
		embedder,
		index,
	))

	llm, err := ai.CreateLLMService(cfg.LLM)
	if err != nil {
		logger.Debug("LLM service unavailable: %v", err)
		return cli.Execute()
	}
	defer llm.Close()

	composer := services.NewComposerService(llm,
		services.WithContextBudget(cfg.Retrieval.ContextBudget),
		services.WithCompletionLimits(cfg.LLM.MaxTokens, cfg.LLM.Temperature),
	)
	retriever := services.NewRetrieverService(store, embedder, index)
	cli.SetAnswerService(services.NewAnswerService(retriever, composer, cfg.Retrieval.TopK))

	return cli.Execute()
}
