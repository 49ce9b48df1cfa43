package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docubot-labs/docubot/internal/adapters/driven/ai"
	"github.com/docubot-labs/docubot/internal/adapters/driven/config/file"
)

// configDir overrides the default config location, used by tests.
var configDir string

// SetConfigDir overrides where settings are read and written.
func SetConfigDir(dir string) {
	configDir = dir
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long:  `View and configure chunking, AI providers, and retrieval options.`,
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var (
	chunkSize    int
	chunkOverlap int
)

var settingsChunkingCmd = &cobra.Command{
	Use:   "chunking",
	Short: "Configure document chunking",
	RunE:  runSettingsChunking,
}

var (
	providerName string
	modelName    string
	baseURL      string
	apiKey       string
)

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	RunE:  runSettingsLLM,
}

var (
	topK          int
	contextBudget int
)

var settingsRetrievalCmd = &cobra.Command{
	Use:   "retrieval",
	Short: "Configure retrieval options",
	RunE:  runSettingsRetrieval,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configured AI providers are reachable",
	RunE:  runSettingsValidate,
}

func init() {
	settingsChunkingCmd.Flags().IntVar(&chunkSize, "size", 0, "maximum chunk size in characters")
	settingsChunkingCmd.Flags().IntVar(&chunkOverlap, "overlap", -1, "overlap between adjacent chunks in characters")

	settingsEmbeddingCmd.Flags().StringVar(&providerName, "provider", "", "embedding provider (openai, ollama)")
	settingsEmbeddingCmd.Flags().StringVar(&modelName, "model", "", "embedding model name")
	settingsEmbeddingCmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL override")
	settingsEmbeddingCmd.Flags().StringVar(&apiKey, "api-key", "", "provider API key")

	settingsLLMCmd.Flags().StringVar(&providerName, "provider", "", "LLM provider (openai, anthropic, ollama)")
	settingsLLMCmd.Flags().StringVar(&modelName, "model", "", "LLM model name")
	settingsLLMCmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL override")
	settingsLLMCmd.Flags().StringVar(&apiKey, "api-key", "", "provider API key")

	settingsRetrievalCmd.Flags().IntVar(&topK, "top-k", 0, "number of chunks retrieved per question")
	settingsRetrievalCmd.Flags().IntVar(&contextBudget, "context-budget", 0, "maximum characters of context passed to the LLM")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsChunkingCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsRetrievalCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Size:    %d\n", cfg.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", cfg.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", cfg.Embedding.Provider)
	if cfg.Embedding.Model != "" {
		cmd.Printf("  Model:    %s\n", cfg.Embedding.Model)
	}
	if cfg.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", cfg.Embedding.BaseURL)
	}
	cmd.Printf("  API key:  %s\n", maskKey(cfg.Embedding.APIKey))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider:    %s\n", cfg.LLM.Provider)
	if cfg.LLM.Model != "" {
		cmd.Printf("  Model:       %s\n", cfg.LLM.Model)
	}
	cmd.Printf("  Max tokens:  %d\n", cfg.LLM.MaxTokens)
	cmd.Printf("  Temperature: %.2f\n", cfg.LLM.Temperature)
	cmd.Printf("  API key:     %s\n", maskKey(cfg.LLM.APIKey))
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K:          %d\n", cfg.Retrieval.TopK)
	cmd.Printf("  Context budget: %d\n", cfg.Retrieval.ContextBudget)
	return nil
}

func runSettingsChunking(cmd *cobra.Command, _ []string) error {
	return updateConfig(cmd, func(cfg *file.Config) {
		if chunkSize > 0 {
			cfg.Chunking.Size = chunkSize
		}
		if chunkOverlap >= 0 {
			cfg.Chunking.Overlap = chunkOverlap
		}
	})
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	return updateConfig(cmd, func(cfg *file.Config) {
		if providerName != "" {
			cfg.Embedding.Provider = providerName
		}
		if modelName != "" {
			cfg.Embedding.Model = modelName
		}
		if baseURL != "" {
			cfg.Embedding.BaseURL = baseURL
		}
		if apiKey != "" {
			cfg.Embedding.APIKey = apiKey
		}
	})
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	return updateConfig(cmd, func(cfg *file.Config) {
		if providerName != "" {
			cfg.LLM.Provider = providerName
		}
		if modelName != "" {
			cfg.LLM.Model = modelName
		}
		if baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
		if apiKey != "" {
			cfg.LLM.APIKey = apiKey
		}
	})
}

func runSettingsRetrieval(cmd *cobra.Command, _ []string) error {
	return updateConfig(cmd, func(cfg *file.Config) {
		if topK > 0 {
			cfg.Retrieval.TopK = topK
		}
		if contextBudget > 0 {
			cfg.Retrieval.ContextBudget = contextBudget
		}
	})
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	failures := 0

	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.Embedding)
	if err != nil {
		cmd.Printf("Embedding (%s): FAILED: %v\n", cfg.Embedding.Provider, err)
		failures++
	} else {
		cmd.Printf("Embedding (%s): OK, model %s (%d dimensions)\n",
			cfg.Embedding.Provider, embedder.ModelName(), embedder.Dimensions())
		embedder.Close()
	}

	llm, err := ai.CreateAndValidateLLMService(cfg.LLM)
	if err != nil {
		cmd.Printf("LLM (%s): FAILED: %v\n", cfg.LLM.Provider, err)
		failures++
	} else {
		cmd.Printf("LLM (%s): OK, model %s\n", cfg.LLM.Provider, llm.ModelName())
		llm.Close()
	}

	if failures > 0 {
		return fmt.Errorf("%d provider(s) failed validation", failures)
	}
	return nil
}

// updateConfig loads, mutates and saves the config file.
func updateConfig(cmd *cobra.Command, apply func(*file.Config)) error {
	cfg, err := file.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	apply(cfg)

	if err := file.Save(configDir, cfg); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings updated.")
	return nil
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
