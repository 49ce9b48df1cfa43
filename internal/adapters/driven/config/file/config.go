package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultConfigDir  = ".docubot"
	DefaultConfigFile = "config.toml"
)

// Config is the full application configuration, stored as TOML in
// ~/.docubot/config.toml.
type Config struct {
	// DataDir overrides the default data directory (~/.docubot/data).
	DataDir string `toml:"data_dir,omitempty"`

	Chunking  ChunkingConfig  `toml:"chunking"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// ChunkingConfig controls how documents are split before embedding.
type ChunkingConfig struct {
	// Size is the maximum chunk size in characters.
	Size int `toml:"size"`

	// Overlap is the number of characters shared between adjacent chunks.
	Overlap int `toml:"overlap"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama".
	Provider string `toml:"provider"`

	// Model is the embedding model name (provider-specific default if empty).
	Model string `toml:"model,omitempty"`

	// BaseURL overrides the provider's API base URL.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey is the provider API key. The OPENAI_API_KEY environment
	// variable takes precedence when set.
	APIKey string `toml:"api_key,omitempty"`

	// Dimensions overrides the model's default embedding dimension.
	Dimensions int `toml:"dimensions,omitempty"`
}

// LLMConfig selects and configures the answer-generation provider.
type LLMConfig struct {
	// Provider is "openai", "anthropic" or "ollama".
	Provider string `toml:"provider"`

	// Model is the LLM model name (provider-specific default if empty).
	Model string `toml:"model,omitempty"`

	// BaseURL overrides the provider's API base URL.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey is the provider API key. OPENAI_API_KEY or ANTHROPIC_API_KEY
	// environment variables take precedence when set.
	APIKey string `toml:"api_key,omitempty"`

	// MaxTokens caps completion length.
	MaxTokens int `toml:"max_tokens"`

	// Temperature controls generation randomness.
	Temperature float64 `toml:"temperature"`
}

// RetrievalConfig controls search and answer composition.
type RetrievalConfig struct {
	// TopK is the number of chunks retrieved per question.
	TopK int `toml:"top_k"`

	// ContextBudget caps the total characters of retrieved context
	// passed to the LLM.
	ContextBudget int `toml:"context_budget"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			Size:    1000,
			Overlap: 200,
		},
		Embedding: EmbeddingConfig{
			Provider: "openai",
		},
		LLM: LLMConfig{
			Provider:    "openai",
			MaxTokens:   500,
			Temperature: 0.7,
		},
		Retrieval: RetrievalConfig{
			TopK:          5,
			ContextBudget: 6000,
		},
	}
}

// Load reads the configuration from the given directory, falling back
// to defaults when the file is missing. If configDir is empty, uses
// ~/.docubot. API keys from the environment override file values.
func Load(configDir string) (*Config, error) {
	path, err := configPath(configDir)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the configuration to the given directory with restricted
// permissions. If configDir is empty, uses ~/.docubot.
func Save(configDir string, cfg *Config) error {
	path, err := configPath(configDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// API keys live in this file
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// configPath resolves the config file location.
func configPath(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, DefaultConfigDir)
	}
	return filepath.Join(configDir, DefaultConfigFile), nil
}

// applyEnvOverrides lets environment variables take precedence over
// file-stored API keys.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if cfg.Embedding.Provider == "openai" {
			cfg.Embedding.APIKey = key
		}
		if cfg.LLM.Provider == "openai" {
			cfg.LLM.APIKey = key
		}
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		if cfg.LLM.Provider == "anthropic" {
			cfg.LLM.APIKey = key
		}
	}
}
