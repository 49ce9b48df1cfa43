package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docubot-labs/docubot/internal/adapters/driven/config/file"
)

func setupTestConfigDir(t *testing.T) {
	t.Helper()
	SetConfigDir(t.TempDir())
	t.Cleanup(func() { SetConfigDir("") })
}

func TestSettingsShowCmd_Executes(t *testing.T) {
	setupTestConfigDir(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "[Chunking]")
	assert.Contains(t, buf.String(), "[Embedding]")
	assert.Contains(t, buf.String(), "[LLM]")
	assert.Contains(t, buf.String(), "[Retrieval]")
}

func TestSettingsChunkingCmd_Updates(t *testing.T) {
	setupTestConfigDir(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "chunking", "--size", "800", "--overlap", "100"})
	defer func() {
		rootCmd.SetArgs(nil)
		chunkSize = 0
		chunkOverlap = -1
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	cfg, err := file.Load(configDir)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Chunking.Size)
	assert.Equal(t, 100, cfg.Chunking.Overlap)
}

func TestSettingsLLMCmd_Updates(t *testing.T) {
	setupTestConfigDir(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "llm", "--provider", "ollama", "--model", "llama3.2"})
	defer func() {
		rootCmd.SetArgs(nil)
		providerName = ""
		modelName = ""
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	cfg, err := file.Load(configDir)
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3.2", cfg.LLM.Model)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskKey(""))
	assert.Equal(t, "****", maskKey("abc"))
	assert.Equal(t, "****6789", maskKey("sk-123456789"))
}

func TestSettingsValidateCmd_ReportsUnreachableProviders(t *testing.T) {
	setupTestConfigDir(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "validate"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	// Default providers are openai with no API key configured, so both
	// checks must fail without making a network call.
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 provider(s) failed validation")
	assert.Contains(t, buf.String(), "Embedding (openai): FAILED")
	assert.Contains(t, buf.String(), "LLM (openai): FAILED")
}
