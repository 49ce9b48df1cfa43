package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/docubot-labs/docubot/internal/adapters/driving/chat"
	"github.com/docubot-labs/docubot/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Opens an interactive session where you can ask questions about your
documents and manage them with slash commands (/list, /delete, /help).`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	router := chat.NewRouter(answerService, ingestService, documentService)
	return tui.Run(context.Background(), router)
}
