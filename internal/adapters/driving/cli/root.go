// Package cli implements the docubot command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docubot-labs/docubot/internal/core/ports/driving"
	"github.com/docubot-labs/docubot/internal/logger"
)

// Services injected by main before Execute.
var (
	ingestService   driving.IngestService
	answerService   driving.AnswerService
	documentService driving.DocumentService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docubot",
	Short: "Ask questions about your documents",
	Long: `Docubot ingests your documents, indexes them for semantic search,
and answers questions grounded in their content.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetIngestService injects the ingest service.
func SetIngestService(svc driving.IngestService) {
	ingestService = svc
}

// SetAnswerService injects the answer service.
func SetAnswerService(svc driving.AnswerService) {
	answerService = svc
}

// SetDocumentService injects the document service.
func SetDocumentService(svc driving.DocumentService) {
	documentService = svc
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
