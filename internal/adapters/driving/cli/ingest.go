package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest documents into the index",
	Long: `Reads one or more files, extracts their text, splits it into chunks,
embeds each chunk and adds it to the search index.

Supported formats: PDF, plain text, Markdown.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	var failed int

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failed++
			continue
		}

		doc, err := ingestService.Ingest(ctx, content, filepath.Base(path))
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				cmd.Printf("  %s: already ingested, skipping\n", path)
				continue
			}
			cmd.PrintErrf("  %s: %v\n", path, err)
			failed++
			continue
		}

		cmd.Printf("  %s: indexed as %s (%d chunks)\n", path, doc.ID, doc.ChunkCount)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
