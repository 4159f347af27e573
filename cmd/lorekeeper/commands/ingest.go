// ABOUTME: Ingest command chunks, embeds, and indexes a transcript file
// ABOUTME: Re-ingesting the same source id is an idempotent no-op
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <source-id> <file>",
		Short: "Ingest a lore transcript into the semantic index",
		Long: `Ingest a lore transcript into the semantic index.

The file is split into overlapping word chunks, each chunk is
embedded, and chunks are stored under ids derived from the source
id. Running the same ingest twice adds nothing.`,
		Args: cobra.ExactArgs(2),
		Example: `  # Ingest a video transcript
  lorekeeper ingest video_abc123 transcripts/abc123.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			_, ingestor, cleanup, err := buildAgent(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if ingestor == nil {
				return fmt.Errorf("ingestion requires OPENAI_API_KEY to be set")
			}

			sourceID, path := args[0], args[1]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading transcript: %w", err)
			}

			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Ingesting %s: %s\n", sourceID, truncate(string(data), 80))
			}

			res, err := ingestor.IngestDocument(cmd.Context(), sourceID, string(data))
			if err != nil {
				return fmt.Errorf("ingesting %s: %w", sourceID, err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s: %d chunks (%d added, %d already present)\n",
					res.SourceID, res.Chunks, res.Added, res.Skipped)
			}
			return nil
		},
	}

	return cmd
}
