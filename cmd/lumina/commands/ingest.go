// ABOUTME: CLI command to ingest note files into the study index
// ABOUTME: A file that fails partway is rolled back, never left half-indexed
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <subject> <file>...",
		Short: "Ingest note files into the study index",
		Long: `Split, embed and index one or more note files under a subject.

Each file is chunked with overlap, embedded, and stored so that search,
chat, flashcards and quizzes can draw on it.

Examples:
  lumina ingest biology notes/cells.md
  lumina ingest "linear algebra" week1.txt week2.txt`,
		Args: cobra.MinimumNArgs(2),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	subject := args[0]
	files := args[1:]

	svc, err := newAppServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	total := 0
	for _, path := range files {
		n, err := svc.ingest.IngestFile(cmd.Context(), subject, path)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		total += n
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %s (%d chunks)\n", path, n)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nIngested %d file(s), %d chunks total\n", len(files), total)
	}
	return nil
}
