// ABOUTME: CLI command to delete an indexed file from the study index
// ABOUTME: Deletion runs in batches until no chunks of the file remain
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <filename>",
		Short: "Delete all indexed chunks of a file",
		Long: `Remove every indexed chunk of the named file from the study index.

Examples:
  lumina delete cells.md`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	filename := args[0]

	svc, err := newAppServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	deleted, err := svc.ingest.DeleteFile(cmd.Context(), filename)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", filename, err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d chunk(s) of %s\n", deleted, filename)
	}
	return nil
}
