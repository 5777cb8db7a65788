// ABOUTME: CLI command to ask a study question against indexed notes
// ABOUTME: Prints the grounded answer followed by its source files
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <subject> <question>",
		Short: "Ask a question about a subject's notes",
		Long: `Answer a study question using the subject's indexed notes.

The answer is grounded in retrieved chunks and cites the files it
drew from.

Examples:
  lumina ask biology "How does osmosis work?"
  lumina ask --format json calculus "What is the chain rule?"`,
		Args: cobra.ExactArgs(2),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	subject, question := args[0], args[1]

	svc, err := newAppServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	answer, err := svc.chat.Ask(cmd.Context(), subject, question)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
	if len(answer.Sources) > 0 && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources:\n")
		for _, src := range answer.Sources {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", src)
		}
	}
	return nil
}
