// ABOUTME: CLI command to search indexed notes by similarity
// ABOUTME: Supports subject and file scoping with table or JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/VishnuRam04/lumina/internal/models"
)

var (
	searchSubject string
	searchFile    string
	searchLimit   int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed notes",
		Long: `Search indexed notes by semantic similarity.

Results can be scoped to a subject or a single file.

Examples:
  lumina search "krebs cycle"
  lumina search --subject biology --limit 8 "cell membrane"
  lumina search --format json "eigenvalues"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchSubject, "subject", "", "Restrict results to a subject")
	cmd.Flags().StringVar(&searchFile, "file", "", "Restrict results to a file")
	cmd.Flags().IntVar(&searchLimit, "limit", 4, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}
	query := args[0]

	svc, err := newAppServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	filter := models.MetadataFilter{SubjectID: searchSubject, Filename: searchFile}
	results, err := svc.index.SearchWithRetry(cmd.Context(), query, filter, searchLimit)
	if err != nil {
		return fmt.Errorf("searching notes: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No notes found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tFILE\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t----\t-------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n",
			r.Score,
			truncate(r.Metadata.Filename, 25),
			truncate(r.Text, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
