// ABOUTME: CLI commands to generate, add and list flashcards
// ABOUTME: list and due work offline against the local sqlite store
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/storage/sqlite"
)

var (
	cardsCount int
	cardsFile  string
)

// NewCardsCmd creates the cards command with its subcommands
func NewCardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage flashcards",
		Long:  `Generate flashcards from indexed notes, add cards by hand, and list them.`,
	}

	generate := &cobra.Command{
		Use:   "generate <subject> <filename>",
		Short: "Generate flashcards from an indexed file",
		Long: `Generate flashcards from an indexed file's material.

New cards start unscheduled and are due for review immediately.

Examples:
  lumina cards generate biology cells.md
  lumina cards generate --count 10 biology cells.md`,
		Args: cobra.ExactArgs(2),
		RunE: runCardsGenerate,
	}
	generate.Flags().IntVar(&cardsCount, "count", 5, "Number of cards to generate")

	add := &cobra.Command{
		Use:   "add <subject> <front> <back>",
		Short: "Add a flashcard by hand",
		Args:  cobra.ExactArgs(3),
		RunE:  runCardsAdd,
	}
	add.Flags().StringVar(&cardsFile, "file", "", "File the card relates to")

	list := &cobra.Command{
		Use:   "list <subject>",
		Short: "List a subject's flashcards",
		Args:  cobra.ExactArgs(1),
		RunE:  runCardsList,
	}

	due := &cobra.Command{
		Use:   "due <subject>",
		Short: "List flashcards due for review",
		Args:  cobra.ExactArgs(1),
		RunE:  runCardsDue,
	}

	cmd.AddCommand(generate, add, list, due)
	return cmd
}

func runCardsGenerate(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(cardsCount, "count"); err != nil {
		return err
	}
	subject, filename := args[0], args[1]

	svc, err := newAppServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	cards, err := svc.flashcards.GenerateFromFile(cmd.Context(), subject, filename, cardsCount)
	if err != nil {
		return fmt.Errorf("generating flashcards: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d card(s) from %s:\n\n", len(cards), filename)
	}
	for _, card := range cards {
		fmt.Fprintf(cmd.OutOrStdout(), "Q: %s\nA: %s\n\n", card.Front, card.Back)
	}
	return nil
}

func runCardsAdd(cmd *cobra.Command, args []string) error {
	subject, front, back := args[0], args[1], args[2]

	svc, err := newAppServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	card, err := svc.flashcards.Create(cmd.Context(), subject, cardsFile, front, back)
	if err != nil {
		return fmt.Errorf("adding flashcard: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added card %s\n", card.ID)
	}
	return nil
}

func runCardsList(cmd *cobra.Command, args []string) error {
	db, err := openCardDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cards, err := sqlite.NewFlashcardStore(db).BySubject(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("listing flashcards: %w", err)
	}
	return printCards(cmd, cards, "No flashcards for subject: "+args[0])
}

func runCardsDue(cmd *cobra.Command, args []string) error {
	db, err := openCardDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cards, err := sqlite.NewFlashcardStore(db).Due(cmd.Context(), args[0], time.Now())
	if err != nil {
		return fmt.Errorf("listing due flashcards: %w", err)
	}
	return printCards(cmd, cards, "No flashcards due for subject: "+args[0])
}

func printCards(cmd *cobra.Command, cards []models.Flashcard, emptyMsg string) error {
	if len(cards) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), emptyMsg)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(cards, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tSTATUS\tNEXT REVIEW\tFRONT\n")
	fmt.Fprintf(w, "--\t------\t-----------\t-----\n")
	for _, card := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(card.ID, 12),
			card.Status,
			formatDue(card.NextReview),
			truncate(card.Front, 50))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d card(s)\n", len(cards))
	}
	return nil
}
