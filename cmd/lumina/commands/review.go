// ABOUTME: CLI command to record a flashcard review
// ABOUTME: Applies the scheduling transition and prints the next review date
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/VishnuRam04/lumina/internal/scheduler"
	"github.com/VishnuRam04/lumina/internal/storage"
	"github.com/VishnuRam04/lumina/internal/storage/sqlite"
)

// NewReviewCmd creates the review command
func NewReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review <card-id> <quality>",
		Short: "Record a flashcard review",
		Long: `Record a flashcard review and reschedule the card.

Quality grades recall from 0 (complete blackout) to 5 (perfect).
Grades below 3 reset the card; 3 and above grow its interval.

Examples:
  lumina review 3f2a91c0 5
  lumina review 3f2a91c0 2`,
		Args: cobra.ExactArgs(2),
		RunE: runReview,
	}

	return cmd
}

func runReview(cmd *cobra.Command, args []string) error {
	cardID := args[0]
	quality, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quality must be a number 0-5, got %q", args[1])
	}

	db, err := openCardDB()
	if err != nil {
		return err
	}
	defer db.Close()

	reviews := scheduler.NewReviewService(sqlite.NewFlashcardStore(db))
	card, err := reviews.Review(cmd.Context(), cardID, quality, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("card %s not found", cardID)
		case errors.Is(err, storage.ErrConcurrentModification):
			return fmt.Errorf("card %s was reviewed concurrently, try again", cardID)
		default:
			return fmt.Errorf("recording review: %w", err)
		}
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(card, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Card %s: %s, next review %s (interval %dd)\n",
			truncate(card.ID, 12), card.Status, card.NextReview.Format("2006-01-02"), card.Interval)
	}
	return nil
}
