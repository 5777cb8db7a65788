// ABOUTME: Review service gluing the SM-2 transition to the flashcard store
// ABOUTME: Writes go through the store's compare-and-set update

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/storage"
)

// ReviewService records flashcard reviews. Concurrent reviews of the same
// card surface storage.ErrConcurrentModification to the caller, who re-reads
// and retries.
type ReviewService struct {
	cards storage.FlashcardStore
}

func NewReviewService(cards storage.FlashcardStore) *ReviewService {
	return &ReviewService{cards: cards}
}

// Review grades the card with the given quality and persists the rescheduled
// state. The returned card carries the new interval, ease factor and version.
func (s *ReviewService) Review(ctx context.Context, cardID string, quality int, now time.Time) (models.Flashcard, error) {
	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return models.Flashcard{}, fmt.Errorf("fetching card %s: %w", cardID, err)
	}

	next, err := Apply(card, quality, now)
	if err != nil {
		return models.Flashcard{}, err
	}

	updated, err := s.cards.Update(ctx, next)
	if err != nil {
		return models.Flashcard{}, fmt.Errorf("saving review for card %s: %w", cardID, err)
	}
	return updated, nil
}

// DueCards lists the subject's cards due at the given time
func (s *ReviewService) DueCards(ctx context.Context, subjectID string, now time.Time) ([]models.Flashcard, error) {
	return s.cards.Due(ctx, subjectID, now)
}
