// ABOUTME: FlashcardStore and QuizStore capability interfaces
// ABOUTME: Review writes go through a compare-and-set Update
package storage

import (
	"context"
	"time"

	"github.com/VishnuRam04/lumina/internal/models"
)

// FlashcardStore persists flashcards keyed by id. Update performs an
// optimistic compare-and-set on the card's version: concurrent reviews of
// the same card surface ErrConcurrentModification instead of losing an
// update.
type FlashcardStore interface {
	// Get returns the card or an error wrapping ErrNotFound
	Get(ctx context.Context, id string) (models.Flashcard, error)

	// Put creates a card, assigning id and initial version
	Put(ctx context.Context, card models.Flashcard) (models.Flashcard, error)

	// Update writes the card if its version still matches, bumping the
	// version; a miss is ErrConcurrentModification, an unknown id wraps
	// ErrNotFound.
	Update(ctx context.Context, card models.Flashcard) (models.Flashcard, error)

	// BySubject lists all cards for a subject
	BySubject(ctx context.Context, subjectID string) ([]models.Flashcard, error)

	// Due lists the subject's cards with NextReview at or before now
	Due(ctx context.Context, subjectID string, now time.Time) ([]models.Flashcard, error)
}

// QuizStore persists generated quizzes
type QuizStore interface {
	Save(ctx context.Context, quiz models.Quiz) error
	BySubject(ctx context.Context, subjectID string) ([]models.Quiz, error)
}
