// ABOUTME: Flashcard service generating cards from indexed notes
// ABOUTME: New cards start with scheduler defaults and are due immediately

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/VishnuRam04/lumina/internal/llm"
	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/storage"
)

// CardGenerator turns note material into front/back card content
type CardGenerator interface {
	GenerateFlashcards(ctx context.Context, text string, count int) ([]llm.CardContent, error)
}

// FlashcardService creates and lists flashcards for a subject
type FlashcardService struct {
	retriever Retriever
	llm       CardGenerator
	cards     storage.FlashcardStore
	now       func() time.Time
}

func NewFlashcardService(retriever Retriever, llm CardGenerator, cards storage.FlashcardStore) *FlashcardService {
	return &FlashcardService{retriever: retriever, llm: llm, cards: cards, now: time.Now}
}

// GenerateFromFile gathers the file's indexed material, asks the LLM for
// count cards, and persists each with fresh scheduling state.
func (s *FlashcardService) GenerateFromFile(ctx context.Context, subjectID, filename string, count int) ([]models.Flashcard, error) {
	if count < 1 {
		return nil, fmt.Errorf("card count must be positive, got %d", count)
	}

	chunks, err := s.gatherMaterial(ctx, subjectID, filename)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no indexed material found for file %s", filename)
	}

	contents, err := s.llm.GenerateFlashcards(ctx, strings.Join(chunks, "\n\n"), count)
	if err != nil {
		return nil, fmt.Errorf("generating cards: %w", err)
	}

	now := s.now()
	saved := make([]models.Flashcard, 0, len(contents))
	for _, c := range contents {
		card, err := s.cards.Put(ctx, models.NewFlashcard(subjectID, filename, c.Front, c.Back, now))
		if err != nil {
			return saved, fmt.Errorf("saving card: %w", err)
		}
		saved = append(saved, card)
	}
	return saved, nil
}

func (s *FlashcardService) gatherMaterial(ctx context.Context, subjectID, filename string) ([]string, error) {
	filter := models.MetadataFilter{SubjectID: subjectID, Filename: filename}
	var chunks []string
	seen := map[string]bool{}

	for _, probe := range probeQueries {
		results, err := s.retriever.SearchWithRetry(ctx, probe, filter, probeK)
		if err != nil {
			return nil, fmt.Errorf("gathering material from %s: %w", filename, err)
		}
		for _, r := range results {
			if seen[r.Text] {
				continue
			}
			seen[r.Text] = true
			chunks = append(chunks, r.Text)
			if len(chunks) >= maxContextChunks {
				return chunks, nil
			}
		}
	}
	return chunks, nil
}

// Create adds a hand-written card with fresh scheduling state
func (s *FlashcardService) Create(ctx context.Context, subjectID, fileID, front, back string) (models.Flashcard, error) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" || back == "" {
		return models.Flashcard{}, fmt.Errorf("card front and back must not be empty")
	}
	return s.cards.Put(ctx, models.NewFlashcard(subjectID, fileID, front, back, s.now()))
}

// List returns all of the subject's cards
func (s *FlashcardService) List(ctx context.Context, subjectID string) ([]models.Flashcard, error) {
	return s.cards.BySubject(ctx, subjectID)
}

// Due returns the subject's cards due for review now
func (s *FlashcardService) Due(ctx context.Context, subjectID string) ([]models.Flashcard, error) {
	return s.cards.Due(ctx, subjectID, s.now())
}
