// ABOUTME: Tests for flashcard generation and listing
// ABOUTME: New cards must carry fresh scheduling state and be due immediately

package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VishnuRam04/lumina/internal/llm"
	"github.com/VishnuRam04/lumina/internal/models"
)

func TestGenerateFromFile_PersistsCardsWithFreshState(t *testing.T) {
	retriever := &stubRetriever{results: map[string][]models.SearchResult{
		"bio.txt": {chunk("bio.txt", "The cell membrane controls transport.")},
	}}
	llmStub := &stubLLM{cards: []llm.CardContent{
		{Front: "What controls transport into the cell?", Back: "The cell membrane"},
		{Front: "Name the powerhouse of the cell", Back: "Mitochondria"},
	}}
	store := newMemCardStore()
	svc := NewFlashcardService(retriever, llmStub, store)
	svc.now = func() time.Time { return testTime }

	cards, err := svc.GenerateFromFile(context.Background(), "subj-1", "bio.txt", 2)
	if err != nil {
		t.Fatalf("GenerateFromFile() error = %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}

	for _, card := range cards {
		if card.ID == "" {
			t.Error("card has no id")
		}
		if card.Repetition != 0 || card.Interval != 0 {
			t.Errorf("card %s has scheduling state %d/%d, want fresh 0/0", card.ID, card.Repetition, card.Interval)
		}
		if card.EaseFactor != models.DefaultEaseFactor {
			t.Errorf("EaseFactor = %v, want %v", card.EaseFactor, models.DefaultEaseFactor)
		}
		if card.Status != models.StatusNew {
			t.Errorf("Status = %s, want new", card.Status)
		}
		if !card.Due(testTime) {
			t.Errorf("card %s not due immediately", card.ID)
		}
		if card.FileID != "bio.txt" {
			t.Errorf("FileID = %q, want bio.txt", card.FileID)
		}
	}
}

func TestGenerateFromFile_NoMaterial(t *testing.T) {
	svc := NewFlashcardService(&stubRetriever{}, &stubLLM{}, newMemCardStore())
	if _, err := svc.GenerateFromFile(context.Background(), "subj-1", "missing.txt", 5); err == nil {
		t.Error("GenerateFromFile() = nil error, want no-material error")
	}
}

func TestGenerateFromFile_InvalidCount(t *testing.T) {
	svc := NewFlashcardService(&stubRetriever{}, &stubLLM{}, newMemCardStore())
	if _, err := svc.GenerateFromFile(context.Background(), "subj-1", "bio.txt", 0); err == nil {
		t.Error("GenerateFromFile() = nil error, want count validation error")
	}
}

func TestGenerateFromFile_LLMErrorSurfaced(t *testing.T) {
	retriever := &stubRetriever{results: map[string][]models.SearchResult{
		"bio.txt": {chunk("bio.txt", "material")},
	}}
	wantErr := errors.New("rate limited")
	svc := NewFlashcardService(retriever, &stubLLM{err: wantErr}, newMemCardStore())

	_, err := svc.GenerateFromFile(context.Background(), "subj-1", "bio.txt", 3)
	if !errors.Is(err, wantErr) {
		t.Errorf("GenerateFromFile() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestCreate_ManualCard(t *testing.T) {
	store := newMemCardStore()
	svc := NewFlashcardService(&stubRetriever{}, &stubLLM{}, store)
	svc.now = func() time.Time { return testTime }

	card, err := svc.Create(context.Background(), "subj-1", "", "  What is entropy?  ", "A measure of disorder")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if card.Front != "What is entropy?" {
		t.Errorf("Front = %q, want trimmed", card.Front)
	}
	if card.Status != models.StatusNew {
		t.Errorf("Status = %s, want new", card.Status)
	}

	if _, err := svc.Create(context.Background(), "subj-1", "", "", "back"); err == nil {
		t.Error("empty front should be rejected")
	}
}

func TestDue_FiltersByTime(t *testing.T) {
	store := newMemCardStore()
	svc := NewFlashcardService(&stubRetriever{}, &stubLLM{}, store)
	svc.now = func() time.Time { return testTime }

	dueCard := models.NewFlashcard("subj-1", "", "due", "b", testTime.AddDate(0, 0, -1))
	store.Put(context.Background(), dueCard)

	laterCard := models.NewFlashcard("subj-1", "", "later", "b", testTime)
	laterCard.NextReview = testTime.AddDate(0, 0, 5)
	store.Put(context.Background(), laterCard)

	got, err := svc.Due(context.Background(), "subj-1")
	if err != nil {
		t.Fatalf("Due() error = %v", err)
	}
	if len(got) != 1 || got[0].Front != "due" {
		t.Errorf("Due() = %d cards, want only the due one", len(got))
	}
}
