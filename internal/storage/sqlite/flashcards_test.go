// ABOUTME: Tests for flashcard persistence and optimistic locking
// ABOUTME: Uses an in-memory SQLite database

package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/storage"
)

func testStore(t *testing.T) *FlashcardStore {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewFlashcardStore(db)
}

func TestFlashcardStore_PutAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	card := models.NewFlashcard("subj-1", "file-1", "What is entropy?", "A measure of disorder.", now)
	saved, err := store.Put(ctx, card)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("Put() should assign an id")
	}
	if saved.Version != 1 {
		t.Errorf("Version = %d, want 1", saved.Version)
	}

	got, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Front != card.Front || got.Back != card.Back {
		t.Errorf("Get() content mismatch: %+v", got)
	}
	if got.Status != models.StatusNew {
		t.Errorf("Status = %q, want new", got.Status)
	}
	if got.EaseFactor != models.DefaultEaseFactor {
		t.Errorf("EaseFactor = %v, want %v", got.EaseFactor, models.DefaultEaseFactor)
	}
	if got.FileID != "file-1" {
		t.Errorf("FileID = %q, want file-1", got.FileID)
	}
}

func TestFlashcardStore_GetMissing(t *testing.T) {
	store := testStore(t)

	_, err := store.Get(context.Background(), "no-such-card")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestFlashcardStore_UpdateBumpsVersion(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	saved, err := store.Put(ctx, models.NewFlashcard("subj-1", "", "Q", "A", time.Now()))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	saved.Repetition = 1
	saved.Interval = 1
	saved.Status = models.StatusLearning
	updated, err := store.Update(ctx, saved)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("Version = %d, want 2", updated.Version)
	}

	got, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Repetition != 1 || got.Status != models.StatusLearning {
		t.Errorf("Update not persisted: %+v", got)
	}
}

func TestFlashcardStore_UpdateStaleVersion(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	saved, err := store.Put(ctx, models.NewFlashcard("subj-1", "", "Q", "A", time.Now()))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// First writer wins
	if _, err := store.Update(ctx, saved); err != nil {
		t.Fatalf("first Update() error = %v", err)
	}

	// Second writer holds the stale version
	_, err = store.Update(ctx, saved)
	if !errors.Is(err, storage.ErrConcurrentModification) {
		t.Errorf("stale Update() error = %v, want ErrConcurrentModification", err)
	}
}

func TestFlashcardStore_UpdateMissingCard(t *testing.T) {
	store := testStore(t)

	card := models.NewFlashcard("subj-1", "", "Q", "A", time.Now())
	card.ID = "ghost"
	card.Version = 1

	_, err := store.Update(context.Background(), card)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestFlashcardStore_BySubject(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	now := time.Now()

	for i, subj := range []string{"bio", "bio", "chem"} {
		card := models.NewFlashcard(subj, "", "Q", "A", now.Add(time.Duration(i)*time.Second))
		if _, err := store.Put(ctx, card); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	cards, err := store.BySubject(ctx, "bio")
	if err != nil {
		t.Fatalf("BySubject() error = %v", err)
	}
	if len(cards) != 2 {
		t.Errorf("BySubject(bio) = %d cards, want 2", len(cards))
	}

	cards, err = store.BySubject(ctx, "physics")
	if err != nil {
		t.Fatalf("BySubject() error = %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("BySubject(physics) = %d cards, want 0", len(cards))
	}
}

func TestFlashcardStore_Due(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	overdue := models.NewFlashcard("bio", "", "overdue", "A", now.Add(-24*time.Hour))
	upcoming := models.NewFlashcard("bio", "", "upcoming", "A", now)
	upcoming.NextReview = now.Add(24 * time.Hour)

	if _, err := store.Put(ctx, overdue); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := store.Put(ctx, upcoming); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	due, err := store.Due(ctx, "bio", now)
	if err != nil {
		t.Fatalf("Due() error = %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("Due() = %d cards, want 1", len(due))
	}
	if due[0].Front != "overdue" {
		t.Errorf("due card = %q, want the overdue one", due[0].Front)
	}
}
