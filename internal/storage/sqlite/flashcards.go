// ABOUTME: Flashcard persistence on SQLite with optimistic locking
// ABOUTME: Update is a compare-and-set on the version column
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/storage"
)

// FlashcardStore handles flashcard persistence
type FlashcardStore struct {
	db *DB
}

// NewFlashcardStore creates a new FlashcardStore
func NewFlashcardStore(db *DB) *FlashcardStore {
	return &FlashcardStore{db: db}
}

const flashcardColumns = `id, subject_id, file_id, front, back, repetition, interval, ease_factor, next_review, status, version, created_at`

// Get retrieves a card by id
func (s *FlashcardStore) Get(ctx context.Context, id string) (models.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return models.Flashcard{}, err
	}

	row := s.db.QueryRow(`SELECT `+flashcardColumns+` FROM flashcards WHERE id = ?`, id)
	card, err := scanFlashcard(row)
	if err == sql.ErrNoRows {
		return models.Flashcard{}, fmt.Errorf("flashcard %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Flashcard{}, fmt.Errorf("get flashcard %s: %w", id, err)
	}
	return card, nil
}

// Put creates a card, assigning an id and the initial version
func (s *FlashcardStore) Put(ctx context.Context, card models.Flashcard) (models.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return models.Flashcard{}, err
	}

	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}
	card.Version = 1

	_, err := s.db.Exec(`
		INSERT INTO flashcards (`+flashcardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, card.ID, card.SubjectID, nullString(card.FileID), card.Front, card.Back,
		card.Repetition, card.Interval, card.EaseFactor, card.NextReview,
		string(card.Status), card.Version, card.CreatedAt)
	if err != nil {
		return models.Flashcard{}, fmt.Errorf("put flashcard: %w", err)
	}
	return card, nil
}

// Update writes the card if its version still matches the stored one.
// A version miss on an existing card is ErrConcurrentModification.
func (s *FlashcardStore) Update(ctx context.Context, card models.Flashcard) (models.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return models.Flashcard{}, err
	}

	res, err := s.db.Exec(`
		UPDATE flashcards
		SET repetition = ?, interval = ?, ease_factor = ?, next_review = ?,
		    status = ?, front = ?, back = ?, version = version + 1
		WHERE id = ? AND version = ?
	`, card.Repetition, card.Interval, card.EaseFactor, card.NextReview,
		string(card.Status), card.Front, card.Back, card.ID, card.Version)
	if err != nil {
		return models.Flashcard{}, fmt.Errorf("update flashcard %s: %w", card.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Flashcard{}, fmt.Errorf("update flashcard %s: %w", card.ID, err)
	}
	if affected == 1 {
		card.Version++
		return card, nil
	}

	// Distinguish a stale version from a missing card
	var exists int
	err = s.db.QueryRow(`SELECT COUNT(*) FROM flashcards WHERE id = ?`, card.ID).Scan(&exists)
	if err != nil {
		return models.Flashcard{}, fmt.Errorf("update flashcard %s: %w", card.ID, err)
	}
	if exists == 0 {
		return models.Flashcard{}, fmt.Errorf("flashcard %s: %w", card.ID, storage.ErrNotFound)
	}
	return models.Flashcard{}, fmt.Errorf("flashcard %s: %w", card.ID, storage.ErrConcurrentModification)
}

// BySubject lists all cards for a subject, oldest first
func (s *FlashcardStore) BySubject(ctx context.Context, subjectID string) ([]models.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT `+flashcardColumns+` FROM flashcards
		WHERE subject_id = ?
		ORDER BY created_at, id
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list flashcards for %s: %w", subjectID, err)
	}
	defer rows.Close()

	return collectFlashcards(rows)
}

// Due lists the subject's cards due at or before now, most overdue first
func (s *FlashcardStore) Due(ctx context.Context, subjectID string, now time.Time) ([]models.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT `+flashcardColumns+` FROM flashcards
		WHERE subject_id = ? AND next_review <= ?
		ORDER BY next_review, id
	`, subjectID, now)
	if err != nil {
		return nil, fmt.Errorf("list due flashcards for %s: %w", subjectID, err)
	}
	defer rows.Close()

	return collectFlashcards(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFlashcard(row rowScanner) (models.Flashcard, error) {
	var (
		card   models.Flashcard
		fileID sql.NullString
		status string
	)
	err := row.Scan(&card.ID, &card.SubjectID, &fileID, &card.Front, &card.Back,
		&card.Repetition, &card.Interval, &card.EaseFactor, &card.NextReview,
		&status, &card.Version, &card.CreatedAt)
	if err != nil {
		return models.Flashcard{}, err
	}
	if fileID.Valid {
		card.FileID = fileID.String
	}
	card.Status = models.CardStatus(status)
	return card, nil
}

func collectFlashcards(rows *sql.Rows) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
