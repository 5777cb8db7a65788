// ABOUTME: Flashcard model with SM-2 scheduling fields
// ABOUTME: Status is derived from repetition/interval, never set independently
package models

import "time"

// CardStatus is a derived view of a card's scheduling state
type CardStatus string

const (
	StatusNew      CardStatus = "new"
	StatusLearning CardStatus = "learning"
	StatusMastered CardStatus = "mastered"
)

// SM-2 defaults for a freshly created card
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// Flashcard is one spaced-repetition item. Repetition, Interval and
// EaseFactor are mutated only by the review scheduler; Version backs the
// optimistic compare-and-set on review writes.
type Flashcard struct {
	ID         string     `json:"id"`
	SubjectID  string     `json:"subject_id"`
	FileID     string     `json:"file_id,omitempty"`
	Front      string     `json:"front"`
	Back       string     `json:"back"`
	Repetition int        `json:"repetition"`
	Interval   int        `json:"interval"`
	EaseFactor float64    `json:"ease_factor"`
	NextReview time.Time  `json:"next_review"`
	Status     CardStatus `json:"status"`
	Version    int64      `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewFlashcard creates a card with SM-2 defaults: repetition 0, interval 0,
// ease factor 2.5, due immediately, status new.
func NewFlashcard(subjectID, fileID, front, back string, now time.Time) Flashcard {
	return Flashcard{
		SubjectID:  subjectID,
		FileID:     fileID,
		Front:      front,
		Back:       back,
		Repetition: 0,
		Interval:   0,
		EaseFactor: DefaultEaseFactor,
		NextReview: now,
		Status:     StatusNew,
		CreatedAt:  now,
	}
}

// Due reports whether the card is due for review at the given time
func (c Flashcard) Due(now time.Time) bool {
	return !c.NextReview.After(now)
}
