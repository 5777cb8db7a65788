// ABOUTME: Pure SM-2 scheduling transition for flashcard reviews
// ABOUTME: Apply takes a card and a recall quality and returns the rescheduled card

package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/VishnuRam04/lumina/internal/models"
)

const (
	// MinQuality and MaxQuality bound the recall grade a reviewer can give.
	MinQuality = 0
	MaxQuality = 5

	// PassingQuality is the lowest grade counted as a successful recall.
	PassingQuality = 3

	// masteryIntervalDays is the interval beyond which a card counts as mastered.
	masteryIntervalDays = 21
)

// Apply runs one SM-2 transition on card for a review graded quality at the
// given time. The input card is not mutated; the rescheduled copy is returned.
// Quality outside [0,5] is rejected before any state is touched.
func Apply(card models.Flashcard, quality int, now time.Time) (models.Flashcard, error) {
	if quality < MinQuality || quality > MaxQuality {
		return models.Flashcard{}, fmt.Errorf("quality %d out of range [%d,%d]", quality, MinQuality, MaxQuality)
	}

	next := card

	if quality >= PassingQuality {
		next.Repetition = card.Repetition + 1
		switch next.Repetition {
		case 1:
			next.Interval = 1
		case 2:
			next.Interval = 6
		default:
			next.Interval = int(math.Floor(float64(card.Interval) * card.EaseFactor))
		}
	} else {
		next.Repetition = 0
		next.Interval = 1
	}

	next.EaseFactor = adjustEase(card.EaseFactor, quality)
	next.NextReview = now.AddDate(0, 0, next.Interval)

	if next.Interval > masteryIntervalDays {
		next.Status = models.StatusMastered
	} else {
		next.Status = models.StatusLearning
	}

	return next, nil
}

// adjustEase applies the SM-2 ease-factor update, clamped at the floor.
func adjustEase(ease float64, quality int) float64 {
	q := float64(quality)
	ease += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	if ease < models.MinEaseFactor {
		ease = models.MinEaseFactor
	}
	return ease
}
