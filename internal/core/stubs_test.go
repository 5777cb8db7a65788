// ABOUTME: Shared test stubs for the core services
// ABOUTME: Stub retriever, LLM, and stores with canned responses

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/VishnuRam04/lumina/internal/llm"
	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/storage"
)

var testTime = time.Date(2026, 4, 2, 14, 30, 0, 0, time.UTC)

// stubRetriever returns canned results per filename filter and records the
// queries it was asked.
type stubRetriever struct {
	results map[string][]models.SearchResult // keyed by filter.Filename
	queries []string
	err     error
}

func (r *stubRetriever) SearchWithRetry(_ context.Context, query string, filter models.MetadataFilter, _ int) ([]models.SearchResult, error) {
	r.queries = append(r.queries, query)
	if r.err != nil {
		return nil, r.err
	}
	return r.results[filter.Filename], nil
}

func chunk(filename, text string) models.SearchResult {
	return models.SearchResult{
		Text:     text,
		Metadata: models.ChunkMetadata{SubjectID: "subj-1", Filename: filename, SourcePath: "uploads/" + filename},
		Score:    0.9,
	}
}

type stubLLM struct {
	answer    string
	answerCtx string // records the context passed to Answer
	cards     []llm.CardContent
	questions []models.QuizQuestion
	grade     models.Grade
	gradeKey  string // records the context passed to GradeOpenEnded
	recvText  string // records the material passed to generation calls
	err       error
}

func (l *stubLLM) Answer(_ context.Context, _ string, contextText string) (string, error) {
	l.answerCtx = contextText
	if l.err != nil {
		return "", l.err
	}
	return l.answer, nil
}

func (l *stubLLM) GenerateFlashcards(_ context.Context, text string, _ int) ([]llm.CardContent, error) {
	l.recvText = text
	if l.err != nil {
		return nil, l.err
	}
	return l.cards, nil
}

func (l *stubLLM) GenerateQuizQuestions(_ context.Context, contextText string, _ int, _ string) ([]models.QuizQuestion, error) {
	l.recvText = contextText
	if l.err != nil {
		return nil, l.err
	}
	return l.questions, nil
}

func (l *stubLLM) GradeOpenEnded(_ context.Context, _, _, contextText string) (models.Grade, error) {
	l.gradeKey = contextText
	if l.err != nil {
		return models.Grade{}, l.err
	}
	return l.grade, nil
}

type stubQuizStore struct {
	saved []models.Quiz
	err   error
}

func (s *stubQuizStore) Save(_ context.Context, quiz models.Quiz) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, quiz)
	return nil
}

func (s *stubQuizStore) BySubject(_ context.Context, subjectID string) ([]models.Quiz, error) {
	var out []models.Quiz
	for _, q := range s.saved {
		if q.SubjectID == subjectID {
			out = append(out, q)
		}
	}
	return out, nil
}

type memCardStore struct {
	cards  map[string]models.Flashcard
	nextID int
	putErr error
}

func newMemCardStore() *memCardStore {
	return &memCardStore{cards: map[string]models.Flashcard{}}
}

func (s *memCardStore) Get(_ context.Context, id string) (models.Flashcard, error) {
	card, ok := s.cards[id]
	if !ok {
		return models.Flashcard{}, fmt.Errorf("card %s: %w", id, storage.ErrNotFound)
	}
	return card, nil
}

func (s *memCardStore) Put(_ context.Context, card models.Flashcard) (models.Flashcard, error) {
	if s.putErr != nil {
		return models.Flashcard{}, s.putErr
	}
	s.nextID++
	card.ID = fmt.Sprintf("card-%04d", s.nextID)
	card.Version = 1
	s.cards[card.ID] = card
	return card, nil
}

func (s *memCardStore) Update(_ context.Context, card models.Flashcard) (models.Flashcard, error) {
	current, ok := s.cards[card.ID]
	if !ok {
		return models.Flashcard{}, fmt.Errorf("card %s: %w", card.ID, storage.ErrNotFound)
	}
	if current.Version != card.Version {
		return models.Flashcard{}, storage.ErrConcurrentModification
	}
	card.Version++
	s.cards[card.ID] = card
	return card, nil
}

func (s *memCardStore) BySubject(_ context.Context, subjectID string) ([]models.Flashcard, error) {
	var out []models.Flashcard
	for _, c := range s.cards {
		if c.SubjectID == subjectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memCardStore) Due(_ context.Context, subjectID string, now time.Time) ([]models.Flashcard, error) {
	var out []models.Flashcard
	for _, c := range s.cards {
		if c.SubjectID == subjectID && c.Due(now) {
			out = append(out, c)
		}
	}
	return out, nil
}
