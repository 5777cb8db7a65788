// ABOUTME: Quiz service generating and grading quizzes from indexed notes
// ABOUTME: Gathers material with probe queries, deduplicated and capped

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/storage"
)

const (
	// probeK is how many chunks each probe query pulls per file.
	probeK = 3

	// maxContextChunks caps the material handed to the LLM per generation.
	maxContextChunks = 15
)

// probeQueries sample each file's material from several angles before
// generation, instead of relying on a single search.
var probeQueries = []string{
	"Important definitions",
	"Key concepts",
	"Summary",
	"Formulas and theorems",
}

// QuizGenerator produces and grades quiz questions from note material
type QuizGenerator interface {
	GenerateQuizQuestions(ctx context.Context, contextText string, count int, difficulty string) ([]models.QuizQuestion, error)
	GradeOpenEnded(ctx context.Context, question, userAnswer, contextText string) (models.Grade, error)
}

// QuizService builds quizzes from a subject's indexed files and grades answers
type QuizService struct {
	retriever Retriever
	llm       QuizGenerator
	quizzes   storage.QuizStore
	now       func() time.Time
}

func NewQuizService(retriever Retriever, llm QuizGenerator, quizzes storage.QuizStore) *QuizService {
	return &QuizService{retriever: retriever, llm: llm, quizzes: quizzes, now: time.Now}
}

// Generate collects material from the given files, asks the LLM for count
// questions at the given difficulty, and persists the resulting quiz.
func (s *QuizService) Generate(ctx context.Context, subjectID string, filenames []string, count int, difficulty string) (models.Quiz, error) {
	if len(filenames) == 0 {
		return models.Quiz{}, fmt.Errorf("at least one file is required")
	}
	if count < 1 {
		return models.Quiz{}, fmt.Errorf("question count must be positive, got %d", count)
	}

	chunks, err := s.gatherMaterial(ctx, subjectID, filenames)
	if err != nil {
		return models.Quiz{}, err
	}
	if len(chunks) == 0 {
		return models.Quiz{}, fmt.Errorf("no indexed material found for files %v", filenames)
	}

	questions, err := s.llm.GenerateQuizQuestions(ctx, strings.Join(chunks, "\n\n"), count, difficulty)
	if err != nil {
		return models.Quiz{}, fmt.Errorf("generating questions: %w", err)
	}
	for i := range questions {
		questions[i].ID = uuid.New().String()
	}

	now := s.now()
	quiz := models.Quiz{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		Title:     "Quiz - " + now.Format("2006-01-02 15:04"),
		FileIDs:   filenames,
		Questions: questions,
		CreatedAt: now,
	}
	if err := s.quizzes.Save(ctx, quiz); err != nil {
		return models.Quiz{}, fmt.Errorf("saving quiz: %w", err)
	}
	return quiz, nil
}

// gatherMaterial probes each file from several angles, deduplicates the
// retrieved chunks by text, and caps the total.
func (s *QuizService) gatherMaterial(ctx context.Context, subjectID string, filenames []string) ([]string, error) {
	var chunks []string
	seen := map[string]bool{}

	for _, filename := range filenames {
		filter := models.MetadataFilter{SubjectID: subjectID, Filename: filename}
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
	}
	return chunks, nil
}

// List returns the subject's quizzes, newest first
func (s *QuizService) List(ctx context.Context, subjectID string) ([]models.Quiz, error) {
	return s.quizzes.BySubject(ctx, subjectID)
}

// GradeAnswer grades a single answer. Multiple-choice answers are matched
// locally against the correct option; open-ended answers go to the LLM with
// the question's answer key as context.
func (s *QuizService) GradeAnswer(ctx context.Context, question models.QuizQuestion, answer string) (models.Grade, error) {
	answer = strings.TrimSpace(answer)

	switch question.Type {
	case models.QuestionMultipleChoice:
		if strings.EqualFold(answer, strings.TrimSpace(question.CorrectAnswer)) {
			return models.Grade{IsCorrect: true, Score: 100, Feedback: "Correct. " + question.Explanation}, nil
		}
		return models.Grade{
			IsCorrect: false,
			Score:     0,
			Feedback:  fmt.Sprintf("The correct answer is %q. %s", question.CorrectAnswer, question.Explanation),
		}, nil

	case models.QuestionOpenEnded:
		key := question.CorrectAnswer
		if question.Explanation != "" {
			key += "\n" + question.Explanation
		}
		grade, err := s.llm.GradeOpenEnded(ctx, question.Question, answer, key)
		if err != nil {
			return models.Grade{}, fmt.Errorf("grading answer: %w", err)
		}
		return grade, nil

	default:
		return models.Grade{}, fmt.Errorf("unknown question type %q", question.Type)
	}
}
