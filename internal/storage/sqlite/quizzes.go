// ABOUTME: Quiz persistence on SQLite
// ABOUTME: Questions and file ids are stored as JSON blobs
package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VishnuRam04/lumina/internal/models"
)

// QuizStore handles quiz persistence
type QuizStore struct {
	db *DB
}

// NewQuizStore creates a new QuizStore
func NewQuizStore(db *DB) *QuizStore {
	return &QuizStore{db: db}
}

// Save stores a quiz, assigning an id if it has none
func (s *QuizStore) Save(ctx context.Context, quiz models.Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now()
	}

	fileIDs, err := json.Marshal(quiz.FileIDs)
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO quizzes (id, subject_id, title, file_ids, questions, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, quiz.ID, quiz.SubjectID, quiz.Title, string(fileIDs), string(questions), quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("save quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// BySubject lists a subject's quizzes, newest first
func (s *QuizStore) BySubject(ctx context.Context, subjectID string) ([]models.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, subject_id, title, file_ids, questions, created_at
		FROM quizzes
		WHERE subject_id = ?
		ORDER BY created_at DESC, id
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes for %s: %w", subjectID, err)
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var (
			quiz      models.Quiz
			fileIDs   string
			questions string
		)
		if err := rows.Scan(&quiz.ID, &quiz.SubjectID, &quiz.Title, &fileIDs, &questions, &quiz.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		if fileIDs != "" {
			if err := json.Unmarshal([]byte(fileIDs), &quiz.FileIDs); err != nil {
				return nil, fmt.Errorf("parse quiz %s file ids: %w", quiz.ID, err)
			}
		}
		if err := json.Unmarshal([]byte(questions), &quiz.Questions); err != nil {
			return nil, fmt.Errorf("parse quiz %s questions: %w", quiz.ID, err)
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}
