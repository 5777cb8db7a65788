// ABOUTME: Quiz and quiz question models for generated quizzes
// ABOUTME: Questions are either multiple choice or open ended
package models

import "time"

// QuestionType distinguishes multiple-choice from open-ended questions
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionOpenEnded      QuestionType = "open_ended"
)

// QuizQuestion is one generated question. Options and CorrectAnswer are
// only set for multiple-choice questions.
type QuizQuestion struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Explanation   string       `json:"explanation"`
}

// Quiz is a saved set of questions generated over selected files
type Quiz struct {
	ID        string         `json:"id"`
	SubjectID string         `json:"subject_id"`
	Title     string         `json:"title"`
	FileIDs   []string       `json:"file_ids"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
}

// Grade is the model's evaluation of an open-ended answer
type Grade struct {
	IsCorrect      bool   `json:"is_correct"`
	Score          int    `json:"score"`
	Feedback       string `json:"feedback"`
	ImprovementTip string `json:"improvement_tip"`
}
