// ABOUTME: MCP tool handler implementations for the Lumina server
// ABOUTME: Parses tool arguments, calls the core services, and marshals JSON results

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/VishnuRam04/lumina/internal/core"
	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/scheduler"
	"github.com/VishnuRam04/lumina/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	ingest     *core.IngestService
	retriever  core.Retriever
	chat       *core.ChatService
	flashcards *core.FlashcardService
	quizzes    *core.QuizService
	reviews    *scheduler.ReviewService
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subjectID, err := request.RequireString("subject_id")
	if err != nil {
		return mcp.NewToolResultError("subject_id argument is required and must be a string"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	chunks, err := h.ingest.IngestFile(ctx, subjectID, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingest failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"subject_id": subjectID,
		"path":       path,
		"chunks":     chunks,
	})
}

// SearchNotes handles the search_notes tool
func (h *Handlers) SearchNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	filter := models.MetadataFilter{
		SubjectID: request.GetString("subject_id", ""),
		Filename:  request.GetString("filename", ""),
	}
	k := request.GetInt("k", 0)

	results, err := h.retriever.SearchWithRetry(ctx, query, filter, k)
	if err != nil {
		var missing *storage.MissingIndexError
		if errors.As(err, &missing) {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: index missing, provision it at %s", missing.RemediationURL)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	type hit struct {
		Text     string  `json:"text"`
		Filename string  `json:"filename"`
		Score    float64 `json:"score"`
	}
	hits := make([]hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, hit{Text: r.Text, Filename: r.Metadata.Filename, Score: r.Score})
	}

	return jsonResult(map[string]interface{}{"results": hits})
}

// Ask handles the ask tool
func (h *Handlers) Ask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subjectID, err := request.RequireString("subject_id")
	if err != nil {
		return mcp.NewToolResultError("subject_id argument is required and must be a string"), nil
	}
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.chat.Ask(ctx, subjectID, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	return jsonResult(answer)
}

// DeleteDocument handles the delete_document tool
func (h *Handlers) DeleteDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := request.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError("filename argument is required and must be a string"), nil
	}

	deleted, err := h.ingest.DeleteFile(ctx, filename)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"filename": filename,
		"deleted":  deleted,
	})
}

// GenerateFlashcards handles the generate_flashcards tool
func (h *Handlers) GenerateFlashcards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subjectID, err := request.RequireString("subject_id")
	if err != nil {
		return mcp.NewToolResultError("subject_id argument is required and must be a string"), nil
	}
	filename, err := request.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError("filename argument is required and must be a string"), nil
	}
	count := request.GetInt("count", 5)

	cards, err := h.flashcards.GenerateFromFile(ctx, subjectID, filename, count)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("flashcard generation failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"cards": cards})
}

// ListFlashcards handles the list_flashcards tool
func (h *Handlers) ListFlashcards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subjectID, err := request.RequireString("subject_id")
	if err != nil {
		return mcp.NewToolResultError("subject_id argument is required and must be a string"), nil
	}

	cards, err := h.flashcards.List(ctx, subjectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing flashcards failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"cards": cards})
}

// DueFlashcards handles the due_flashcards tool
func (h *Handlers) DueFlashcards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subjectID, err := request.RequireString("subject_id")
	if err != nil {
		return mcp.NewToolResultError("subject_id argument is required and must be a string"), nil
	}

	cards, err := h.flashcards.Due(ctx, subjectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing due flashcards failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{"cards": cards})
}

// ReviewFlashcard handles the review_flashcard tool
func (h *Handlers) ReviewFlashcard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID, err := request.RequireString("card_id")
	if err != nil {
		return mcp.NewToolResultError("card_id argument is required and must be a string"), nil
	}
	quality, err := request.RequireInt("quality")
	if err != nil {
		return mcp.NewToolResultError("quality argument is required and must be a number"), nil
	}

	card, err := h.reviews.Review(ctx, cardID, quality, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return mcp.NewToolResultError(fmt.Sprintf("card %s not found", cardID)), nil
		case errors.Is(err, storage.ErrConcurrentModification):
			return mcp.NewToolResultError("card was reviewed concurrently; fetch it again and retry"), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("review failed: %v", err)), nil
		}
	}

	return jsonResult(card)
}

// GenerateQuiz handles the generate_quiz tool
func (h *Handlers) GenerateQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subjectID, err := request.RequireString("subject_id")
	if err != nil {
		return mcp.NewToolResultError("subject_id argument is required and must be a string"), nil
	}
	filenames := request.GetStringSlice("filenames", nil)
	if len(filenames) == 0 {
		return mcp.NewToolResultError("filenames argument is required and must be a non-empty array of strings"), nil
	}
	count := request.GetInt("count", 5)
	difficulty := request.GetString("difficulty", "medium")

	quiz, err := h.quizzes.Generate(ctx, subjectID, filenames, count, difficulty)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("quiz generation failed: %v", err)), nil
	}

	return jsonResult(quiz)
}

// GradeAnswer handles the grade_answer tool
func (h *Handlers) GradeAnswer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	questionText, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	questionType, err := request.RequireString("question_type")
	if err != nil {
		return mcp.NewToolResultError("question_type argument is required and must be a string"), nil
	}
	correctAnswer, err := request.RequireString("correct_answer")
	if err != nil {
		return mcp.NewToolResultError("correct_answer argument is required and must be a string"), nil
	}
	answer, err := request.RequireString("answer")
	if err != nil {
		return mcp.NewToolResultError("answer argument is required and must be a string"), nil
	}

	question := models.QuizQuestion{
		Type:          models.QuestionType(questionType),
		Question:      questionText,
		CorrectAnswer: correctAnswer,
		Explanation:   request.GetString("explanation", ""),
	}

	grade, err := h.quizzes.GradeAnswer(ctx, question, answer)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("grading failed: %v", err)), nil
	}

	return jsonResult(grade)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
