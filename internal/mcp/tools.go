// ABOUTME: MCP tool definitions and registration for the Lumina server
// ABOUTME: Defines JSON schemas for the ingest, search, chat, flashcard and quiz tools

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/VishnuRam04/lumina/internal/core"
	"github.com/VishnuRam04/lumina/internal/scheduler"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, ingest *core.IngestService, retriever core.Retriever, chat *core.ChatService, flashcards *core.FlashcardService, quizzes *core.QuizService, reviews *scheduler.ReviewService) *Handlers {
	handlers := &Handlers{
		ingest:     ingest,
		retriever:  retriever,
		chat:       chat,
		flashcards: flashcards,
		quizzes:    quizzes,
		reviews:    reviews,
	}

	// 1. ingest_document - Split, embed and index a note file
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a note file into the study index. The file is split into chunks, embedded, and stored under the given subject.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"subject_id": map[string]interface{}{
					"type":        "string",
					"description": "Subject the notes belong to",
				},
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the note file on disk",
				},
			},
			Required: []string{"subject_id", "path"},
		},
	}, handlers.IngestDocument)

	// 2. search_notes - Similarity search over indexed notes
	server.AddTool(mcp.Tool{
		Name:        "search_notes",
		Description: "Search indexed notes by semantic similarity, optionally scoped to a subject and file.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"subject_id": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to this subject",
				},
				"filename": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to this file",
				},
				"k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results (default: 4, max: 10)",
					"default":     4,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchNotes)

	// 3. ask - Answer a study question from indexed notes
	server.AddTool(mcp.Tool{
		Name:        "ask",
		Description: "Answer a study question using the subject's indexed notes, citing source files.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"subject_id": map[string]interface{}{
					"type":        "string",
					"description": "Subject whose notes to draw from",
				},
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
			},
			Required: []string{"subject_id", "question"},
		},
	}, handlers.Ask)

	// 4. delete_document - Remove every chunk of a file from the index
	server.AddTool(mcp.Tool{
		Name:        "delete_document",
		Description: "Delete all indexed chunks of a file. Deletion runs in batches until no chunks remain.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"filename": map[string]interface{}{
					"type":        "string",
					"description": "File whose chunks to delete",
				},
			},
			Required: []string{"filename"},
		},
	}, handlers.DeleteDocument)

	// 5. generate_flashcards - Create flashcards from a file's material
	server.AddTool(mcp.Tool{
		Name:        "generate_flashcards",
		Description: "Generate spaced-repetition flashcards from an indexed file's material.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"subject_id": map[string]interface{}{
					"type":        "string",
					"description": "Subject the cards belong to",
				},
				"filename": map[string]interface{}{
					"type":        "string",
					"description": "Indexed file to draw material from",
				},
				"count": map[string]interface{}{
					"type":        "number",
					"description": "Number of cards to generate (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"subject_id", "filename"},
		},
	}, handlers.GenerateFlashcards)

	// 6. list_flashcards - List a subject's flashcards
	server.AddTool(mcp.Tool{
		Name:        "list_flashcards",
		Description: "List all flashcards for a subject with their scheduling state.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"subject_id": map[string]interface{}{
					"type":        "string",
					"description": "Subject whose cards to list",
				},
			},
			Required: []string{"subject_id"},
		},
	}, handlers.ListFlashcards)

	// 7. due_flashcards - List cards due for review
	server.AddTool(mcp.Tool{
		Name:        "due_flashcards",
		Description: "List the subject's flashcards that are due for review now.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"subject_id": map[string]interface{}{
					"type":        "string",
					"description": "Subject whose due cards to list",
				},
			},
			Required: []string{"subject_id"},
		},
	}, handlers.DueFlashcards)

	// 8. review_flashcard - Record a review and reschedule the card
	server.AddTool(mcp.Tool{
		Name:        "review_flashcard",
		Description: "Record a flashcard review with a recall quality from 0 (blackout) to 5 (perfect) and reschedule the card.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"card_id": map[string]interface{}{
					"type":        "string",
					"description": "Card being reviewed",
				},
				"quality": map[string]interface{}{
					"type":        "number",
					"description": "Recall quality, 0-5",
				},
			},
			Required: []string{"card_id", "quality"},
		},
	}, handlers.ReviewFlashcard)

	// 9. generate_quiz - Build a quiz from indexed files
	server.AddTool(mcp.Tool{
		Name:        "generate_quiz",
		Description: "Generate a quiz from one or more indexed files, mixing multiple-choice and open-ended questions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"subject_id": map[string]interface{}{
					"type":        "string",
					"description": "Subject the quiz belongs to",
				},
				"filenames": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Indexed files to draw questions from",
				},
				"count": map[string]interface{}{
					"type":        "number",
					"description": "Number of questions (default: 5)",
					"default":     5,
				},
				"difficulty": map[string]interface{}{
					"type":        "string",
					"description": "Question difficulty: easy, medium, or hard (default: medium)",
					"default":     "medium",
				},
			},
			Required: []string{"subject_id", "filenames"},
		},
	}, handlers.GenerateQuiz)

	// 10. grade_answer - Grade an answer to a quiz question
	server.AddTool(mcp.Tool{
		Name:        "grade_answer",
		Description: "Grade an answer to a quiz question. Multiple-choice answers are matched exactly; open-ended answers are graded against the answer key.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question text",
				},
				"question_type": map[string]interface{}{
					"type":        "string",
					"description": "Question type: multiple_choice or open_ended",
				},
				"correct_answer": map[string]interface{}{
					"type":        "string",
					"description": "The answer key",
				},
				"explanation": map[string]interface{}{
					"type":        "string",
					"description": "Optional explanation backing the answer key",
				},
				"answer": map[string]interface{}{
					"type":        "string",
					"description": "The answer to grade",
				},
			},
			Required: []string{"question", "question_type", "correct_answer", "answer"},
		},
	}, handlers.GradeAnswer)

	return handlers
}
