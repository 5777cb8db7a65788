// ABOUTME: Chat service answering study questions grounded in indexed notes
// ABOUTME: Retrieves subject-scoped chunks and hands them to the LLM with source markers

package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/VishnuRam04/lumina/internal/models"
)

// Retriever runs metadata-filtered similarity search over the note index
type Retriever interface {
	SearchWithRetry(ctx context.Context, query string, filter models.MetadataFilter, k int) ([]models.SearchResult, error)
}

// Answerer produces a tutoring answer from a question and retrieved context
type Answerer interface {
	Answer(ctx context.Context, question, contextText string) (string, error)
}

// Answer is a tutoring response with the distinct note files it drew from
type Answer struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources"`
}

// ChatService answers questions against a subject's indexed notes
type ChatService struct {
	retriever Retriever
	llm       Answerer
}

func NewChatService(retriever Retriever, llm Answerer) *ChatService {
	return &ChatService{retriever: retriever, llm: llm}
}

// Ask retrieves the most relevant chunks for the subject and asks the LLM to
// answer from them. Sources lists each contributing filename once, in
// retrieval order.
func (s *ChatService) Ask(ctx context.Context, subjectID, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, fmt.Errorf("question must not be empty")
	}

	filter := models.MetadataFilter{SubjectID: subjectID}
	results, err := s.retriever.SearchWithRetry(ctx, question, filter, 0)
	if err != nil {
		return Answer{}, fmt.Errorf("retrieving context: %w", err)
	}

	contextText, sources := buildContext(results)
	text, err := s.llm.Answer(ctx, question, contextText)
	if err != nil {
		return Answer{}, fmt.Errorf("generating answer: %w", err)
	}

	return Answer{Text: text, Sources: sources}, nil
}

// buildContext formats retrieved chunks into source-tagged blocks and collects
// the distinct filenames in order of first appearance.
func buildContext(results []models.SearchResult) (string, []string) {
	if len(results) == 0 {
		return "No notes matched this question.", nil
	}

	var blocks []string
	var sources []string
	seen := map[string]bool{}
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("[Source: %s]\n%s", r.Metadata.Filename, r.Text))
		if !seen[r.Metadata.Filename] {
			seen[r.Metadata.Filename] = true
			sources = append(sources, r.Metadata.Filename)
		}
	}
	return strings.Join(blocks, "\n\n"), sources
}
