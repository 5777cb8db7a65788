// ABOUTME: OpenAI client for embeddings and study-content generation
// ABOUTME: Embeddings are dimension-reduced; generation calls return strict JSON
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/util"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultVectorDim is the requested embedding dimension
	DefaultVectorDim = 768

	// maxPromptChars caps source text passed to generation prompts
	maxPromptChars = 15000
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	VectorDim      int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		VectorDim:      DefaultVectorDim,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// Client wraps the OpenAI API client with retry logic
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	vectorDim      int
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a client with the given config
func NewClient(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.VectorDim <= 0 {
		return nil, fmt.Errorf("vector dimension must be positive, got %d", config.VectorDim)
	}

	return &Client{
		client:         openai.NewClient(config.APIKey),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		vectorDim:      config.VectorDim,
		timeout:        config.Timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
	}, nil
}

// Dimension returns the embedding dimension the client requests
func (c *Client) Dimension() int {
	return c.vectorDim
}

// Embed generates an embedding vector for the given text
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				return nil, err
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input:      []string{text},
			Model:      c.embeddingModel,
			Dimensions: c.vectorDim,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}
		return embedding64, nil
	}

	return nil, fmt.Errorf("embedding failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// CardContent is one generated flashcard front/back pair
type CardContent struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GenerateFlashcards asks the chat model for count flashcards over the text
func (c *Client) GenerateFlashcards(ctx context.Context, text string, count int) ([]CardContent, error) {
	if count < 1 {
		return nil, fmt.Errorf("card count must be at least 1, got %d", count)
	}

	systemPrompt := "You are a JSON-generating AI. Output ONLY a valid JSON array."
	userPrompt := fmt.Sprintf(`You are an expert tutor. Create %d high-quality flashcards based on the following text.

Rules:
1. Front: a clear question or concept.
2. Back: a concise but complete answer.
3. Focus: key definitions, formulas, dates, and core concepts.
4. Output: a RAW JSON list of objects. NO Markdown.

Example format:
[{"front": "What is ...?", "back": "It is ..."}]

Text content:
%s`, count, truncateChars(text, maxPromptChars))

	content, err := c.complete(ctx, systemPrompt, userPrompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("flashcard generation: %w", err)
	}

	var cards []CardContent
	if err := json.Unmarshal([]byte(stripFences(content)), &cards); err != nil {
		return nil, fmt.Errorf("flashcard generation: parse response: %w", err)
	}
	return cards, nil
}

// GenerateQuizQuestions asks the chat model for quiz questions grounded in
// the supplied context text
func (c *Client) GenerateQuizQuestions(ctx context.Context, contextText string, count int, difficulty string) ([]models.QuizQuestion, error) {
	if count < 1 {
		return nil, fmt.Errorf("question count must be at least 1, got %d", count)
	}
	if strings.TrimSpace(contextText) == "" {
		return nil, fmt.Errorf("quiz generation requires non-empty context")
	}

	systemPrompt := "You are a JSON-generating AI. Output ONLY a valid JSON array."
	userPrompt := fmt.Sprintf(`You are an expert exam setter. Create a quiz based STRICTLY on the following context.

Context:
%s

Requirements:
1. Create %d questions.
2. Difficulty: %s.
3. Mix question types: 70%% multiple choice, 30%% open ended.
4. Format EXACTLY as a JSON list of objects.

JSON structure for multiple choice:
{"type": "multiple_choice", "question": "...", "options": ["A", "B", "C", "D"], "correct_answer": "A", "explanation": "..."}

JSON structure for open ended:
{"type": "open_ended", "question": "...", "explanation": "key points that must be in the answer"}

Return ONLY the valid JSON list. Do not use markdown code blocks.`, truncateChars(contextText, maxPromptChars), count, difficulty)

	content, err := c.complete(ctx, systemPrompt, userPrompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var raw []struct {
		Type          string   `json:"type"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(stripFences(content)), &raw); err != nil {
		return nil, fmt.Errorf("quiz generation: parse response: %w", err)
	}

	questions := make([]models.QuizQuestion, 0, len(raw))
	for _, item := range raw {
		qt := models.QuestionType(item.Type)
		if qt != models.QuestionMultipleChoice && qt != models.QuestionOpenEnded {
			return nil, fmt.Errorf("quiz generation: unknown question type %q", item.Type)
		}
		questions = append(questions, models.QuizQuestion{
			Type:          qt,
			Question:      item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Explanation,
		})
	}
	return questions, nil
}

// GradeOpenEnded evaluates a student's answer to an open-ended question
func (c *Client) GradeOpenEnded(ctx context.Context, question, userAnswer, contextText string) (models.Grade, error) {
	systemPrompt := "You are a JSON-generating AI. Output ONLY a valid JSON object."
	userPrompt := fmt.Sprintf(`You are a strict but helpful professor grading a student's answer.

Question: %s
Student answer: %s
Context/reference info: %s

Evaluate the answer.
1. Is it correct? Partial credit counts as correct if the main point is hit.
2. Score 0-100.
3. Detailed feedback.
4. Tip for improvement.

Return JSON:
{"is_correct": true, "score": 85, "feedback": "...", "improvement_tip": "..."}`, question, userAnswer, contextText)

	content, err := c.complete(ctx, systemPrompt, userPrompt, 0.3)
	if err != nil {
		return models.Grade{}, fmt.Errorf("grading: %w", err)
	}

	var grade models.Grade
	if err := json.Unmarshal([]byte(stripFences(content)), &grade); err != nil {
		return models.Grade{}, fmt.Errorf("grading: parse response: %w", err)
	}
	if grade.Score < 0 || grade.Score > 100 {
		return models.Grade{}, fmt.Errorf("grading: score %d out of range", grade.Score)
	}
	return grade, nil
}

// Answer generates a tutoring answer grounded in the retrieved context
func (c *Client) Answer(ctx context.Context, question, contextText string) (string, error) {
	systemPrompt := `You are Lumina, a friendly and intelligent study tutor.

Guidelines:
1. Friendly tone: be encouraging and clear.
2. Use standard Markdown table syntax for comparisons; do NOT wrap tables in code blocks.
3. Use the provided context first. If the context does not have the answer you may use general knowledge, but state clearly that it is general info.
4. End with "Source: [filename]" when answering from context, or "Source: General Knowledge" otherwise.`

	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, question)

	content, err := c.complete(ctx, systemPrompt, userPrompt, 0.7)
	if err != nil {
		return "", fmt.Errorf("answer generation: %w", err)
	}
	return stripFences(content), nil
}

// complete runs one chat completion with the client's retry policy
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				return "", err
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: temperature,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// stripFences removes markdown code fences the model sometimes wraps
// around JSON or tables despite instructions
func stripFences(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// truncateChars caps s at n characters
func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// sleepCtx waits for d or until the context is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
