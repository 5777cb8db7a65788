// ABOUTME: Shared service wiring and helpers for CLI commands
// ABOUTME: Builds the index stack for retrieval commands, sqlite-only for card commands
package commands

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"

	"github.com/VishnuRam04/lumina/internal/charm"
	"github.com/VishnuRam04/lumina/internal/config"
	"github.com/VishnuRam04/lumina/internal/core"
	"github.com/VishnuRam04/lumina/internal/index"
	"github.com/VishnuRam04/lumina/internal/llm"
	"github.com/VishnuRam04/lumina/internal/scheduler"
	"github.com/VishnuRam04/lumina/internal/splitter"
	"github.com/VishnuRam04/lumina/internal/storage"
	"github.com/VishnuRam04/lumina/internal/storage/sqlite"
)

// appServices holds the fully wired stack for commands that touch the
// vector index and LLM. Close releases the underlying stores.
type appServices struct {
	cfg        *config.Config
	charm      *charm.Client
	db         *sqlite.DB
	index      *index.Index
	ingest     *core.IngestService
	chat       *core.ChatService
	flashcards *core.FlashcardService
	quizzes    *core.QuizService
	reviews    *scheduler.ReviewService
}

func newAppServices() (*appServices, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	charmClient, err := charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		return nil, fmt.Errorf("opening charm KV: %w", err)
	}

	docStore, err := storage.NewCharmStore(charmClient, cfg.VectorDim)
	if err != nil {
		charmClient.Close()
		return nil, fmt.Errorf("initializing document store: %w", err)
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		charmClient.Close()
		return nil, fmt.Errorf("opening flashcard database: %w", err)
	}

	llmClient, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		VectorDim:      cfg.VectorDim,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		charmClient.Close()
		db.Close()
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	sp, err := splitter.NewWithSize(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		charmClient.Close()
		db.Close()
		return nil, fmt.Errorf("configuring splitter: %w", err)
	}

	ix := index.New(sp, llmClient, docStore)
	cardStore := sqlite.NewFlashcardStore(db)
	quizStore := sqlite.NewQuizStore(db)

	return &appServices{
		cfg:        cfg,
		charm:      charmClient,
		db:         db,
		index:      ix,
		ingest:     core.NewIngestService(ix),
		chat:       core.NewChatService(ix, llmClient),
		flashcards: core.NewFlashcardService(ix, llmClient, cardStore),
		quizzes:    core.NewQuizService(ix, llmClient, quizStore),
		reviews:    scheduler.NewReviewService(cardStore),
	}, nil
}

func (s *appServices) Close() {
	if s.db != nil {
		s.db.Close()
	}
	if s.charm != nil {
		s.charm.Close()
	}
}

// openCardDB opens only the sqlite store, for commands that never touch the
// index or the LLM and should work without an API key.
func openCardDB() (*sqlite.DB, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening flashcard database: %w", err)
	}
	return db, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

// formatDue formats a review due time relative to now
func formatDue(t time.Time) string {
	now := time.Now()
	if !t.After(now) {
		return "due now"
	}
	diff := t.Sub(now)
	if diff < 24*time.Hour {
		return fmt.Sprintf("in %dh", int(diff.Hours())+1)
	}
	if diff < 7*24*time.Hour {
		return fmt.Sprintf("in %dd", int(diff.Hours()/24)+1)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
