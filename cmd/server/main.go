// ABOUTME: Main entry point for the Lumina MCP server with stdio transport
// ABOUTME: Wires config, stores, LLM client, index and services, then serves

package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sashabaranov/go-openai"

	"github.com/VishnuRam04/lumina/internal/charm"
	"github.com/VishnuRam04/lumina/internal/config"
	"github.com/VishnuRam04/lumina/internal/core"
	"github.com/VishnuRam04/lumina/internal/index"
	"github.com/VishnuRam04/lumina/internal/llm"
	luminamcp "github.com/VishnuRam04/lumina/internal/mcp"
	"github.com/VishnuRam04/lumina/internal/scheduler"
	"github.com/VishnuRam04/lumina/internal/splitter"
	"github.com/VishnuRam04/lumina/internal/storage"
	"github.com/VishnuRam04/lumina/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	charmClient, err := charm.NewClient(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		log.Fatalf("Failed to open charm KV: %v", err)
	}
	defer charmClient.Close()

	docStore, err := storage.NewCharmStore(charmClient, cfg.VectorDim)
	if err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open flashcard database: %v", err)
	}
	defer db.Close()

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
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	sp, err := splitter.NewWithSize(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		log.Fatalf("Invalid chunking configuration: %v", err)
	}

	ix := index.New(sp, llmClient, docStore)
	cardStore := sqlite.NewFlashcardStore(db)
	quizStore := sqlite.NewQuizStore(db)

	ingest := core.NewIngestService(ix)
	chat := core.NewChatService(ix, llmClient)
	flashcards := core.NewFlashcardService(ix, llmClient, cardStore)
	quizzes := core.NewQuizService(ix, llmClient, quizStore)
	reviews := scheduler.NewReviewService(cardStore)

	server := mcpserver.NewMCPServer(
		"Lumina Study Assistant",
		"0.1.0",
	)
	luminamcp.RegisterTools(server, ingest, ix, chat, flashcards, quizzes, reviews)

	log.Println("Lumina MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
