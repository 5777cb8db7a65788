// ABOUTME: Tests for the chat service
// ABOUTME: Checks context assembly, source collection, and error paths

package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/VishnuRam04/lumina/internal/models"
)

func TestAsk_BuildsSourceTaggedContext(t *testing.T) {
	retriever := &stubRetriever{results: map[string][]models.SearchResult{
		"": {
			chunk("bio.txt", "Mitochondria produce ATP."),
			chunk("bio.txt", "Chloroplasts perform photosynthesis."),
			chunk("chem.txt", "Acids donate protons."),
		},
	}}
	llmStub := &stubLLM{answer: "ATP is produced in mitochondria."}
	svc := NewChatService(retriever, llmStub)

	got, err := svc.Ask(context.Background(), "subj-1", "Where is ATP produced?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got.Text != "ATP is produced in mitochondria." {
		t.Errorf("Text = %q", got.Text)
	}

	// Each filename appears once, in retrieval order
	if len(got.Sources) != 2 || got.Sources[0] != "bio.txt" || got.Sources[1] != "chem.txt" {
		t.Errorf("Sources = %v, want [bio.txt chem.txt]", got.Sources)
	}

	if !strings.Contains(llmStub.answerCtx, "[Source: bio.txt]") {
		t.Errorf("context missing source marker:\n%s", llmStub.answerCtx)
	}
	if !strings.Contains(llmStub.answerCtx, "Acids donate protons.") {
		t.Error("context missing retrieved chunk text")
	}
}

func TestAsk_NoMatchingNotes(t *testing.T) {
	retriever := &stubRetriever{}
	llmStub := &stubLLM{answer: "I don't have notes on that yet."}
	svc := NewChatService(retriever, llmStub)

	got, err := svc.Ask(context.Background(), "subj-1", "What is entropy?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(got.Sources) != 0 {
		t.Errorf("Sources = %v, want none", got.Sources)
	}
	if !strings.Contains(llmStub.answerCtx, "No notes matched") {
		t.Errorf("context = %q, want no-match notice", llmStub.answerCtx)
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	svc := NewChatService(&stubRetriever{}, &stubLLM{})
	if _, err := svc.Ask(context.Background(), "subj-1", "  "); err == nil {
		t.Error("Ask() = nil error, want validation error")
	}
}

func TestAsk_RetrieverErrorSurfaced(t *testing.T) {
	wantErr := errors.New("store down")
	svc := NewChatService(&stubRetriever{err: wantErr}, &stubLLM{})

	_, err := svc.Ask(context.Background(), "subj-1", "anything")
	if !errors.Is(err, wantErr) {
		t.Errorf("Ask() error = %v, want wrapped %v", err, wantErr)
	}
}
