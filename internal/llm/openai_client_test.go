// ABOUTME: Tests for OpenAI client helpers
// ABOUTME: Covers fence stripping, truncation, and config validation

package llm

import (
	"strings"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain json", `[{"front":"Q","back":"A"}]`, `[{"front":"Q","back":"A"}]`},
		{"fenced", "```\n[1,2]\n```", "[1,2]"},
		{"fenced with language", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  \n```json\n[]\n```\n", "[]"},
		{"stray backticks", "a ``` b", "a  b"},
		{"no newline after fence", "```[]```", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.content); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestTruncateChars(t *testing.T) {
	long := strings.Repeat("x", 20000)
	if got := truncateChars(long, maxPromptChars); len([]rune(got)) != maxPromptChars {
		t.Errorf("truncateChars length = %d, want %d", len([]rune(got)), maxPromptChars)
	}

	short := "short text"
	if got := truncateChars(short, maxPromptChars); got != short {
		t.Errorf("truncateChars(%q) = %q, want unchanged", short, got)
	}
}

func TestNewClient_Validation(t *testing.T) {
	cfg := DefaultConfig("")
	if _, err := NewClient(cfg); err == nil {
		t.Error("NewClient with empty key should fail")
	}

	cfg = DefaultConfig("sk-test")
	cfg.VectorDim = 0
	if _, err := NewClient(cfg); err == nil {
		t.Error("NewClient with zero dimension should fail")
	}

	cfg = DefaultConfig("sk-test")
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.Dimension() != DefaultVectorDim {
		t.Errorf("Dimension() = %d, want %d", client.Dimension(), DefaultVectorDim)
	}
}
