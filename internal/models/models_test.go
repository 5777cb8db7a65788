// ABOUTME: Tests for chunk metadata, filters, and flashcard defaults
// ABOUTME: Filter matching semantics back every search and delete operation

package models

import (
	"testing"
	"time"
)

func TestChunkMetadata_Validate(t *testing.T) {
	valid := ChunkMetadata{SubjectID: "s", Filename: "f.txt", SourcePath: "notes/f.txt"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	tests := []struct {
		name string
		meta ChunkMetadata
	}{
		{"missing subject", ChunkMetadata{Filename: "f", SourcePath: "p"}},
		{"missing filename", ChunkMetadata{SubjectID: "s", SourcePath: "p"}},
		{"missing source path", ChunkMetadata{SubjectID: "s", Filename: "f"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.meta.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestMetadataFilter_Matches(t *testing.T) {
	meta := ChunkMetadata{SubjectID: "bio", Filename: "cells.md", SourcePath: "notes/cells.md"}

	tests := []struct {
		name   string
		filter MetadataFilter
		want   bool
	}{
		{"empty filter matches everything", MetadataFilter{}, true},
		{"subject match", MetadataFilter{SubjectID: "bio"}, true},
		{"subject mismatch", MetadataFilter{SubjectID: "chem"}, false},
		{"filename match", MetadataFilter{Filename: "cells.md"}, true},
		{"filename mismatch", MetadataFilter{Filename: "other.md"}, false},
		{"both match", MetadataFilter{SubjectID: "bio", Filename: "cells.md"}, true},
		{"one of two mismatches", MetadataFilter{SubjectID: "bio", Filename: "other.md"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(meta); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMetadataFilter_Empty(t *testing.T) {
	if !(MetadataFilter{}).Empty() {
		t.Error("zero filter should be empty")
	}
	if (MetadataFilter{SubjectID: "s"}).Empty() {
		t.Error("subject filter should not be empty")
	}
	if (MetadataFilter{Filename: "f"}).Empty() {
		t.Error("filename filter should not be empty")
	}
}

func TestNewFlashcard_Defaults(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	card := NewFlashcard("bio", "cells.md", "front", "back", now)

	if card.Repetition != 0 || card.Interval != 0 {
		t.Errorf("scheduling state = %d/%d, want 0/0", card.Repetition, card.Interval)
	}
	if card.EaseFactor != DefaultEaseFactor {
		t.Errorf("EaseFactor = %v, want %v", card.EaseFactor, DefaultEaseFactor)
	}
	if card.Status != StatusNew {
		t.Errorf("Status = %s, want new", card.Status)
	}
	if !card.Due(now) {
		t.Error("new card should be due immediately")
	}
}

func TestFlashcard_Due(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	card := Flashcard{NextReview: now}

	if !card.Due(now) {
		t.Error("card due exactly now should be due")
	}
	if !card.Due(now.Add(time.Hour)) {
		t.Error("card past due should be due")
	}
	if card.Due(now.Add(-time.Hour)) {
		t.Error("card due later should not be due")
	}
}
