// ABOUTME: Chunk metadata and stored document record types for the vector index
// ABOUTME: Metadata is a fixed struct; unknown-shape input is rejected at the boundary
package models

import (
	"fmt"
	"time"
)

// ChunkMetadata tags every chunk derived from one ingestion call.
// All fields are required at ingest time.
type ChunkMetadata struct {
	SubjectID  string `json:"subject_id"`
	Filename   string `json:"filename"`
	SourcePath string `json:"source_path"`
}

// Validate checks that all required metadata fields are present
func (m ChunkMetadata) Validate() error {
	if m.SubjectID == "" {
		return fmt.Errorf("metadata missing required field subject_id")
	}
	if m.Filename == "" {
		return fmt.Errorf("metadata missing required field filename")
	}
	if m.SourcePath == "" {
		return fmt.Errorf("metadata missing required field source_path")
	}
	return nil
}

// MetadataFilter selects records by exact match on metadata fields.
// Empty fields are unconstrained. Exact match is the only filter mode;
// retrieval is always scoped by subject or filename, never by arbitrary
// predicate.
type MetadataFilter struct {
	SubjectID string `json:"subject_id,omitempty"`
	Filename  string `json:"filename,omitempty"`
}

// Empty reports whether the filter constrains nothing
func (f MetadataFilter) Empty() bool {
	return f.SubjectID == "" && f.Filename == ""
}

// Matches reports whether the metadata satisfies every set filter field
func (f MetadataFilter) Matches(m ChunkMetadata) bool {
	if f.SubjectID != "" && f.SubjectID != m.SubjectID {
		return false
	}
	if f.Filename != "" && f.Filename != m.Filename {
		return false
	}
	return true
}

// DocumentRecord is a chunk plus its embedding vector, as stored
type DocumentRecord struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Metadata  ChunkMetadata `json:"metadata"`
	Embedding []float64     `json:"embedding"`
	CreatedAt time.Time     `json:"created_at"`
}

// ScoredRecord is a query hit with its similarity score
type ScoredRecord struct {
	Record DocumentRecord `json:"record"`
	Score  float64        `json:"score"`
}

// SearchResult is what retrieval callers consume: chunk text, its
// metadata, and the similarity score
type SearchResult struct {
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
	Score    float64       `json:"score"`
}
