// ABOUTME: Ingest service reading note files into the vector index
// ABOUTME: A partial insert is rolled back with a compensating delete

package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/VishnuRam04/lumina/internal/models"
)

// Indexer covers the vector-index operations ingest and deletion need
type Indexer interface {
	AddDocument(ctx context.Context, text string, meta models.ChunkMetadata) (int, error)
	DeleteDocument(ctx context.Context, filename string) (int, error)
}

// IngestService loads note files into the index
type IngestService struct {
	index Indexer
}

func NewIngestService(index Indexer) *IngestService {
	return &IngestService{index: index}
}

// IngestFile reads the file at path and indexes it under the subject. If
// indexing fails partway, already-inserted chunks for the file are deleted so
// the index never holds a half-ingested document. Returns the chunk count.
func (s *IngestService) IngestFile(ctx context.Context, subjectID, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	meta := models.ChunkMetadata{
		SubjectID:  subjectID,
		Filename:   filepath.Base(path),
		SourcePath: path,
	}

	n, err := s.index.AddDocument(ctx, string(data), meta)
	if err != nil {
		if deleted, delErr := s.index.DeleteDocument(ctx, meta.Filename); delErr != nil {
			return 0, fmt.Errorf("indexing %s failed (%w); rollback also failed after removing %d chunks: %v",
				meta.Filename, err, deleted, delErr)
		}
		return 0, fmt.Errorf("indexing %s: %w", meta.Filename, err)
	}
	return n, nil
}

// DeleteFile removes every indexed chunk of the named file, returning the
// number of chunks deleted.
func (s *IngestService) DeleteFile(ctx context.Context, filename string) (int, error) {
	return s.index.DeleteDocument(ctx, filename)
}
