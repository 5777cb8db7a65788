// ABOUTME: Tests for file ingestion and rollback
// ABOUTME: A failed ingest must leave no chunks behind

package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VishnuRam04/lumina/internal/models"
)

type stubIndexer struct {
	addErr    error
	addCount  int
	lastMeta  models.ChunkMetadata
	deleted   []string
	deletedN  int
	deleteErr error
}

func (s *stubIndexer) AddDocument(_ context.Context, _ string, meta models.ChunkMetadata) (int, error) {
	s.lastMeta = meta
	if s.addErr != nil {
		return 0, s.addErr
	}
	return s.addCount, nil
}

func (s *stubIndexer) DeleteDocument(_ context.Context, filename string) (int, error) {
	s.deleted = append(s.deleted, filename)
	return s.deletedN, s.deleteErr
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestIngestFile(t *testing.T) {
	idx := &stubIndexer{addCount: 3}
	svc := NewIngestService(idx)
	path := writeTempFile(t, "notes.txt", "some study notes")

	n, err := svc.IngestFile(context.Background(), "subj-1", path)
	if err != nil {
		t.Fatalf("IngestFile() error = %v", err)
	}
	if n != 3 {
		t.Errorf("IngestFile() = %d chunks, want 3", n)
	}
	if idx.lastMeta.Filename != "notes.txt" {
		t.Errorf("Filename = %q, want base name", idx.lastMeta.Filename)
	}
	if idx.lastMeta.SubjectID != "subj-1" || idx.lastMeta.SourcePath != path {
		t.Errorf("metadata = %+v", idx.lastMeta)
	}
	if len(idx.deleted) != 0 {
		t.Error("successful ingest triggered a rollback")
	}
}

func TestIngestFile_MissingFile(t *testing.T) {
	svc := NewIngestService(&stubIndexer{})
	if _, err := svc.IngestFile(context.Background(), "subj-1", "/nonexistent/file.txt"); err == nil {
		t.Error("IngestFile() = nil error, want read error")
	}
}

func TestIngestFile_RollbackOnIndexFailure(t *testing.T) {
	wantErr := errors.New("insert failed")
	idx := &stubIndexer{addErr: wantErr, deletedN: 2}
	svc := NewIngestService(idx)
	path := writeTempFile(t, "broken.txt", "content")

	_, err := svc.IngestFile(context.Background(), "subj-1", path)
	if !errors.Is(err, wantErr) {
		t.Fatalf("IngestFile() error = %v, want wrapped %v", err, wantErr)
	}
	if len(idx.deleted) != 1 || idx.deleted[0] != "broken.txt" {
		t.Errorf("rollback deletions = %v, want [broken.txt]", idx.deleted)
	}
}

func TestIngestFile_RollbackFailureReported(t *testing.T) {
	idx := &stubIndexer{addErr: errors.New("insert failed"), deleteErr: errors.New("delete failed")}
	svc := NewIngestService(idx)
	path := writeTempFile(t, "bad.txt", "content")

	_, err := svc.IngestFile(context.Background(), "subj-1", path)
	if err == nil {
		t.Fatal("IngestFile() = nil error")
	}
	// both failures must be visible to the operator
	msg := err.Error()
	if !strings.Contains(msg, "insert failed") || !strings.Contains(msg, "delete failed") {
		t.Errorf("error %q does not report both failures", msg)
	}
}

func TestDeleteFile(t *testing.T) {
	idx := &stubIndexer{deletedN: 7}
	svc := NewIngestService(idx)

	n, err := svc.DeleteFile(context.Background(), "old.txt")
	if err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if n != 7 {
		t.Errorf("DeleteFile() = %d, want 7", n)
	}
}
