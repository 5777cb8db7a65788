// ABOUTME: Charm-KV backed DocumentStore with cosine similarity ranking
// ABOUTME: Records are JSON values under doc: keys; deletes are per-key
package storage

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/VishnuRam04/lumina/internal/charm"
	"github.com/VishnuRam04/lumina/internal/models"
)

// CharmStore implements DocumentStore on top of charm KV. Similarity is
// brute-force cosine over the doc: keyspace; record order ties break on
// record id, which is stable across calls.
type CharmStore struct {
	client *charm.Client
	dim    int
}

// NewCharmStore creates a document store with a fixed embedding dimension
func NewCharmStore(client *charm.Client, dim int) (*CharmStore, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}
	return &CharmStore{client: client, dim: dim}, nil
}

// Insert stores a record, assigning an id if the record has none
func (s *CharmStore) Insert(ctx context.Context, rec models.DocumentRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(rec.Embedding) != s.dim {
		return "", &DimensionError{Want: s.dim, Got: len(rec.Embedding)}
	}
	if err := rec.Metadata.Validate(); err != nil {
		return "", err
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	if err := s.client.SetJSON(charm.DocumentKey(rec.ID), rec); err != nil {
		return "", fmt.Errorf("insert record %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

// Query ranks matching records by cosine similarity to the vector
func (s *CharmStore) Query(ctx context.Context, vector []float64, filter models.MetadataFilter, k int) ([]models.ScoredRecord, error) {
	if len(vector) != s.dim {
		return nil, &DimensionError{Want: s.dim, Got: len(vector)}
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}

	keys, err := s.listDocumentKeys()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	var hits []models.ScoredRecord
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rec models.DocumentRecord
		if err := s.client.GetJSON(key, &rec); err != nil {
			continue
		}
		if !filter.Matches(rec.Metadata) {
			continue
		}

		hits = append(hits, models.ScoredRecord{
			Record: rec,
			Score:  cosineSimilarity(vector, rec.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Record.ID < hits[j].Record.ID
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// DeleteByFilter removes at most batchLimit matching records. Each delete
// commits independently; a failure partway reports the records already
// removed alongside the error.
func (s *CharmStore) DeleteByFilter(ctx context.Context, filter models.MetadataFilter, batchLimit int) (int, error) {
	if batchLimit < 1 {
		return 0, fmt.Errorf("batch limit must be at least 1, got %d", batchLimit)
	}

	keys, err := s.listDocumentKeys()
	if err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}

	deleted := 0
	for _, key := range keys {
		if deleted >= batchLimit {
			break
		}
		if err := ctx.Err(); err != nil {
			return deleted, err
		}

		var rec models.DocumentRecord
		if err := s.client.GetJSON(key, &rec); err != nil {
			continue
		}
		if !filter.Matches(rec.Metadata) {
			continue
		}

		if err := s.client.Delete(key); err != nil {
			return deleted, fmt.Errorf("delete record %s: %w", rec.ID, err)
		}
		deleted++
	}
	return deleted, nil
}

// listDocumentKeys returns doc: keys in a stable order
func (s *CharmStore) listDocumentKeys() ([]string, error) {
	keys, err := s.client.ListKeys(charm.DocumentPrefix)
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
