// ABOUTME: DocumentStore capability interface for embedded chunk records
// ABOUTME: Insert, filtered similarity query, and bounded batch deletion
package storage

import (
	"context"

	"github.com/VishnuRam04/lumina/internal/models"
)

// DocumentStore persists embedded chunk records and supports approximate
// nearest-neighbor query with exact-match metadata filtering. The store has
// no multi-key transactions: each insert and each delete batch commits
// independently.
type DocumentStore interface {
	// Insert stores a record and returns its assigned id. A vector whose
	// length differs from the store's fixed dimension is a *DimensionError.
	Insert(ctx context.Context, rec models.DocumentRecord) (string, error)

	// Query returns up to k records matching the filter, ordered by
	// decreasing similarity to the vector. Ties break deterministically in
	// store-native order. May fail with a *MissingIndexError.
	Query(ctx context.Context, vector []float64, filter models.MetadataFilter, k int) ([]models.ScoredRecord, error)

	// DeleteByFilter removes at most batchLimit matching records and
	// reports how many were deleted. Zero matches is a successful no-op.
	DeleteByFilter(ctx context.Context, filter models.MetadataFilter, batchLimit int) (int, error)
}
