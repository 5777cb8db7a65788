// ABOUTME: VectorIndex owns chunking, embedding, filtered retrieval, and deletion
// ABOUTME: The only interface through which ingested text becomes retrievable
package index

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/VishnuRam04/lumina/internal/models"
	"github.com/VishnuRam04/lumina/internal/splitter"
	"github.com/VishnuRam04/lumina/internal/storage"
)

const (
	// DefaultK is the result count when the caller does not specify one
	DefaultK = 4
	// MaxK bounds broader context-gathering queries
	MaxK = 10

	// DeleteBatchSize stays below per-batch mutation limits of
	// Firestore-style stores
	DeleteBatchSize = 400
	// maxDeleteIterations caps the deletion loop; at DeleteBatchSize
	// records per iteration this covers four million chunks per file
	maxDeleteIterations = 10000
)

// Embedder maps text to a fixed-dimension vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Index turns documents into retrievable embedded chunks. Concurrent calls
// for different filenames are independent; mutations of the same filename
// (an add racing a delete) must be serialized by the caller, since the
// store has no cross-operation transactions.
type Index struct {
	splitter *splitter.Splitter
	embedder Embedder
	store    storage.DocumentStore
}

// New creates an Index over the given splitter, embedder, and store
func New(sp *splitter.Splitter, embedder Embedder, store storage.DocumentStore) *Index {
	return &Index{
		splitter: sp,
		embedder: embedder,
		store:    store,
	}
}

// AddDocument splits text, embeds every chunk, and inserts each as a record
// tagged with meta. Every chunk is embedded before anything is inserted, so
// an embedding failure fails the whole call with nothing written. Inserts
// commit independently: if one fails partway, chunks already committed
// remain, and the caller must treat the call as fully failed and invoke
// DeleteDocument for the same filename to restore atomicity.
// Returns the number of chunks inserted.
func (ix *Index) AddDocument(ctx context.Context, text string, meta models.ChunkMetadata) (int, error) {
	if err := meta.Validate(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("cannot index empty document %s", meta.Filename)
	}

	chunks := ix.splitter.Split(text)

	vectors := make([][]float64, len(chunks))
	for i, chunk := range chunks {
		vec, err := ix.embedder.Embed(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d/%d of %s: %w", i+1, len(chunks), meta.Filename, err)
		}
		vectors[i] = vec
	}

	for i, chunk := range chunks {
		rec := models.DocumentRecord{
			Text:      chunk,
			Metadata:  meta,
			Embedding: vectors[i],
		}
		if _, err := ix.store.Insert(ctx, rec); err != nil {
			return i, fmt.Errorf("insert chunk %d/%d of %s (already-inserted chunks remain, delete %s to compensate): %w",
				i+1, len(chunks), meta.Filename, meta.Filename, err)
		}
	}

	return len(chunks), nil
}

// Search embeds the query and returns up to k chunks whose metadata matches
// the filter exactly, ordered by decreasing similarity. k of 0 means
// DefaultK; values outside [1, MaxK] are rejected. An empty filter searches
// the whole store.
func (ix *Index) Search(ctx context.Context, query string, filter models.MetadataFilter, k int) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	if k == 0 {
		k = DefaultK
	}
	if k < 1 || k > MaxK {
		return nil, fmt.Errorf("k must be in [1, %d], got %d", MaxK, k)
	}

	vec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := ix.store.Query(ctx, vec, filter, k)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}

	results := make([]models.SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = models.SearchResult{
			Text:     hit.Record.Text,
			Metadata: hit.Record.Metadata,
			Score:    hit.Score,
		}
	}
	return results, nil
}

// SearchWithRetry is Search plus missing-index detection: when the store
// reports an unprovisioned index, the remediation link is logged and the
// error re-raised. The query is never re-issued automatically — a missing
// index cannot resolve itself within the same call.
func (ix *Index) SearchWithRetry(ctx context.Context, query string, filter models.MetadataFilter, k int) ([]models.SearchResult, error) {
	results, err := ix.Search(ctx, query, filter, k)
	if err != nil {
		var missing *storage.MissingIndexError
		if errors.As(err, &missing) {
			log.Printf("similarity search needs a store index; provision it at %s", missing.RemediationURL)
		}
		return nil, err
	}
	return results, nil
}

// DeleteDocument removes every record whose metadata filename equals the
// argument, in bounded batches committed independently. A crash mid-call
// leaves a deterministic subset of matching records removed; re-running the
// call completes the deletion. Zero matches is a successful no-op.
// Returns the cumulative count of chunks removed.
func (ix *Index) DeleteDocument(ctx context.Context, filename string) (int, error) {
	if filename == "" {
		return 0, fmt.Errorf("filename must not be empty")
	}

	filter := models.MetadataFilter{Filename: filename}
	total := 0
	for i := 0; i < maxDeleteIterations; i++ {
		n, err := ix.store.DeleteByFilter(ctx, filter, DeleteBatchSize)
		total += n
		if err != nil {
			return total, fmt.Errorf("delete %s after %d chunks: %w", filename, total, err)
		}
		if n < DeleteBatchSize {
			return total, nil
		}
	}
	return total, fmt.Errorf("delete %s: iteration cap reached after %d chunks", filename, total)
}
