// ABOUTME: Typed error variants for the storage capabilities
// ABOUTME: Callers match with errors.Is/errors.As instead of parsing messages
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a referenced entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConcurrentModification indicates an optimistic-lock miss: the entity
// changed between read and write. The caller should re-fetch and retry.
var ErrConcurrentModification = errors.New("concurrent modification")

// MissingIndexError indicates the store rejected a query because a
// composite or vector index has not been provisioned. The remediation URL
// points at the provisioning console. A missing index cannot resolve itself
// within the same call, so this is never auto-retried.
type MissingIndexError struct {
	RemediationURL string
}

func (e *MissingIndexError) Error() string {
	return fmt.Sprintf("store index missing; provision it at %s", e.RemediationURL)
}

// DimensionError indicates a vector of the wrong length was inserted or
// queried against a store with a fixed embedding dimension.
type DimensionError struct {
	Want, Got int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("invalid embedding dimension: expected %d, got %d", e.Want, e.Got)
}
