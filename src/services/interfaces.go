// backend/src/services/interfaces.go
package services

import (
	"context"

	"github.com/username/dealparse/backend/src/models"
)

// ExtractionService is the orchestration entry point for both top-level
// extraction strategies. Neither method ever returns an error: every
// failure degrades to a best-effort partial result the caller can
// assess through the confidence score and engine tag.
type ExtractionService interface {
	// ExtractStructured runs the templated/labeled document path.
	ExtractStructured(text string) *models.ExtractionResult
	// ExtractFreeText runs the statistical + generic-regex path and tags
	// the result with the engine that actually produced it.
	ExtractFreeText(ctx context.Context, text string) *models.ExtractionResult
}

// SessionService keeps extraction results addressable for follow-up
// reads. Entries are evicted after a bounded lifetime.
type SessionService interface {
	// Put stores a result and returns its generated document ID.
	Put(result *models.ExtractionResult) string
	// Get returns the stored result for a document ID, if still live.
	Get(documentID string) (*models.ExtractionResult, bool)
}
