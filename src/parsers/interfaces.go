// backend/src/parsers/interfaces.go
package parsers

import (
	"github.com/username/dealparse/backend/src/models"
)

// StructuredParser extracts entities from labeled, templated documents
// (term sheets with "Label: value" lines). Implementations never fail;
// unmatched fields are simply absent from the result.
type StructuredParser interface {
	Parse(text string) *models.ExtractionResult
}

// FreeTextParser extracts a sparse entity map from unlabeled free text.
// Each rule is independent and best-effort.
type FreeTextParser interface {
	Parse(text string) map[string]any
}
