package port

import (
	"context"

	"docmap/internal/domain"
)

// FieldRequest asks an extraction source for one source field value.
// Row is nil for header fields and the zero-based row index for item fields.
type FieldRequest struct {
	SourceField string
	Partner     domain.Partner
	Row         *int
}

// Extracted is a value produced by an extraction source with its confidence (0-100).
type Extracted struct {
	Value      string
	Confidence float64
}

// ExtractionSource supplies field values for mapping execution. A source that
// cannot produce a value returns an error wrapping domain.ErrMissingFieldValue.
type ExtractionSource interface {
	ValueFor(ctx context.Context, req FieldRequest) (Extracted, error)
	RowCount(ctx context.Context, partner domain.Partner) (int, error)
}
