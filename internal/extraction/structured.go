package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"docmap/internal/domain"
	"docmap/internal/port"
)

// StructuredValue is one extracted value with its confidence.
type StructuredValue struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// StructuredDocument is extractor output keyed by source field name.
type StructuredDocument struct {
	Header map[string]StructuredValue   `json:"header"`
	Rows   []map[string]StructuredValue `json:"rows"`
}

// Structured serves values from a StructuredDocument produced by an
// external extractor. Fields absent from the document are reported as
// domain.ErrMissingFieldValue.
type Structured struct {
	doc StructuredDocument
}

var _ port.ExtractionSource = (*Structured)(nil)

// NewStructured wraps an already decoded document.
func NewStructured(doc StructuredDocument) *Structured {
	return &Structured{doc: doc}
}

// ParseStructured decodes extractor JSON output.
func ParseStructured(data []byte) (*Structured, error) {
	var doc StructuredDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding structured extraction: %w", err)
	}
	return NewStructured(doc), nil
}

// RowCount returns the number of rows in the document.
func (s *Structured) RowCount(ctx context.Context, _ domain.Partner) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.doc.Rows), nil
}

// ValueFor looks up the requested source field.
func (s *Structured) ValueFor(ctx context.Context, req port.FieldRequest) (port.Extracted, error) {
	if err := ctx.Err(); err != nil {
		return port.Extracted{}, err
	}
	fields := s.doc.Header
	if req.Row != nil {
		if *req.Row < 0 || *req.Row >= len(s.doc.Rows) {
			return port.Extracted{}, fmt.Errorf("row %d: %w", *req.Row, domain.ErrMissingFieldValue)
		}
		fields = s.doc.Rows[*req.Row]
	}
	v, ok := fields[req.SourceField]
	if !ok {
		return port.Extracted{}, fmt.Errorf("%s: %w", req.SourceField, domain.ErrMissingFieldValue)
	}
	return port.Extracted{Value: v.Value, Confidence: v.Confidence}, nil
}
